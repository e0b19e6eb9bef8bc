// Package detector classifies visits from raw request data: device
// category and OS name from the user-agent, normalized origin IP from
// the connection headers. Everything here is pure string work so the
// analytics aggregation stays independent of any HTTP framework type.
package detector

import (
	"strings"

	"github.com/mileusna/useragent"
)

const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// SentinelIP replaces loopback origins so geolocation lookups return
// something meaningful in local and test environments.
const SentinelIP = "8.8.8.8"

// DetectDeviceType buckets a user-agent into the closed set
// {mobile, tablet, desktop}.
func DetectDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "mobile") {
		return DeviceMobile
	}

	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return DeviceTablet
	}

	return DeviceDesktop
}

// DetectOSName returns a free-form OS name ("Windows", "macOS",
// "Android", ...) or "unknown" when the user-agent carries none.
func DetectOSName(userAgent string) string {
	ua := useragent.Parse(userAgent)
	if ua.OS == "" {
		return "unknown"
	}
	return ua.OS
}

// ClientIP picks the origin address the way a proxy-fronted service
// should: first X-Forwarded-For hop, then X-Real-IP, then the socket
// address with its port stripped.
func ClientIP(remoteAddr, xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xRealIP != "" {
		return xRealIP
	}

	if idx := strings.LastIndex(remoteAddr, ":"); idx != -1 {
		return remoteAddr[:idx]
	}

	return remoteAddr
}

// NormalizeIP remaps loopback addresses to SentinelIP so every recorded
// visit has a geolocatable origin.
func NormalizeIP(ip string) string {
	switch ip {
	case "::1", "127.0.0.1", "[::1]", "localhost":
		return SentinelIP
	}
	return ip
}
