// Package geo derives a best-effort geolocation from an IP address.
// Lookups never fail the caller: any error degrades to an all-empty
// Geolocation.
package geo

import (
	"net"

	"github.com/linklytics/linklytics/internal/domain"
	"github.com/oschwald/geoip2-golang"
)

// Resolver is the capability the redirect path depends on.
type Resolver interface {
	Lookup(ip string) domain.Geolocation
}

// MaxMind resolves against a local GeoLite2/GeoIP2 City database.
type MaxMind struct {
	db *geoip2.Reader
}

func Open(path string) (*MaxMind, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &MaxMind{db: db}, nil
}

func (m *MaxMind) Close() error {
	return m.db.Close()
}

func (m *MaxMind) Lookup(ip string) domain.Geolocation {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return domain.Geolocation{}
	}

	record, err := m.db.City(parsed)
	if err != nil {
		return domain.Geolocation{}
	}

	geo := domain.Geolocation{
		Country: record.Country.IsoCode,
		City:    record.City.Names["en"],
	}
	if len(record.Subdivisions) > 0 {
		geo.Region = record.Subdivisions[0].IsoCode
	}
	if record.Location.Latitude != 0 || record.Location.Longitude != 0 {
		lat := record.Location.Latitude
		lon := record.Location.Longitude
		geo.Lat = &lat
		geo.Lon = &lon
	}

	return geo
}

// Noop is used when no database is configured.
type Noop struct{}

func (Noop) Lookup(string) domain.Geolocation {
	return domain.Geolocation{}
}
