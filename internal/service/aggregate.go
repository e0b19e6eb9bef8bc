package service

import (
	"sort"
	"time"

	"github.com/linklytics/linklytics/internal/domain"
	"github.com/linklytics/linklytics/pkg/detector"
)

const dateLayout = "2006-01-02"

// unknownVisitor stands in for visits recorded without an ip.
const unknownVisitor = "unknown"

// buildReport aggregates a visit log into the per-scope analytics
// shape. All accumulator state is local to the call; nothing is shared
// across requests.
//
// Uniqueness is per dimension value: within an OS or device bucket an
// ip counts once, but the same ip may appear in several buckets when
// its visits carry different user-agents.
func buildReport(visits []domain.Visit, now time.Time) domain.AnalyticsReport {
	allIPs := make(map[string]struct{})
	dayCounts := make(map[string]int64)
	osBuckets := make(map[string]map[string]struct{})
	deviceBuckets := make(map[string]map[string]struct{})

	for _, v := range visits {
		ip := visitorKey(v)
		allIPs[ip] = struct{}{}
		dayCounts[v.VisitedAt.UTC().Format(dateLayout)]++

		osName := detector.DetectOSName(v.UserAgent)
		if osBuckets[osName] == nil {
			osBuckets[osName] = make(map[string]struct{})
		}
		osBuckets[osName][ip] = struct{}{}

		device := detector.DetectDeviceType(v.UserAgent)
		if deviceBuckets[device] == nil {
			deviceBuckets[device] = make(map[string]struct{})
		}
		deviceBuckets[device][ip] = struct{}{}
	}

	report := domain.AnalyticsReport{
		TotalClicks:  int64(len(visits)),
		UniqueClicks: int64(len(allIPs)),
		ClicksByDate: trailingWeek(dayCounts, now),
		OSType:       make([]domain.OSStats, 0, len(osBuckets)),
		DeviceType:   make([]domain.DeviceStats, 0, len(deviceBuckets)),
	}

	for _, name := range sortedKeys(osBuckets) {
		unique := int64(len(osBuckets[name]))
		report.OSType = append(report.OSType, domain.OSStats{
			OSName:       name,
			UniqueClicks: unique,
			UniqueUsers:  unique,
		})
	}

	for _, name := range sortedKeys(deviceBuckets) {
		unique := int64(len(deviceBuckets[name]))
		report.DeviceType = append(report.DeviceType, domain.DeviceStats{
			DeviceName:   name,
			UniqueClicks: unique,
			UniqueUsers:  unique,
		})
	}

	return report
}

// buildPooledReport aggregates across a set of links and adds the
// per-link breakdown the topic and user scopes expose. Scope-level
// uniqueClicks counts distinct ips over the pooled log, so an ip that
// hit two links still counts once.
func buildPooledReport(links []domain.Link, visits []domain.Visit, baseURL string, now time.Time) domain.AnalyticsReport {
	report := buildReport(visits, now)

	byLink := make(map[int64][]domain.Visit, len(links))
	for _, v := range visits {
		byLink[v.LinkID] = append(byLink[v.LinkID], v)
	}

	report.URLs = make([]domain.LinkStats, 0, len(links))
	for _, link := range links {
		linkVisits := byLink[link.ID]

		ips := make(map[string]struct{}, len(linkVisits))
		for _, v := range linkVisits {
			ips[visitorKey(v)] = struct{}{}
		}

		report.URLs = append(report.URLs, domain.LinkStats{
			ShortURL:     ShortURL(baseURL, link.Slug()),
			TotalClicks:  int64(len(linkVisits)),
			UniqueClicks: int64(len(ips)),
		})
	}

	return report
}

// trailingWeek emits one entry per day for today minus 0..6 days,
// newest first. Days with no visits appear with a zero count.
func trailingWeek(dayCounts map[string]int64, now time.Time) []domain.ClicksByDate {
	days := make([]domain.ClicksByDate, 0, 7)
	today := now.UTC()

	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		days = append(days, domain.ClicksByDate{
			Date:  date,
			Count: dayCounts[date],
		})
	}

	return days
}

// ShortURL builds the advertised short link for a slug.
func ShortURL(baseURL, slug string) string {
	return baseURL + "/api/shorten/" + slug
}

func visitorKey(v domain.Visit) string {
	if v.IPAddress == "" {
		return unknownVisitor
	}
	return v.IPAddress
}

func sortedKeys(m map[string]map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
