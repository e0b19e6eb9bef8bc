package domain

type ClicksByDate struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type OSStats struct {
	OSName       string `json:"osName"`
	UniqueClicks int64  `json:"uniqueClicks"`
	UniqueUsers  int64  `json:"uniqueUsers"`
}

type DeviceStats struct {
	DeviceName   string `json:"deviceName"`
	UniqueClicks int64  `json:"uniqueClicks"`
	UniqueUsers  int64  `json:"uniqueUsers"`
}

type LinkStats struct {
	ShortURL     string `json:"shortUrl"`
	TotalClicks  int64  `json:"totalClicks"`
	UniqueClicks int64  `json:"uniqueClicks"`
}

// AnalyticsReport is the aggregate returned for every scope. URLs is
// populated for topic and user scopes only.
type AnalyticsReport struct {
	TotalClicks  int64          `json:"totalClicks"`
	UniqueClicks int64          `json:"uniqueClicks"`
	ClicksByDate []ClicksByDate `json:"clicksByDate"`
	OSType       []OSStats      `json:"osType"`
	DeviceType   []DeviceStats  `json:"deviceType"`
	URLs         []LinkStats    `json:"urls,omitempty"`
}
