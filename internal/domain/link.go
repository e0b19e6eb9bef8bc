package domain

import "time"

type Topic string

const (
	TopicAcquisition Topic = "acquisition"
	TopicActivation  Topic = "activation"
	TopicRetention   Topic = "retention"
	TopicPromotion   Topic = "promotion"
	TopicReferral    Topic = "referral"
)

// IsValid reports whether t is one of the known topics.
func (t Topic) IsValid() bool {
	switch t {
	case TopicAcquisition, TopicActivation, TopicRetention, TopicPromotion, TopicReferral:
		return true
	}
	return false
}

type Link struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	CustomAlias string    `json:"custom_alias,omitempty"`
	OriginalURL string    `json:"original_url"`
	Topic       Topic     `json:"topic"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Slug is the path segment a link is advertised under: the custom alias
// when one was chosen, the generated short code otherwise.
func (l *Link) Slug() string {
	if l.CustomAlias != "" {
		return l.CustomAlias
	}
	return l.ShortCode
}

type CreateLinkRequest struct {
	URL         string `json:"url" validate:"required,url"`
	CustomAlias string `json:"customAlias,omitempty" validate:"omitempty,min=3,max=30,alias"`
	Topic       Topic  `json:"topic,omitempty" validate:"omitempty,topic"`
}

type Geolocation struct {
	Country string   `json:"country,omitempty"`
	Region  string   `json:"region,omitempty"`
	City    string   `json:"city,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Visit is one recorded redirect. Rows are append-only; nothing updates
// a visit after insert.
type Visit struct {
	ID        int64       `json:"id"`
	LinkID    int64       `json:"link_id"`
	VisitedAt time.Time   `json:"visited_at"`
	UserAgent string      `json:"user_agent"`
	IPAddress string      `json:"ip_address"`
	Geo       Geolocation `json:"geolocation"`
}

// RedirectEntry is the cached fast-path representation of a link. It
// carries the link id so a cache hit can still record the visit without
// touching the links table.
type RedirectEntry struct {
	LinkID      int64  `json:"link_id"`
	ShortCode   string `json:"short_code"`
	OriginalURL string `json:"original_url"`
}
