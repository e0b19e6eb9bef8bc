package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/linklytics/linklytics/internal/domain"
	"github.com/linklytics/linklytics/internal/logger"
	rediscache "github.com/linklytics/linklytics/internal/repository/redis"
)

// AnalyticsService computes time-windowed aggregates over the visit log
// and memoizes the serialized result. A cache hit returns the stored
// bytes verbatim, so reads inside the TTL are byte-identical and never
// rescan the store.
type AnalyticsService struct {
	links   LinkRepository
	visits  VisitRepository
	cache   Cache
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func NewAnalyticsService(links LinkRepository, visits VisitRepository, cache Cache, baseURL string, ttl time.Duration) *AnalyticsService {
	return &AnalyticsService{
		links:   links,
		visits:  visits,
		cache:   cache,
		baseURL: baseURL,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *AnalyticsService) LinkAnalytics(ctx context.Context, slug string) (json.RawMessage, error) {
	key := "analytics:" + slug

	if cached := s.probe(ctx, key); cached != nil {
		return cached, nil
	}

	link, err := s.links.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve %q: %w", slug, err)
	}

	visits, err := s.visits.ListByLink(ctx, link.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load visits for %q: %w", slug, err)
	}

	return s.finish(ctx, key, buildReport(visits, s.now()))
}

func (s *AnalyticsService) TopicAnalytics(ctx context.Context, topic domain.Topic) (json.RawMessage, error) {
	key := "topicAnalytics:" + string(topic)

	if cached := s.probe(ctx, key); cached != nil {
		return cached, nil
	}

	links, err := s.links.ListByTopic(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to list links for topic %q: %w", topic, err)
	}
	if len(links) == 0 {
		return nil, domain.ErrNotFound
	}

	return s.pooled(ctx, key, links)
}

func (s *AnalyticsService) OverallAnalytics(ctx context.Context, userID int64) (json.RawMessage, error) {
	key := fmt.Sprintf("overallAnalytics:%d", userID)

	if cached := s.probe(ctx, key); cached != nil {
		return cached, nil
	}

	links, err := s.links.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list links for user %d: %w", userID, err)
	}
	if len(links) == 0 {
		return nil, domain.ErrNotFound
	}

	return s.pooled(ctx, key, links)
}

func (s *AnalyticsService) pooled(ctx context.Context, key string, links []domain.Link) (json.RawMessage, error) {
	ids := make([]int64, len(links))
	for i, link := range links {
		ids[i] = link.ID
	}

	visits, err := s.visits.ListByLinks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load pooled visits: %w", err)
	}

	return s.finish(ctx, key, buildPooledReport(links, visits, s.baseURL, s.now()))
}

// probe checks the cache and swallows every cache error as a miss.
func (s *AnalyticsService) probe(ctx context.Context, key string) json.RawMessage {
	cached, err := s.cache.GetReport(ctx, key)
	if err != nil {
		if !errors.Is(err, rediscache.ErrCacheMiss) {
			logger.FromContext(ctx).Warn("analytics cache unavailable, recomputing", "key", key, "error", err)
		}
		return nil
	}
	return cached
}

func (s *AnalyticsService) finish(ctx context.Context, key string, report domain.AnalyticsReport) (json.RawMessage, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetReport(ctx, key, payload, s.ttl); err != nil {
		logger.FromContext(ctx).Warn("failed to memoize analytics", "key", key, "error", err)
	}

	return payload, nil
}
