package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/linklytics/linklytics/internal/domain"
	"github.com/linklytics/linklytics/internal/logger"
	rediscache "github.com/linklytics/linklytics/internal/repository/redis"
	"github.com/linklytics/linklytics/pkg/detector"
	"github.com/linklytics/linklytics/pkg/generator"
	"github.com/linklytics/linklytics/pkg/geo"
)

type LinkRepository interface {
	Create(ctx context.Context, link *domain.Link) error
	GetBySlug(ctx context.Context, slug string) (*domain.Link, error)
	ListByTopic(ctx context.Context, topic domain.Topic) ([]domain.Link, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Link, error)
}

type VisitRepository interface {
	Record(ctx context.Context, visit *domain.Visit) error
	ListByLink(ctx context.Context, linkID int64) ([]domain.Visit, error)
	ListByLinks(ctx context.Context, linkIDs []int64) ([]domain.Visit, error)
}

type Cache interface {
	GetRedirect(ctx context.Context, slug string) (*domain.RedirectEntry, error)
	SetRedirect(ctx context.Context, slug string, entry *domain.RedirectEntry, ttl time.Duration) error
	GetReport(ctx context.Context, key string) ([]byte, error)
	SetReport(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Visitor is what the redirect path knows about the requester.
type Visitor struct {
	UserAgent string
	IPAddress string
}

type ResolverService struct {
	links       LinkRepository
	visits      VisitRepository
	cache       Cache
	geo         geo.Resolver
	redirectTTL time.Duration
}

func NewResolverService(links LinkRepository, visits VisitRepository, cache Cache, geoResolver geo.Resolver, redirectTTL time.Duration) *ResolverService {
	return &ResolverService{
		links:       links,
		visits:      visits,
		cache:       cache,
		geo:         geoResolver,
		redirectTTL: redirectTTL,
	}
}

func (s *ResolverService) Shorten(ctx context.Context, userID int64, req *domain.CreateLinkRequest) (*domain.Link, error) {
	if userID == 0 {
		return nil, domain.ErrUnauthenticated
	}

	topic := req.Topic
	if topic == "" {
		topic = domain.TopicPromotion
	}

	var err error
	maxRetries := 3

	for i := 0; i < maxRetries; i++ {
		var shortCode string
		shortCode, err = generator.GenerateShortCode()
		if err != nil {
			return nil, err
		}

		link := &domain.Link{
			ShortCode:   shortCode,
			CustomAlias: req.CustomAlias,
			OriginalURL: req.URL,
			Topic:       topic,
			UserID:      userID,
		}

		err = s.links.Create(ctx, link)
		if err == nil {
			return link, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "custom_alias") {
				return nil, domain.ErrAliasTaken
			}
			if strings.Contains(pgErr.ConstraintName, "short_code") {
				continue
			}
		}

		return nil, fmt.Errorf("failed to create short url: %w", err)
	}

	return nil, fmt.Errorf("failed to generate short code after %d retries: %w", maxRetries, err)
}

// Resolve maps a short code or alias to its destination and records the
// visit. The visit is recorded on cache hits too; destination caching
// and click accounting are independent.
func (s *ResolverService) Resolve(ctx context.Context, slug string, visitor Visitor) (string, error) {
	log := logger.FromContext(ctx)

	entry, err := s.cache.GetRedirect(ctx, slug)
	if err == nil {
		s.recordVisit(ctx, entry.LinkID, visitor)
		return entry.OriginalURL, nil
	}
	if !errors.Is(err, rediscache.ErrCacheMiss) {
		log.Warn("redirect cache unavailable, falling back to store", "error", err)
	}

	link, err := s.links.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("failed to resolve %q: %w", slug, err)
	}

	s.recordVisit(ctx, link.ID, visitor)

	go func() {
		entry := &domain.RedirectEntry{
			LinkID:      link.ID,
			ShortCode:   link.ShortCode,
			OriginalURL: link.OriginalURL,
		}
		if err := s.cache.SetRedirect(context.Background(), slug, entry, s.redirectTTL); err != nil {
			log.Warn("failed to populate redirect cache", "slug", slug, "error", err)
		}
	}()

	return link.OriginalURL, nil
}

// recordVisit appends one visit row. A failed append is logged and
// swallowed; redirects keep working when the log write fails.
func (s *ResolverService) recordVisit(ctx context.Context, linkID int64, visitor Visitor) {
	ip := detector.NormalizeIP(visitor.IPAddress)

	visit := &domain.Visit{
		LinkID:    linkID,
		VisitedAt: time.Now().UTC(),
		UserAgent: visitor.UserAgent,
		IPAddress: ip,
		Geo:       s.geo.Lookup(ip),
	}

	if err := s.visits.Record(ctx, visit); err != nil {
		logger.FromContext(ctx).Error("failed to record visit", "link_id", linkID, "error", err)
	}
}
