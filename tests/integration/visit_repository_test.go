//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linklytics/linklytics/internal/domain"
	"github.com/linklytics/linklytics/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLink(t *testing.T, db *pgxpool.Pool, userID int64, shortCode string) int64 {
	t.Helper()

	repo := postgres.NewLinkRepository(db)
	link := &domain.Link{
		ShortCode:   shortCode,
		OriginalURL: "https://example.com/" + shortCode,
		Topic:       domain.TopicPromotion,
		UserID:      userID,
	}
	require.NoError(t, repo.Create(context.Background(), link))
	return link.ID
}

func TestVisitRepository_RecordAndList(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	repo := postgres.NewVisitRepository(db)
	ctx := context.Background()
	userID := seedUser(t, db, "google-1")
	linkID := seedLink(t, db, userID, "abc1234")

	lat, lon := 52.37, 4.89
	visit := &domain.Visit{
		LinkID:    linkID,
		VisitedAt: time.Now().UTC().Truncate(time.Microsecond),
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		IPAddress: "203.0.113.9",
		Geo: domain.Geolocation{
			Country: "NL",
			Region:  "NH",
			City:    "Amsterdam",
			Lat:     &lat,
			Lon:     &lon,
		},
	}

	err := repo.Record(ctx, visit)
	require.NoError(t, err)
	assert.NotZero(t, visit.ID)

	visits, err := repo.ListByLink(ctx, linkID)
	require.NoError(t, err)
	require.Len(t, visits, 1)

	got := visits[0]
	assert.Equal(t, visit.IPAddress, got.IPAddress)
	assert.Equal(t, visit.UserAgent, got.UserAgent)
	assert.Equal(t, "NL", got.Geo.Country)
	assert.Equal(t, "Amsterdam", got.Geo.City)
	require.NotNil(t, got.Geo.Lat)
	assert.InDelta(t, lat, *got.Geo.Lat, 0.0001)
}

func TestVisitRepository_Record_NoGeo(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	repo := postgres.NewVisitRepository(db)
	ctx := context.Background()
	userID := seedUser(t, db, "google-1")
	linkID := seedLink(t, db, userID, "abc1234")

	visit := &domain.Visit{
		LinkID:    linkID,
		VisitedAt: time.Now().UTC(),
		UserAgent: "curl/8.4.0",
		IPAddress: "203.0.113.9",
	}

	err := repo.Record(ctx, visit)
	require.NoError(t, err)

	visits, err := repo.ListByLink(ctx, linkID)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Nil(t, visits[0].Geo.Lat)
	assert.Nil(t, visits[0].Geo.Lon)
}

func TestVisitRepository_ConcurrentRecords(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	repo := postgres.NewVisitRepository(db)
	ctx := context.Background()
	userID := seedUser(t, db, "google-1")
	linkID := seedLink(t, db, userID, "abc1234")

	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			errs <- repo.Record(ctx, &domain.Visit{
				LinkID:    linkID,
				VisitedAt: time.Now().UTC(),
				UserAgent: "Mozilla/5.0",
				IPAddress: "203.0.113.9",
			})
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	visits, err := repo.ListByLink(ctx, linkID)
	require.NoError(t, err)
	assert.Len(t, visits, n, "every concurrent visit must be appended")
}

func TestVisitRepository_ListByLinks(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	repo := postgres.NewVisitRepository(db)
	ctx := context.Background()
	userID := seedUser(t, db, "google-1")
	firstID := seedLink(t, db, userID, "aaa1111")
	secondID := seedLink(t, db, userID, "bbb2222")
	otherID := seedLink(t, db, userID, "ccc3333")

	for _, linkID := range []int64{firstID, firstID, secondID, otherID} {
		require.NoError(t, repo.Record(ctx, &domain.Visit{
			LinkID:    linkID,
			VisitedAt: time.Now().UTC(),
			UserAgent: "Mozilla/5.0",
			IPAddress: "203.0.113.9",
		}))
	}

	visits, err := repo.ListByLinks(ctx, []int64{firstID, secondID})
	require.NoError(t, err)
	assert.Len(t, visits, 3)

	visits, err = repo.ListByLinks(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, visits)
}
