// Command seed fills the database with synthetic links and visits for
// load testing the redirect and analytics paths.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linklytics/linklytics/internal/config"
	"github.com/linklytics/linklytics/internal/domain"
)

const (
	linkCount         = 10000
	visitsPerHotLink  = 500
	hotLinkCount      = 100
	visitsPerColdLink = 3
	batchSize         = 5000
)

var topics = []domain.Topic{
	domain.TopicAcquisition,
	domain.TopicActivation,
	domain.TopicRetention,
	domain.TopicPromotion,
	domain.TopicReferral,
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_1) AppleWebKit/605.1.15 Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36",
	"Mozilla/5.0 (iPad; CPU OS 17_1 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148 Safari/604.1",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	userID, err := seedUser(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to seed user: %v\n", err)
	}

	linkIDs, err := seedLinks(ctx, pool, userID)
	if err != nil {
		log.Fatalf("Failed to seed links: %v\n", err)
	}

	if err := seedVisits(ctx, pool, linkIDs); err != nil {
		log.Fatalf("Failed to seed visits: %v\n", err)
	}

	log.Printf("Seeded %d links for user %d\n", len(linkIDs), userID)
}

func seedUser(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO users (google_id, display_name, email)
		VALUES ('seed-user', 'Seed User', 'seed@example.com')
		ON CONFLICT (google_id) DO UPDATE SET display_name = EXCLUDED.display_name
		RETURNING id
	`).Scan(&id)
	return id, err
}

func seedLinks(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]int64, error) {
	linkIDs := make([]int64, 0, linkCount)

	for start := 0; start < linkCount; start += batchSize {
		end := start + batchSize
		if end > linkCount {
			end = linkCount
		}

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			batch.Queue(
				`INSERT INTO links (short_code, original_url, topic, user_id) VALUES ($1, $2, $3, $4) RETURNING id`,
				fmt.Sprintf("seed%07d", i),
				fmt.Sprintf("https://example.com/articles/%d", i),
				topics[i%len(topics)],
				userID,
			)
		}

		br := pool.SendBatch(ctx, batch)
		for i := start; i < end; i++ {
			var id int64
			if err := br.QueryRow().Scan(&id); err != nil {
				br.Close()
				return nil, fmt.Errorf("link insert failed: %w", err)
			}
			linkIDs = append(linkIDs, id)
		}
		if err := br.Close(); err != nil {
			return nil, err
		}
	}

	return linkIDs, nil
}

// seedVisits bulk-loads the visit log with CopyFrom: a hot head of
// heavily clicked links and a cold tail, mimicking real traffic skew.
func seedVisits(ctx context.Context, pool *pgxpool.Pool, linkIDs []int64) error {
	rng := rand.New(rand.NewSource(42))
	rows := make([][]any, 0, batchSize)

	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		_, err := pool.CopyFrom(ctx,
			pgx.Identifier{"visits"},
			[]string{"link_id", "visited_at", "user_agent", "ip_address"},
			pgx.CopyFromRows(rows),
		)
		rows = rows[:0]
		return err
	}

	for i, linkID := range linkIDs {
		visits := visitsPerColdLink
		if i < hotLinkCount {
			visits = visitsPerHotLink
		}

		for v := 0; v < visits; v++ {
			rows = append(rows, []any{
				linkID,
				time.Now().UTC().Add(-time.Duration(rng.Intn(7*24)) * time.Hour),
				userAgents[rng.Intn(len(userAgents))],
				fmt.Sprintf("203.0.113.%d", rng.Intn(255)),
			})

			if len(rows) >= batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}

	return flush()
}
