package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linklytics/linklytics/internal/domain"
)

type LinkRepository struct {
	db *pgxpool.Pool
}

func NewLinkRepository(db *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) Create(ctx context.Context, link *domain.Link) error {
	query := `
		INSERT INTO links (short_code, custom_alias, original_url, topic, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	alias := sql.NullString{String: link.CustomAlias, Valid: link.CustomAlias != ""}

	return r.db.QueryRow(ctx, query,
		link.ShortCode,
		alias,
		link.OriginalURL,
		link.Topic,
		link.UserID,
	).Scan(&link.ID, &link.CreatedAt)
}

// GetBySlug resolves a short code or custom alias. Aliases win when the
// same string could be both, since aliases are user-chosen.
func (r *LinkRepository) GetBySlug(ctx context.Context, slug string) (*domain.Link, error) {
	query := `
		SELECT id, short_code, COALESCE(custom_alias, ''), original_url, topic, user_id, created_at
		FROM links
		WHERE custom_alias = $1 OR short_code = $1
		ORDER BY (custom_alias = $1) DESC NULLS LAST
		LIMIT 1
	`

	var link domain.Link
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&link.ID,
		&link.ShortCode,
		&link.CustomAlias,
		&link.OriginalURL,
		&link.Topic,
		&link.UserID,
		&link.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &link, nil
}

func (r *LinkRepository) ListByTopic(ctx context.Context, topic domain.Topic) ([]domain.Link, error) {
	query := `
		SELECT id, short_code, COALESCE(custom_alias, ''), original_url, topic, user_id, created_at
		FROM links
		WHERE topic = $1
		ORDER BY id
	`

	return r.list(ctx, query, topic)
}

func (r *LinkRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Link, error) {
	query := `
		SELECT id, short_code, COALESCE(custom_alias, ''), original_url, topic, user_id, created_at
		FROM links
		WHERE user_id = $1
		ORDER BY id
	`

	return r.list(ctx, query, userID)
}

func (r *LinkRepository) list(ctx context.Context, query string, arg any) ([]domain.Link, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var link domain.Link
		err := rows.Scan(
			&link.ID,
			&link.ShortCode,
			&link.CustomAlias,
			&link.OriginalURL,
			&link.Topic,
			&link.UserID,
			&link.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}
