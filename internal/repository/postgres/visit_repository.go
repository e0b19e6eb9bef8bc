package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linklytics/linklytics/internal/domain"
)

// VisitRepository owns the append-only visit log. Each visit is a
// single-row INSERT, so concurrent redirects to the same link never
// contend or lose updates.
type VisitRepository struct {
	db *pgxpool.Pool
}

func NewVisitRepository(db *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Record(ctx context.Context, visit *domain.Visit) error {
	query := `
		INSERT INTO visits (link_id, visited_at, user_agent, ip_address, country, region, city, lat, lon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query,
		visit.LinkID,
		visit.VisitedAt,
		visit.UserAgent,
		visit.IPAddress,
		visit.Geo.Country,
		visit.Geo.Region,
		visit.Geo.City,
		visit.Geo.Lat,
		visit.Geo.Lon,
	).Scan(&visit.ID)
}

const visitColumns = `id, link_id, visited_at, user_agent, ip_address, country, region, city, lat, lon`

func (r *VisitRepository) ListByLink(ctx context.Context, linkID int64) ([]domain.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE link_id = $1`

	rows, err := r.db.Query(ctx, query, linkID)
	if err != nil {
		return nil, err
	}
	return scanVisits(rows)
}

// ListByLinks fetches the pooled visit log for a set of links, used by
// the topic and per-user analytics scopes.
func (r *VisitRepository) ListByLinks(ctx context.Context, linkIDs []int64) ([]domain.Visit, error) {
	if len(linkIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + visitColumns + ` FROM visits WHERE link_id = ANY($1)`

	rows, err := r.db.Query(ctx, query, linkIDs)
	if err != nil {
		return nil, err
	}
	return scanVisits(rows)
}

func scanVisits(rows pgx.Rows) ([]domain.Visit, error) {
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var v domain.Visit
		err := rows.Scan(
			&v.ID,
			&v.LinkID,
			&v.VisitedAt,
			&v.UserAgent,
			&v.IPAddress,
			&v.Geo.Country,
			&v.Geo.Region,
			&v.Geo.City,
			&v.Geo.Lat,
			&v.Geo.Lon,
		)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}

	return visits, rows.Err()
}
