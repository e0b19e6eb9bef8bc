package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linklytics/linklytics/internal/domain"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertByGoogleID implements the find-or-create the login callback
// needs. Profile fields are refreshed on every login.
func (r *UserRepository) UpsertByGoogleID(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (google_id, display_name, email, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (google_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    email = EXCLUDED.email,
		    avatar_url = EXCLUDED.avatar_url
		RETURNING id, created_at
	`

	return r.db.QueryRow(ctx, query,
		user.GoogleID,
		user.DisplayName,
		user.Email,
		user.AvatarURL,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, google_id, display_name, email, COALESCE(avatar_url, ''), created_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.GoogleID,
		&user.DisplayName,
		&user.Email,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
