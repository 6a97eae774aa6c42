package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type Profile struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type ProfileRepository interface {
	// Create stores a new profile. If one already exists for the same UserID
	// the stored row is returned instead, so concurrent first sign-ins agree.
	Create(ctx context.Context, profile *Profile) error
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
}

const profileColumns = `id, user_id, name, email, image_url, created_at, updated_at`

type pgProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &pgProfileRepository{db: db}
}

func (r *pgProfileRepository) Create(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, email, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + profileColumns
	err := r.db.GetContext(ctx, profile, query,
		profile.UserID, profile.Name, profile.Email, profile.ImageURL,
	)
	return classify(err)
}

func (r *pgProfileRepository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	p := &Profile{}
	err := r.db.GetContext(ctx, p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
