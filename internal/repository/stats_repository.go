package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Stats struct {
	Profiles int `db:"profiles"`
	Lists    int `db:"lists"`
	Members  int `db:"members"`
	Items    int `db:"items"`
}

type StatsRepository interface {
	Snapshot(ctx context.Context) (*Stats, error)
}

type pgStatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &pgStatsRepository{db: db}
}

func (r *pgStatsRepository) Snapshot(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM profiles) AS profiles,
			(SELECT COUNT(*) FROM lists)    AS lists,
			(SELECT COUNT(*) FROM members)  AS members,
			(SELECT COUNT(*) FROM items)    AS items
	`
	stats := &Stats{}
	if err := r.db.GetContext(ctx, stats, query); err != nil {
		return nil, err
	}
	return stats, nil
}
