package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	ProfileRepo ProfileRepository
	ListRepo    ListRepository
	ContentRepo ContentRepository
	StatsRepo   StatsRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		ProfileRepo: NewProfileRepository(db),
		ListRepo:    NewListRepository(db),
		ContentRepo: NewContentRepository(db),
		StatsRepo:   NewStatsRepository(db),
	}
}
