package memstore

import (
	"context"

	"github.com/Marga-Ghale/ora-lists/internal/repository"
)

type statsRepository struct {
	s *Store
}

var _ repository.StatsRepository = (*statsRepository)(nil)

func (r *statsRepository) Snapshot(ctx context.Context) (*repository.Stats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return &repository.Stats{
		Profiles: len(r.s.profiles),
		Lists:    len(r.s.lists),
		Members:  len(r.s.members),
		Items:    len(r.s.items),
	}, nil
}
