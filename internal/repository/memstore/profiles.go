package memstore

import (
	"context"

	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/google/uuid"
)

type profileRepository struct {
	s *Store
}

var _ repository.ProfileRepository = (*profileRepository)(nil)

func (r *profileRepository) Create(ctx context.Context, profile *repository.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.profiles {
		if existing.UserID == profile.UserID {
			*profile = existing
			return nil
		}
	}

	now := r.s.now()
	profile.ID = uuid.NewString()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.s.profiles[profile.ID] = *profile
	return nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*repository.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}
