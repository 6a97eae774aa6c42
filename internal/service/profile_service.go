package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/auth"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
)

// ============================================
// Profile Service
// ============================================

type ProfileService interface {
	// Current returns the Profile for the identity provider user, creating it
	// on first sign-in.
	Current(ctx context.Context, identity auth.Identity) (*repository.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*repository.Profile, error)
}

// ProfileCache stores resolved profiles by user id. *db.RedisDB satisfies it.
type ProfileCache interface {
	SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetCache(ctx context.Context, key string, dest interface{}) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
	cache       ProfileCache
	cacheTTL    time.Duration
}

// NewProfileService creates the service. cache may be nil.
func NewProfileService(profileRepo repository.ProfileRepository, cache ProfileCache, cacheTTL time.Duration) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func profileCacheKey(userID string) string {
	return "profile:user:" + userID
}

func (s *profileService) Current(ctx context.Context, identity auth.Identity) (*repository.Profile, error) {
	const op = "ProfileService.Current"

	if identity.UserID == "" {
		return nil, newError(ErrForbidden, op, "sign in required")
	}

	key := profileCacheKey(identity.UserID)
	if s.cache != nil {
		var cached repository.Profile
		if err := s.cache.GetCache(ctx, key, &cached); err == nil && cached.ID != "" {
			return &cached, nil
		}
	}

	profile, err := s.profileRepo.FindByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, storageError(op, err)
	}

	if profile == nil {
		profile = &repository.Profile{
			UserID:   identity.UserID,
			Name:     identity.Name,
			Email:    identity.Email,
			ImageURL: identity.ImageURL,
		}
		if profile.Name == "" {
			profile.Name = identity.Email
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			err := storageError(op, err)
			slog.Error("Failed to create profile", "context", op, "userId", identity.UserID, "error", err)
			return nil, err
		}
		slog.Info("Created profile", "context", op, "userId", identity.UserID, "profileId", profile.ID)
	}

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, key, profile, s.cacheTTL); err != nil {
			slog.Warn("Failed to cache profile", "context", op, "userId", identity.UserID, "error", err)
		}
	}
	return profile, nil
}

func (s *profileService) FindByUserID(ctx context.Context, userID string) (*repository.Profile, error) {
	const op = "ProfileService.FindByUserID"

	slog.Info("Finding profile", "context", op, "userId", userID)
	if userID == "" {
		return nil, newError(ErrBadRequest, op, "userId is required")
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storageError(op, err)
	}
	if profile == nil {
		return nil, newError(ErrNotFound, op, "missing profile for userId '"+userID+"'")
	}
	return profile, nil
}
