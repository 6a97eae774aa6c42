package service

import (
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/metrics"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
)

// ============================================
// Services Container
// ============================================

type Services struct {
	List    ListService
	Profile ProfileService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Repos           *repository.Repositories
	Cache           ProfileCache // optional
	ProfileCacheTTL time.Duration
	Metrics         *metrics.Metrics // optional
}

func NewServices(deps *ServiceDeps) *Services {
	return &Services{
		List:    NewListService(deps.Repos.ListRepo, deps.Repos.ContentRepo, deps.Metrics),
		Profile: NewProfileService(deps.Repos.ProfileRepo, deps.Cache, deps.ProfileCacheTTL),
	}
}
