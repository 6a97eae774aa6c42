package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/api/handlers"
	"github.com/Marga-Ghale/ora-lists/internal/api/middleware"
	"github.com/Marga-Ghale/ora-lists/internal/auth"
	"github.com/Marga-Ghale/ora-lists/internal/metrics"
	"github.com/Marga-Ghale/ora-lists/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type RouterDeps struct {
	Services       *service.Services
	Verifier       *auth.Verifier
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	CORSOrigins    []string
	MaintenanceKey string
	HealthChecks   map[string]HealthCheck
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics(deps.Metrics))

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.MaintenanceKeyHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{}
		for name, check := range deps.HealthChecks {
			if err := check(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		health := "healthy"
		if status != http.StatusOK {
			health = "degraded"
		}
		c.JSON(status, gin.H{
			"status":    health,
			"timestamp": time.Now(),
			"checks":    checks,
		})
	})

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	h := handlers.NewHandlers(deps.Services)

	api := r.Group("/api")
	{
		// Maintenance routes (shared key, no user)
		api.POST("/populate/:listId", middleware.MaintenanceKey(deps.MaintenanceKey), h.Maintenance.Populate)

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.Services.Profile))
		{
			protected.GET("/profiles/me", h.Profile.Me)

			lists := protected.Group("/lists")
			{
				lists.GET("", h.List.List)
				lists.POST("", h.List.Create)
				lists.GET("/:id", h.List.Get)
				lists.PATCH("/:id", h.List.Update)
				lists.DELETE("/:id", h.List.Delete)
				lists.POST("/:id/invite-code", h.List.RegenerateInviteCode)
				lists.GET("/:id/contents", h.List.Contents)
				lists.DELETE("/:id/members/:memberId", h.List.RemoveMember)
				lists.PATCH("/:id/members/:memberId", h.List.UpdateMemberRole)
			}

			invites := protected.Group("/invites")
			{
				invites.GET("/:inviteCode", h.Invite.Get)
				invites.POST("/:inviteCode", h.Invite.Join)
			}
		}
	}

	return r
}
