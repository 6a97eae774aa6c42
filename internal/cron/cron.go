package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/metrics"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron      *cron.Cron
	statsRepo repository.StatsRepository
	metrics   *metrics.Metrics
	schedule  string
}

// NewScheduler creates a scheduler that refreshes entity statistics on
// schedule (a cron spec such as "@hourly"). An empty schedule disables the
// job.
func NewScheduler(statsRepo repository.StatsRepository, m *metrics.Metrics, schedule string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		statsRepo: statsRepo,
		metrics:   m,
		schedule:  schedule,
	}
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		slog.Info("[Cron] Stats job disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		slog.Debug("[Cron] Running stats snapshot...")
		if err := s.RecordStats(context.Background()); err != nil {
			slog.Error("[Cron] Stats snapshot failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid stats schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	slog.Info("[Cron] Scheduler started", "schedule", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("[Cron] Scheduler stopped")
}

// RecordStats counts stored entities, logs them and updates the gauges.
func (s *Scheduler) RecordStats(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	stats, err := s.statsRepo.Snapshot(ctx)
	if err != nil {
		return err
	}

	s.metrics.SetEntities("profiles", stats.Profiles)
	s.metrics.SetEntities("lists", stats.Lists)
	s.metrics.SetEntities("members", stats.Members)
	s.metrics.SetEntities("items", stats.Items)

	slog.Info("[Cron] Stats",
		"profiles", stats.Profiles,
		"lists", stats.Lists,
		"members", stats.Members,
		"items", stats.Items,
	)
	return nil
}
