/**
 * @description
 * Cron scheduler setup for the maintenance jobs.
 */
package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/weblifystudio/quote-service/internal/config"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron   *cron.Cron
	jobs   *Jobs
	logger *slog.Logger
	config config.Config
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(jobs *Jobs, logger *slog.Logger, cfg config.Config) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:   c,
		jobs:   jobs,
		logger: logger,
		config: cfg,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.config.SessionSweepCron, s.jobs.SweepSessions); err != nil {
		s.logger.Error("failed to schedule session sweep job", "error", err)
	} else {
		s.logger.Info("scheduled session sweep job", "schedule", s.config.SessionSweepCron)
	}

	if _, err := s.cron.AddFunc(s.config.StatsRefreshCron, s.jobs.RefreshStats); err != nil {
		s.logger.Error("failed to schedule stats refresh job", "error", err)
	} else {
		s.logger.Info("scheduled stats refresh job", "schedule", s.config.StatsRefreshCron)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
