// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gargnikhil/statement-extractor/pkg/storage"
)

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron    *cron.Cron
	staging *storage.Staging
	maxAge  time.Duration
	logger  *slog.Logger
}

// NewScheduler creates a scheduler that sweeps stale staged uploads.
// Files older than maxAge are removed.
func NewScheduler(staging *storage.Staging, maxAge time.Duration, logger *slog.Logger) *Scheduler {
	// Create cron with seconds disabled (standard 5-field format)
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:    c,
		staging: staging,
		maxAge:  maxAge,
		logger:  logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	// Stale upload sweep: runs hourly
	_, err := s.cron.AddFunc("0 * * * *", s.sweepStaleUploads)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the upload sweep (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.sweepStaleUploads()
}

// sweepStaleUploads removes staged statement files whose requests never
// cleaned up after themselves, typically after a crashed handler.
func (s *Scheduler) sweepStaleUploads() {
	s.logger.Info("starting stale upload sweep", slog.String("dir", s.staging.Dir()))

	removed, err := s.staging.SweepOlderThan(s.maxAge)
	if err != nil {
		s.logger.Error("stale upload sweep failed", slog.Any("error", err))
		return
	}

	s.logger.Info("stale upload sweep completed", slog.Int("removed", removed))
}
