// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/service"
	"github.com/MKhiriev/go-diff-sync/models"
)

// SyncJob calls BeginSync for one session on a fixed interval. A failed
// sync is logged and retried on the next tick; the job never stops on its
// own.
type SyncJob struct {
	syncService service.SyncService
	session     models.SyncSession
	interval    time.Duration

	stats *syncStats

	logger *logger.Logger
}

// NewSyncJob creates a job for session. A non-positive interval defaults to
// one minute.
func NewSyncJob(syncService service.SyncService, session models.SyncSession, interval time.Duration, logger *logger.Logger) *SyncJob {
	if interval <= 0 {
		interval = time.Minute
	}

	return &SyncJob{
		syncService: syncService,
		session:     session,
		interval:    interval,
		stats:       newSyncStats(),
		logger:      logger,
	}
}

// Run syncs once immediately and then on every tick until ctx is cancelled.
func (j *SyncJob) Run(ctx context.Context) {
	j.logger.Info().
		Str("db", j.session.DatabaseName).
		Dur("interval", j.interval).
		Msg("sync job started")

	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		j.runOnce(ctx)

		select {
		case <-ctx.Done():
			j.logger.Info().Str("db", j.session.DatabaseName).Msg("sync job stopped")
			return
		case <-t.C:
		}
	}
}

func (j *SyncJob) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	_, err := j.syncService.BeginSync(ctx, j.session)
	report := j.stats.record(time.Since(start), err)

	var event *zerolog.Event
	if err != nil {
		event = j.logger.Warn().Err(err)
	} else {
		event = j.logger.Info()
	}
	event.
		Str("db", j.session.DatabaseName).
		Int("runs", report.Runs).
		Int("failures", report.Failures).
		Dur("avg_latency", report.AvgLatency).
		Msg("sync finished")
}

// Report returns the job's counters so far.
func (j *SyncJob) Report() SyncReport {
	return j.stats.report()
}
