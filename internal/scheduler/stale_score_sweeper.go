package scheduler

import (
	"context"
	"time"

	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/platform/logger"
)

const (
	defaultSweepInterval = time.Hour
	defaultStaleScoreAge = 7 * 24 * time.Hour
	sweepBatchSize       = 100
)

// StaleScoreSweeper periodically finds leads whose score is older than the
// configured age (or that were never scored) and enqueues re-scoring tasks.
type StaleScoreSweeper struct {
	repo      *repository.Repository
	scheduler ScoreScheduler
	log       *logger.Logger
	interval  time.Duration
	staleAge  time.Duration
}

func NewStaleScoreSweeper(repo *repository.Repository, scheduler ScoreScheduler, log *logger.Logger, interval, staleAge time.Duration) *StaleScoreSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	if staleAge <= 0 {
		staleAge = defaultStaleScoreAge
	}

	return &StaleScoreSweeper{
		repo:      repo,
		scheduler: scheduler,
		log:       log,
		interval:  interval,
		staleAge:  staleAge,
	}
}

func (s *StaleScoreSweeper) Run(ctx context.Context) {
	if s == nil || s.repo == nil || s.scheduler == nil {
		return
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *StaleScoreSweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.staleAge)

	refs, err := s.repo.ListStaleLeads(ctx, cutoff, sweepBatchSize)
	if err != nil {
		s.log.Warn("stale score sweep failed", "error", err)
		return
	}
	if len(refs) == 0 {
		return
	}

	enqueued := 0
	for _, ref := range refs {
		err := s.scheduler.ScheduleLeadScore(ctx, LeadScorePayload{
			LeadID:   ref.LeadID.String(),
			TenantID: ref.TenantID.String(),
		})
		if err != nil {
			s.log.Warn("stale score enqueue failed", "error", err, "leadId", ref.LeadID)
			continue
		}
		enqueued++
	}

	s.log.Info("stale score sweep enqueued re-scores", "count", enqueued)
}
