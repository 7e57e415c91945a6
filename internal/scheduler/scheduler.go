package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"PipSignal/internal/metrics"
	"PipSignal/internal/recorder"
)

// Scheduler runs the periodic housekeeping jobs.
type Scheduler struct {
	Cron         *cron.Cron
	Recorder     recorder.Recorder
	Metrics      *metrics.Metrics
	HistoryLimit int
	Ctx          context.Context
}

// NewScheduler creates a new Scheduler. Cron expressions carry a seconds field.
func NewScheduler(ctx context.Context, rec recorder.Recorder, m *metrics.Metrics, historyLimit int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Recorder:     rec,
		Metrics:      m,
		HistoryLimit: historyLimit,
		Ctx:          ctx,
	}
}

// RegisterAll registers the history prune job.
func (s *Scheduler) RegisterAll(pruneCron string) error {
	if _, err := s.Cron.AddFunc(pruneCron, s.pruneTask); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	zap.L().Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	zap.L().Info("scheduler stopped")
}

// PruneNow trims the signal history to HistoryLimit entries.
func (s *Scheduler) PruneNow() (int64, error) {
	removed, err := s.Recorder.Prune(s.Ctx, s.HistoryLimit)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	if s.Metrics != nil && removed > 0 {
		s.Metrics.HistoryPruned.Add(float64(removed))
	}
	return removed, nil
}

func (s *Scheduler) pruneTask() {
	removed, err := s.PruneNow()
	if err != nil {
		zap.L().Error("history prune failed", zap.Error(err))
		return
	}
	if removed > 0 {
		zap.L().Info("history pruned", zap.Int64("removed", removed), zap.Int("kept", s.HistoryLimit))
	}
}
