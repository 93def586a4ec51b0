package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/Shefwef/ghuroo-api/internal/repository"
	"github.com/Shefwef/ghuroo-api/pkg/logger"
	"github.com/Shefwef/ghuroo-api/pkg/metrics"
)

// RetentionConfig controls the notification retention sweep.
type RetentionConfig struct {
	RetentionDays int
	SweepInterval time.Duration
}

// RetentionWorker periodically removes read notifications older than the
// retention window. Unread notifications are never swept.
type RetentionWorker struct {
	repo    repository.NotificationRepository
	config  RetentionConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewRetentionWorker(repo repository.NotificationRepository, config RetentionConfig, logger *logger.Logger, m *metrics.Metrics) *RetentionWorker {
	if config.RetentionDays <= 0 {
		panic("RetentionDays must be greater than 0")
	}
	if config.SweepInterval <= 0 {
		panic("SweepInterval must be greater than 0")
	}

	return &RetentionWorker{
		repo:    repo,
		config:  config,
		logger:  logger,
		metrics: m,
	}
}

func (w *RetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.SweepInterval)
	defer ticker.Stop()

	w.logger.Info("starting notification retention worker")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("shutting down notification retention worker")
			return
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				w.logger.Error(err, "retention sweep failed")
			}
		}
	}
}

// Sweep runs a single retention pass.
func (w *RetentionWorker) Sweep(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -w.config.RetentionDays)

	deleted, err := w.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to sweep notifications: %w", err)
	}

	if w.metrics != nil {
		w.metrics.RetentionSweeps.Inc()
		w.metrics.RetentionDeleted.Add(float64(deleted))
	}

	if deleted > 0 {
		w.logger.Info("retention sweep complete", "deleted", deleted)
	}
	return nil
}
