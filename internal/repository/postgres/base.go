package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Shefwef/ghuroo-api/pkg/metrics"
)

// BaseRepository carries the shared database handle and instrumentation
// embedded by every concrete repository.
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) BaseRepository {
	return BaseRepository{db: db, metrics: m}
}

// WithTx runs op inside a transaction, committing on nil and rolling back
// on error or panic. The op's error is returned unwrapped so sentinel
// checks like sql.ErrNoRows survive the boundary.
func (r *BaseRepository) WithTx(ctx context.Context, op func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := op(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// observe records one repository operation. Metrics are optional so tests
// can construct repositories without a registry.
func (r *BaseRepository) observe(operation string, start time.Time, err error) {
	if r.metrics == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	r.metrics.DatabaseOperations.WithLabelValues(operation, status).Inc()
	r.metrics.DatabaseLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
