package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Shefwef/ghuroo-api/pkg/metrics"
)

func TestObserveRecordsOperationOutcome(t *testing.T) {
	m := metrics.NewMetrics("test", "repo")
	base := NewBaseRepository(nil, m)

	base.observe("booking_update_status", time.Now(), nil)
	base.observe("booking_update_status", time.Now(), errors.New("connection reset"))
	base.observe("booking_update_status", time.Now(), nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("booking_update_status", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("booking_update_status", "error")))
}

func TestObserveWithoutMetrics(t *testing.T) {
	base := NewBaseRepository(nil, nil)

	assert.NotPanics(t, func() {
		base.observe("notification_get", time.Now(), nil)
	})
}
