package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Fan-out related metrics
	FanoutEvents      *prometheus.CounterVec
	FanoutFailures    *prometheus.CounterVec
	FanoutRecipients  prometheus.Histogram
	FanoutDuration    prometheus.Histogram
	NotificationsSent prometheus.Counter

	// Retention worker metrics
	RetentionSweeps  prometheus.Counter
	RetentionDeleted prometheus.Counter

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Broker metrics
	BrokerPublishes *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		FanoutEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fanout_events_total",
			Help:      "Total number of domain events fanned out to recipients",
		}, []string{"event_type"}),
		FanoutFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fanout_failures_total",
			Help:      "Total number of notification creates that failed during fan-out",
		}, []string{"event_type"}),
		FanoutRecipients: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fanout_recipients",
			Help:      "Number of recipients resolved per fanned-out event",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		FanoutDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fanout_duration_seconds",
			Help:      "Time spent fanning out a single domain event",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notifications_created_total",
			Help:      "Total number of notification records created",
		}),
		RetentionSweeps: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "retention_sweeps_total",
			Help:      "Total number of notification retention sweeps",
		}),
		RetentionDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "retention_deleted_total",
			Help:      "Total number of notifications removed by the retention worker",
		}),
		DatabaseOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operation_duration_seconds",
			Help:      "Time spent executing database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		BrokerPublishes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "broker_publishes_total",
			Help:      "Total number of broker publish attempts",
		}, []string{"status"}),
	}
}
