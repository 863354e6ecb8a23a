// Package observability registers service-level Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activityPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activity_analytics",
		Subsystem: "store",
		Name:      "last_activity_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent activity written to the store.",
	})

	activityCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activity_analytics",
		Subsystem: "store",
		Name:      "activities_created_total",
		Help:      "Number of activity records accepted.",
	})

	backfillCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_analytics",
		Subsystem: "store",
		Name:      "created_at_backfills_total",
		Help:      "Number of createdAt backfill attempts, labeled by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(activityPersistGauge, activityCreatedCounter, backfillCounter)
}

// RecordActivityPersisted updates the persistence watermark gauge and the
// accepted-records count.
func RecordActivityPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	activityPersistGauge.Set(float64(ts.Unix()))
	activityCreatedCounter.Inc()
}

// RecordBackfill counts one createdAt repair attempt.
func RecordBackfill(outcome string) {
	backfillCounter.WithLabelValues(outcome).Inc()
}
