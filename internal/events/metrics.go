package events

import "github.com/prometheus/client_golang/prometheus"

var (
	publishedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activity_analytics",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Number of activity events successfully published to Kafka.",
	})

	publishFailedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activity_analytics",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Number of activity events that failed to publish.",
	})
)

func init() {
	prometheus.MustRegister(publishedCounter, publishFailedCounter)
}
