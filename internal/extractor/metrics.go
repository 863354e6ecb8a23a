package extractor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var parsesCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "activity_analytics",
		Subsystem: "extractor",
		Name:      "transcript_parses_total",
		Help:      "Transcript parse attempts by outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(parsesCounter)
}

func recordParse(outcome string) {
	parsesCounter.WithLabelValues(outcome).Inc()
}
