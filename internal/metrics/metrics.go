// Package metrics exposes Prometheus instrumentation for the acquisition
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueriesTotal counts search queries dispatched, by scope.
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tutorialscout_queries_total",
		Help: "Number of YouTube search queries dispatched.",
	}, []string{"scope"})

	// TutorialsAdded counts records newly inserted into the store.
	TutorialsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tutorialscout_tutorials_added_total",
		Help: "Number of tutorial records inserted.",
	})

	// DuplicatesSkipped counts insert attempts rejected as duplicates.
	DuplicatesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tutorialscout_duplicates_skipped_total",
		Help: "Number of insert attempts that hit an already-stored video id.",
	})

	// SweepDuration observes wall-clock duration of scrape sessions.
	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tutorialscout_sweep_duration_seconds",
		Help:    "Duration of scrape sessions.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)
