package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reactionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reactions_applied_total",
			Help: "Committed reaction changes by content type and outcome",
		},
		[]string{"content_type", "outcome"},
	)

	reactionConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reaction_conflicts_total",
			Help: "Reaction requests abandoned after repeated concurrent changes",
		},
		[]string{"content_type"},
	)

	pointDeltaApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reaction_point_delta_total",
			Help: "Sum of absolute point deltas applied to authors, by direction",
		},
		[]string{"content_type", "direction"},
	)

	authorMissing = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reaction_author_missing_total",
			Help: "Point deltas skipped because the content author no longer exists",
		},
		[]string{"content_type"},
	)
)

func observePointDelta(contentType string, delta int) {
	switch {
	case delta > 0:
		pointDeltaApplied.WithLabelValues(contentType, "credit").Add(float64(delta))
	case delta < 0:
		pointDeltaApplied.WithLabelValues(contentType, "debit").Add(float64(-delta))
	}
}
