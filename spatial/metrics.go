package spatial

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	indexKindLabel = "index_kind"
)

var (
	candidatePairs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spatial_index_candidate_pairs_total",
		Help: "The number of object pairs tested for intersection during collision detection.",
	}, []string{indexKindLabel})

	collisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spatial_index_collisions_total",
		Help: "The number of collisions reported by collision detection.",
	}, []string{indexKindLabel})

	detectionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "spatial_index_detection_duration_seconds",
		Help: "The time to detect the collisions of a whole index.",
	}, []string{indexKindLabel})

	queryCandidates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spatial_index_query_candidates_total",
		Help: "The number of objects tested against a region query.",
	}, []string{indexKindLabel})

	queryMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spatial_index_query_matches_total",
		Help: "The number of objects returned by region queries.",
	}, []string{indexKindLabel})

	relocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spatial_index_relocations_total",
		Help: "The number of entries moved within a cell by swap removals.",
	}, []string{indexKindLabel})
)

// InstrumentDetection records the outcome of a collision detection that
// started at the given time.
func InstrumentDetection(kind string, start time.Time, candidates, found int) {
	labels := prometheus.Labels{indexKindLabel: kind}

	detectionLatency.With(labels).Observe(time.Since(start).Seconds())
	candidatePairs.With(labels).Add(float64(candidates))
	collisions.With(labels).Add(float64(found))
}

// InstrumentQuery records the outcome of a region query.
func InstrumentQuery(kind string, candidates, matches int) {
	labels := prometheus.Labels{indexKindLabel: kind}

	queryCandidates.With(labels).Add(float64(candidates))
	queryMatches.With(labels).Add(float64(matches))
}

func InstrumentRelocation(kind string) {
	relocations.
		With(prometheus.Labels{indexKindLabel: kind}).
		Inc()
}
