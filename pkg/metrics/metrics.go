package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "optirota"

	OUTCOME_FOUND   = "found"
	OUTCOME_NO_PATH = "no_path"
	OUTCOME_ERROR   = "error"
)

var (
	// queryLatency labels: algorithm (dijkstra, astar), outcome (found, no_path, error)
	queryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "routing",
		Name:      "query_duration_seconds",
		Help:      "Shortest path query latency in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"algorithm", "outcome"})

	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "routing",
		Name:      "queries_total",
		Help:      "Total shortest path queries by algorithm and outcome",
	}, []string{"algorithm", "outcome"})

	settledVertices = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "routing",
		Name:      "settled_vertices",
		Help:      "Vertices settled per shortest path query",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"algorithm"})

	batchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "batch_duration_seconds",
		Help:      "Duration of a batch analysis run in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
	}, []string{"algorithm"})

	batchSources = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "sources_total",
		Help:      "Total sources analyzed by algorithm",
	}, []string{"algorithm"})

	batchUnreachable = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "unreachable_pairs_total",
		Help:      "Total source/destination pairs without a path",
	}, []string{"algorithm"})

	graphSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "graph",
		Name:      "size",
		Help:      "Number of vertices and edges of the loaded road graph",
	}, []string{"kind"})
)

// RecordQuery records one shortest path query.
func RecordQuery(algorithm, outcome string, durationSec float64, settled int) {
	queryLatency.WithLabelValues(algorithm, outcome).Observe(durationSec)
	queryTotal.WithLabelValues(algorithm, outcome).Inc()
	if outcome != OUTCOME_ERROR {
		settledVertices.WithLabelValues(algorithm).Observe(float64(settled))
	}
}

// RecordBatch records a finished analyzer run.
func RecordBatch(algorithm string, durationSec float64, sources, unreachablePairs int) {
	batchDuration.WithLabelValues(algorithm).Observe(durationSec)
	batchSources.WithLabelValues(algorithm).Add(float64(sources))
	batchUnreachable.WithLabelValues(algorithm).Add(float64(unreachablePairs))
}

func SetGraphSize(vertices, edges int) {
	graphSize.WithLabelValues("vertices").Set(float64(vertices))
	graphSize.WithLabelValues("edges").Set(float64(edges))
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
