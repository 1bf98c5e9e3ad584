package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every metric exported by the service.
const Namespace = "museum_search"

// Query-path Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Total number of catalog searches",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end catalog search duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_results_returned",
			Help:      "Number of hits returned per search",
			Buckets:   []float64{0, 1, 3, 5, 10, 25, 50, 100},
		},
	)

	TopicTransformDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "topic_transform_duration_seconds",
			Help:      "Query topic inference duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.25, 1, 5},
		},
		[]string{"inference"},
	)

	ExhibitionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "exhibition_requests_total",
			Help:      "Total number of top-exhibition aggregations",
		},
		[]string{"status"},
	)

	CorpusRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "corpus_records",
			Help:      "Number of records in the loaded corpus",
		},
	)

	IndexRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "index_rows",
			Help:      "Number of vectors in the loaded nearest-neighbor index",
		},
	)

	TopicCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "topic_model_topics",
			Help:      "Number of topics in the loaded topic model",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers query-path metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsReturned)
	prometheus.MustRegister(TopicTransformDuration)
	prometheus.MustRegister(ExhibitionRequestsTotal)
	prometheus.MustRegister(CorpusRecords)
	prometheus.MustRegister(IndexRows)
	prometheus.MustRegister(TopicCount)
	searchMetricsRegistered = true
}
