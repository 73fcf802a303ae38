package pathfind

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes, used as the "outcome" metric label.
const (
	outcomeFound       = "found"
	outcomeNoPath      = "no_path"
	outcomeInvalid     = "invalid_endpoint"
	outcomeUnreachable = "unreachable_endpoint"
)

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mazepath_searches_total",
		Help: "Total path searches by outcome",
	}, []string{"outcome"})

	expandedNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mazepath_search_expanded_nodes",
		Help:    "Frontier pops per completed search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	relaxedNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mazepath_search_relaxed_nodes_total",
		Help: "Nodes whose distance was lowered after first discovery",
	})
)

func recordSearch(outcome string, res Result) {
	searchesTotal.WithLabelValues(outcome).Inc()
	if outcome != outcomeFound && outcome != outcomeNoPath {
		return
	}
	expandedNodes.Observe(float64(res.Expanded))
	relaxedNodes.Add(float64(res.Relaxed))
}
