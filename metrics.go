// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package filetree

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the prometheus collectors updated by Tree.Find. Every
// collector is labeled by traversal strategy.
type Metrics struct {
	// Searches counts searches by strategy and outcome ("found" or
	// "not_found").
	Searches *prometheus.CounterVec
	// Visited observes the number of nodes visited per search.
	Visited *prometheus.HistogramVec
	// Duration observes the wall-clock duration of each search, in seconds.
	Duration *prometheus.HistogramVec
}

// NewMetrics returns a Metrics whose collectors are not yet registered; see
// Collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "filetree",
			Name:      "searches_total",
			Help:      "Number of tree searches by traversal strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		Visited: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "filetree",
			Name:      "search_visited_nodes",
			Help:      "Nodes visited per tree search.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}, []string{"strategy"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "filetree",
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of tree searches.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"strategy"}),
	}
}

// Collectors returns the collectors to register with a prometheus.Registerer.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Searches, m.Visited, m.Duration}
}

func (m *Metrics) record(res SearchResult) {
	strategy := res.Strategy.String()
	outcome := "not_found"
	if res.Found() {
		outcome = "found"
	}
	m.Searches.WithLabelValues(strategy, outcome).Inc()
	m.Visited.WithLabelValues(strategy).Observe(float64(res.Visited))
	m.Duration.WithLabelValues(strategy).Observe(res.Elapsed.Seconds())
}
