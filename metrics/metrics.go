// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ServerMetrics holds the prometheus collectors for the API server.
// Construct once via NewServerMetrics; promauto registers collectors
// with the default registry at construction time.
type ServerMetrics struct {
	VotesCast       *prometheus.CounterVec
	AdminActions    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func NewServerMetrics(namespace, subsystem string) *ServerMetrics {
	return &ServerMetrics{
		VotesCast: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "votes_cast_total",
				Help:      "Total number of votes accepted",
			},
			[]string{"candidate_id"},
		),
		AdminActions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "admin_actions_total",
				Help:      "Total number of successful election lifecycle actions",
			},
			[]string{"action"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Histogram of HTTP request handling times",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
