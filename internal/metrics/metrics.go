package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estateline_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Real-time metrics
	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "estateline_ws_connections_active",
			Help: "Currently registered live connections",
		},
	)

	FramesDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "estateline_ws_frames_delivered_total",
			Help: "Outbound frames written to a live connection",
		},
	)

	FramesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "estateline_ws_frames_dropped_total",
			Help: "Outbound frames dropped because the receiver had no live connection",
		},
	)

	// Dispatcher metrics
	MessagesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estateline_messages_dispatched_total",
			Help: "Messages accepted by the dispatcher",
		},
		[]string{"kind"}, // "personal" or "group"
	)

	RelayForwardFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "estateline_relay_forward_failures_total",
			Help: "Failed calls to the persistence service from the relay",
		},
	)

	SnapshotFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estateline_snapshot_failures_total",
			Help: "Failed snapshot saves",
		},
		[]string{"collection"},
	)
)
