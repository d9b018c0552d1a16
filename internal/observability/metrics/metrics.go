package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status_class"},
	)

	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_http_errors_total",
			Help: "Total number of HTTP error responses",
		},
		[]string{"status", "method"},
	)

	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_errors_total",
			Help: "Total number of domain errors by category and code",
		},
		[]string{"category", "code", "status"},
	)
)

var (
	WebSocketConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notify_websocket_connections_active",
			Help: "Number of active WebSocket connections",
		},
	)

	WebSocketRegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_websocket_registrations_total",
			Help: "Total number of identity registrations on the socket channel",
		},
	)

	WebSocketDisconnections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_websocket_disconnections_total",
			Help: "Total number of WebSocket disconnections",
		},
		[]string{"reason"},
	)

	FanOutEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_fanout_events_total",
			Help: "Total number of fan-out invocations by event kind",
		},
		[]string{"kind"},
	)

	FanOutCandidatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_fanout_candidates_total",
			Help: "Total number of recipient candidates across fan-outs",
		},
	)

	FanOutDeliveredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_fanout_delivered_total",
			Help: "Total number of notifications delivered",
		},
	)

	FanOutDeliveryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_fanout_delivery_failures_total",
			Help: "Total number of per-recipient delivery failures",
		},
	)

	FanOutAborted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_fanout_aborted_total",
			Help: "Total number of fan-outs aborted by membership lookup failure",
		},
	)
)

var (
	DBPoolAcquiredConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_acquired_connections",
			Help: "Number of acquired database connections",
		},
	)

	DBPoolIdleConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Number of idle database connections",
		},
	)

	DBPoolMaxConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_max_connections",
			Help: "Maximum number of database connections",
		},
	)

	DBPoolTotalConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_total_connections",
			Help: "Total number of database connections",
		},
	)
)
