package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Request volume
	RequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "requests_total",
		Help: "Total number of API requests received.",
	})

	// Concurrency (in flight)
	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_requests",
		Help: "Current number of in-flight requests.",
	})

	// Request latency (handler duration)
	RequestDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "request_duration_seconds",
		Help:    "End-to-end handler duration for API requests.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	})

	// Game sessions started
	GameSessionsStartedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "game_sessions_started_total",
		Help: "Total number of game sessions started.",
	})

	// Score submissions
	ScoresSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scores_submitted_total",
		Help: "Total number of game results submitted.",
	})

	// Rate limiting drops
	RateLimitDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_dropped_total",
		Help: "Requests rejected by the per-IP rate limiter.",
	})
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		RequestsTotal,
		ActiveRequests,
		RequestDurationSeconds,
		GameSessionsStartedTotal,
		ScoresSubmittedTotal,
		RateLimitDroppedTotal,
	)
}
