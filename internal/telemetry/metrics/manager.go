package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests              *prometheus.CounterVec
	CounterHandleRequestPanic    prometheus.Counter
	CounterRateLimitedRequests   prometheus.Counter
	CounterWorkouts              prometheus.Counter
	CounterStreakUpdates         *prometheus.CounterVec
	CounterStreakUpdateFailures  prometheus.Counter
	CounterLeaderboards          *prometheus.CounterVec
	CounterReconciledStreaks     prometheus.Counter
	CounterReconciliationFailure prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistReconcileDuration    prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("kraft", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("kraft", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}
	}

	return &Manager{
		CounterRequests: factory.NewCounterVec(
			counterOpts("request", "The total number of incoming requests"),
			[]string{"method", "status"},
		),
		CounterHandleRequestPanic: factory.NewCounter(
			counterOpts("handle_request_panic", "The total number of serve request panics"),
		),
		CounterRateLimitedRequests: factory.NewCounter(
			counterOpts("rate_limited_requests", "The total number of rate limited requests"),
		),
		CounterWorkouts: factory.NewCounter(
			counterOpts("workouts_created", "The total number of logged workouts"),
		),
		CounterStreakUpdates: factory.NewCounterVec(
			counterOpts("streak_updates", "Streak updates by outcome"),
			[]string{"outcome"},
		),
		CounterStreakUpdateFailures: factory.NewCounter(
			counterOpts("streak_update_failures", "Streak updates that failed after a workout was stored"),
		),
		CounterLeaderboards: factory.NewCounterVec(
			counterOpts("leaderboards_built", "Leaderboards built by period and scope"),
			[]string{"period", "scope"},
		),
		CounterReconciledStreaks: factory.NewCounter(
			counterOpts("streaks_reconciled", "Streaks recomputed by the reconciliation job"),
		),
		CounterReconciliationFailure: factory.NewCounter(
			counterOpts("streak_reconcile_failures", "Users whose streak could not be reconciled"),
		),

		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests served",
		}),
		GaugeLifeSignal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "life_signal",
			Help:      "Shows whether the service is alive",
		}),

		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status_code"}),
		HistReconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "streak_reconcile_duration_seconds",
			Help:      "Duration of a full streak reconciliation run in seconds",
			Buckets:   []float64{0.01, 0.1, 1, 5, 10, 30, 60, 120, 300, 600},
		}),
	}
}
