package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutAttempts counts checkout attempts by final state (COMMITTED or ABORTED_*).
	CheckoutAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boxoffice",
			Name:      "checkout_attempts_total",
			Help:      "The total number of checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	CheckoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "boxoffice",
			Name:      "checkout_duration_seconds",
			Help:      "Time spent in a checkout attempt",
			Buckets:   prometheus.DefBuckets,
		},
	)

	BasketHolds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boxoffice",
			Name:      "basket_holds_total",
			Help:      "The total number of basket selections by result",
		},
		[]string{"result"},
	)

	SeatsCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boxoffice",
			Name:      "seats_committed_total",
			Help:      "The total number of seats taken from inventory by committed checkouts",
		},
	)

	// SeatDecrementsUnknown counts decrements that failed without saying
	// whether they were applied; each may have taken seats that no booking holds.
	SeatDecrementsUnknown = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boxoffice",
			Name:      "seat_decrement_unknown_total",
			Help:      "The total number of seat decrements with an unknown outcome",
		},
	)

	SeatRestoreFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boxoffice",
			Name:      "seat_restore_failures_total",
			Help:      "The total number of rollback seat restores that failed",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "boxoffice",
			Name:      "active_sessions",
			Help:      "Number of open patron sessions",
		},
	)
)
