package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics with bounded cardinality (no per-client labels)
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "combat_tick_duration_seconds",
		Help:    "Time spent in one arena tick including network sync",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
	})

	actorCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "combat_actor_count",
		Help: "Actors currently in the arena",
	})

	clientCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "combat_clients_connected",
		Help: "Currently connected network clients",
	})

	// Bounded: one series per notification tag
	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "combat_notifications_total",
		Help: "Combat notifications published by the arena",
	}, []string{"tag"})

	// Bounded: "rate_limit", "invalid", "not_joined"
	commandsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "combat_commands_rejected_total",
		Help: "Client commands dropped before reaching the arena",
	}, []string{"reason"})

	commandsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "combat_commands_accepted_total",
		Help: "Client commands submitted to the arena",
	})
)

// Command rejection reasons.
const (
	rejectRateLimit = "rate_limit"
	rejectInvalid   = "invalid"
	rejectNotJoined = "not_joined"
)
