package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_transitions_total",
			Help: "Order transitions performed by the dispatch engine",
		},
		[]string{"event"},
	)

	CarriersSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_carriers_skipped_total",
			Help: "Chain positions skipped because the carrier is blocked by compliance",
		},
	)

	TimersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_timers_total",
			Help: "Fired dispatch timers by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	LiveOffers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_live_offers",
			Help: "Offers currently waiting for carrier acceptance",
		},
	)
)
