package compliance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeHit      = "hit"
	outcomeMiss     = "miss"
	outcomeFallback = "fallback"
)

var (
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_cache_lookups_total",
			Help: "Compliance cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "compliance_cache_entries",
			Help: "Number of entries currently held in the compliance cache",
		},
	)
)
