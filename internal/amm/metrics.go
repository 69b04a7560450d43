package amm

import (
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineMetrics holds all Prometheus metrics for the pool engine
type EngineMetrics struct {
	// Swap metrics
	SwapsTotal *prometheus.CounterVec
	SwapVolume *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	ShareSupply      *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal prometheus.Gauge
}

var (
	engineMetricsOnce sync.Once
	engineMetrics     *EngineMetrics
)

// NewEngineMetrics creates and registers engine metrics (singleton pattern)
func NewEngineMetrics() *EngineMetrics {
	engineMetricsOnce.Do(func() {
		engineMetrics = &EngineMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpmm",
					Subsystem: "engine",
					Name:      "swaps_total",
					Help:      "Total number of swap attempts by pool and result",
				},
				[]string{"pool", "result"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpmm",
					Subsystem: "engine",
					Name:      "swap_volume",
					Help:      "Cumulative swapped-in volume by pool and denom",
				},
				[]string{"pool", "denom"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpmm",
					Subsystem: "engine",
					Name:      "liquidity_added",
					Help:      "Cumulative liquidity deposited by pool and denom",
				},
				[]string{"pool", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpmm",
					Subsystem: "engine",
					Name:      "liquidity_removed",
					Help:      "Cumulative liquidity withdrawn by pool and denom",
				},
				[]string{"pool", "denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "cpmm",
					Subsystem: "engine",
					Name:      "pool_reserves",
					Help:      "Current tracked reserves by pool and denom",
				},
				[]string{"pool", "denom"},
			),
			ShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "cpmm",
					Subsystem: "engine",
					Name:      "share_supply",
					Help:      "Total minted pool-share units by pool",
				},
				[]string{"pool"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "cpmm",
					Subsystem: "engine",
					Name:      "pools_total",
					Help:      "Number of registered pools",
				},
			),
		}
	})
	return engineMetrics
}

// amountToFloat renders a math.Int for a metric sample. Precision loss is
// acceptable here; metrics are observability only, never pricing input.
func amountToFloat(amount math.Int) float64 {
	f, err := math.LegacyNewDecFromInt(amount).Float64()
	if err != nil {
		return 0
	}
	return f
}
