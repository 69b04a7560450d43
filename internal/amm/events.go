package amm

import (
	"github.com/cascade-dex/cpmm/internal/types"
)

// Notifier receives notifications after a pool mutation has settled: reserves,
// share supply, and asset custody all reflect the completed operation. Each
// notification carries the post-operation pool snapshot. Notifications run
// inside the operation's critical section, so implementations must not call
// back into the same pool.
type Notifier interface {
	SwapExecuted(event types.SwapEvent, pool types.PoolSnapshot)
	LiquidityAdded(event types.AddLiquidityEvent, pool types.PoolSnapshot)
	LiquidityRemoved(event types.RemoveLiquidityEvent, pool types.PoolSnapshot)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) SwapExecuted(types.SwapEvent, types.PoolSnapshot)                {}
func (NopNotifier) LiquidityAdded(types.AddLiquidityEvent, types.PoolSnapshot)      {}
func (NopNotifier) LiquidityRemoved(types.RemoveLiquidityEvent, types.PoolSnapshot) {}
