// ./internal/state/recorder.go
package state

import (
	"github.com/cascade-dex/cpmm/internal/amm"
	"github.com/cascade-dex/cpmm/internal/logger"
	"github.com/cascade-dex/cpmm/internal/types"
)

var recorderLogger = logger.GetForComponent("state_recorder")

// Recorder journals pool notifications to PostgreSQL. It implements
// amm.Notifier. Journal failures are logged but never fail the trade: the
// in-memory engine state is authoritative and the journal is rebuilt from it
// on the next successful write.
type Recorder struct {
	registry *amm.Registry
}

// NewRecorder creates a recorder backed by the global DB connection. Attach
// the registry before the first pool mutation.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Attach wires the pool registry in after construction. The recorder is
// handed to the registry's constructor, so the two cannot be built in one step.
func (r *Recorder) Attach(registry *amm.Registry) {
	r.registry = registry
}

func (r *Recorder) SwapExecuted(event types.SwapEvent, pool types.PoolSnapshot) {
	if err := SavePoolSnapshot(pool); err != nil {
		recorderLogger.Error().Err(err).Str("pool", string(pool.ID)).Msg("Failed to persist pool snapshot")
	}
	if err := RecordSwapEvent(event); err != nil {
		recorderLogger.Error().Err(err).Str("pool", string(event.PoolID)).Msg("Failed to journal swap event")
	}
}

func (r *Recorder) LiquidityAdded(event types.AddLiquidityEvent, pool types.PoolSnapshot) {
	if err := SavePoolSnapshot(pool); err != nil {
		recorderLogger.Error().Err(err).Str("pool", string(pool.ID)).Msg("Failed to persist pool snapshot")
	}
	if err := RecordAddLiquidityEvent(event); err != nil {
		recorderLogger.Error().Err(err).Str("pool", string(event.PoolID)).Msg("Failed to journal add-liquidity event")
	}
	r.saveHolderPosition(event.PoolID, event.Caller)
}

func (r *Recorder) LiquidityRemoved(event types.RemoveLiquidityEvent, pool types.PoolSnapshot) {
	if err := SavePoolSnapshot(pool); err != nil {
		recorderLogger.Error().Err(err).Str("pool", string(pool.ID)).Msg("Failed to persist pool snapshot")
	}
	if err := RecordRemoveLiquidityEvent(event); err != nil {
		recorderLogger.Error().Err(err).Str("pool", string(event.PoolID)).Msg("Failed to journal remove-liquidity event")
	}
	r.saveHolderPosition(event.PoolID, event.Caller)
}

// saveHolderPosition persists the holder's resulting share balance. The share
// token has its own lock, so reading it from here is safe even though the
// pool's critical section is still held.
func (r *Recorder) saveHolderPosition(poolID types.PoolID, holder string) {
	if r.registry == nil {
		return
	}
	pool, err := r.registry.GetPoolByID(poolID)
	if err != nil {
		recorderLogger.Error().Err(err).Str("pool", string(poolID)).Msg("Failed to resolve pool for share position")
		return
	}
	shares := pool.Shares().BalanceOf(holder)
	if err := SaveSharePosition(poolID, holder, shares); err != nil {
		recorderLogger.Error().Err(err).Str("pool", string(poolID)).Str("holder", holder).
			Msg("Failed to persist share position")
	}
}
