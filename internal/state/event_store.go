// ./internal/state/event_store.go
package state

import (
	"fmt"
	"time"

	"cosmossdk.io/math"

	"github.com/cascade-dex/cpmm/internal/types"
)

// RecordSwapEvent appends a swap notification to the journal.
func RecordSwapEvent(event types.SwapEvent) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	query := `
		INSERT INTO swap_events (pool_id, caller, asset_in, asset_out, amount_in, amount_out, event_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := DB.Exec(query,
		string(event.PoolID), event.Caller, event.AssetIn, event.AssetOut,
		event.AmountIn.String(), event.AmountOut.String(), event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record swap event for %s: %w", event.PoolID, err)
	}
	return nil
}

// RecordAddLiquidityEvent appends an add-liquidity notification to the journal.
func RecordAddLiquidityEvent(event types.AddLiquidityEvent) error {
	return insertLiquidityEvent("add", event.PoolID, event.Caller,
		event.AmountA, event.AmountB, event.Shares, event.Timestamp)
}

// RecordRemoveLiquidityEvent appends a remove-liquidity notification to the journal.
func RecordRemoveLiquidityEvent(event types.RemoveLiquidityEvent) error {
	return insertLiquidityEvent("remove", event.PoolID, event.Caller,
		event.AmountA, event.AmountB, event.Shares, event.Timestamp)
}

func insertLiquidityEvent(direction string, poolID types.PoolID, caller string,
	amountA, amountB, shares math.Int, ts time.Time) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	query := `
		INSERT INTO liquidity_events (pool_id, caller, direction, amount_a, amount_b, shares, event_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := DB.Exec(query,
		string(poolID), caller, direction,
		amountA.String(), amountB.String(), shares.String(), ts,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s-liquidity event for %s: %w", direction, poolID, err)
	}
	return nil
}
