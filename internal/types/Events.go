/*

These are the notification types emitted by the pool engine after each
successful mutation. The state recorder journals them to PostgreSQL and the
web layer returns them to callers.

*/

package types

import (
	"time"

	"cosmossdk.io/math"
)

type SwapEvent struct {
	PoolID    PoolID    `json:"pool_id"`
	Caller    string    `json:"caller"`
	AssetIn   string    `json:"asset_in"`
	AssetOut  string    `json:"asset_out"`
	AmountIn  math.Int  `json:"amount_in"`  // Actual received amount, after balance-diff accounting
	AmountOut math.Int  `json:"amount_out"`
	Timestamp time.Time `json:"timestamp"`
}

type AddLiquidityEvent struct {
	PoolID    PoolID    `json:"pool_id"`
	Caller    string    `json:"caller"`
	AmountA   math.Int  `json:"amount_a"`
	AmountB   math.Int  `json:"amount_b"`
	Shares    math.Int  `json:"shares"` // Pool-share units minted to the caller
	Timestamp time.Time `json:"timestamp"`
}

type RemoveLiquidityEvent struct {
	PoolID    PoolID    `json:"pool_id"`
	Caller    string    `json:"caller"`
	AmountA   math.Int  `json:"amount_a"`
	AmountB   math.Int  `json:"amount_b"`
	Shares    math.Int  `json:"shares"` // Pool-share units burned from the caller
	Timestamp time.Time `json:"timestamp"`
}
