/*

This is a custom type for pool snapshots which carries everything the state
store and the web API need to describe a pool at a point in time.

*/

package types

import (
	"time"

	"cosmossdk.io/math"
)

// PoolID is the canonical identity of a pool: "assetA:assetB" with the two
// denoms in lexicographic order. Constructing it from either argument order
// yields the same value.
type PoolID string

// NewPoolID builds the canonical pool identity for a pair of denoms.
func NewPoolID(denomA, denomB string) PoolID {
	if denomB < denomA {
		denomA, denomB = denomB, denomA
	}
	return PoolID(denomA + ":" + denomB)
}

type PoolSnapshot struct {
	ID          PoolID    `json:"id"`           // e.g., "uatom:uusdc"
	AssetA      string    `json:"asset_a"`      // Lexicographically smaller denom
	AssetB      string    `json:"asset_b"`      // Lexicographically larger denom
	ReserveA    math.Int  `json:"reserve_a"`    // Tracked holding of AssetA
	ReserveB    math.Int  `json:"reserve_b"`    // Tracked holding of AssetB
	TotalShares math.Int  `json:"total_shares"` // Total minted pool-share units
	UpdatedAt   time.Time `json:"updated_at"`
}
