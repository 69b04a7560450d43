// ./internal/state/pool_store.go
package state

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/cascade-dex/cpmm/internal/types"
)

// SavePoolSnapshot upserts the current state of a pool.
func SavePoolSnapshot(snapshot types.PoolSnapshot) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	query := `
		INSERT INTO pools (pool_id, asset_a, asset_b, reserve_a, reserve_b, total_shares, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (pool_id) DO UPDATE SET
			reserve_a = EXCLUDED.reserve_a,
			reserve_b = EXCLUDED.reserve_b,
			total_shares = EXCLUDED.total_shares,
			updated_at = EXCLUDED.updated_at;
	`

	_, err := DB.Exec(
		query,
		string(snapshot.ID), snapshot.AssetA, snapshot.AssetB,
		snapshot.ReserveA.String(), snapshot.ReserveB.String(), snapshot.TotalShares.String(),
		snapshot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save pool snapshot for %s: %w", snapshot.ID, err)
	}
	return nil
}

// LoadPools returns the persisted snapshot of every pool.
func LoadPools() ([]types.PoolSnapshot, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := DB.Query(`
		SELECT pool_id, asset_a, asset_b, reserve_a, reserve_b, total_shares, updated_at
		FROM pools
		ORDER BY pool_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pools: %w", err)
	}
	defer rows.Close()

	var snapshots []types.PoolSnapshot
	for rows.Next() {
		var (
			snap                            types.PoolSnapshot
			poolID                          string
			reserveA, reserveB, totalShares string
		)
		if err := rows.Scan(&poolID, &snap.AssetA, &snap.AssetB,
			&reserveA, &reserveB, &totalShares, &snap.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pool row: %w", err)
		}

		snap.ID = types.PoolID(poolID)
		if snap.ReserveA, err = parseStoredAmount(reserveA, "reserve_a", poolID); err != nil {
			return nil, err
		}
		if snap.ReserveB, err = parseStoredAmount(reserveB, "reserve_b", poolID); err != nil {
			return nil, err
		}
		if snap.TotalShares, err = parseStoredAmount(totalShares, "total_shares", poolID); err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating pool rows: %w", err)
	}

	log.Info().Int("pools", len(snapshots)).Msg("Loaded pool snapshots from database")
	return snapshots, nil
}

// SaveSharePosition upserts one holder's pool-share balance.
func SaveSharePosition(poolID types.PoolID, holder string, shares math.Int) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	query := `
		INSERT INTO share_positions (pool_id, holder, shares, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (pool_id, holder) DO UPDATE SET
			shares = EXCLUDED.shares,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := DB.Exec(query, string(poolID), holder, shares.String()); err != nil {
		return fmt.Errorf("failed to save share position %s/%s: %w", poolID, holder, err)
	}
	return nil
}

// LoadSharePositions returns every holder's share balance for one pool.
func LoadSharePositions(poolID types.PoolID) (map[string]math.Int, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := DB.Query(`
		SELECT holder, shares FROM share_positions WHERE pool_id = $1;
	`, string(poolID))
	if err != nil {
		return nil, fmt.Errorf("failed to query share positions for %s: %w", poolID, err)
	}
	defer rows.Close()

	positions := make(map[string]math.Int)
	for rows.Next() {
		var holder, sharesStr string
		if err := rows.Scan(&holder, &sharesStr); err != nil {
			return nil, fmt.Errorf("failed to scan share position row: %w", err)
		}
		shares, err := parseStoredAmount(sharesStr, "shares", string(poolID))
		if err != nil {
			return nil, err
		}
		positions[holder] = shares
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating share position rows: %w", err)
	}
	return positions, nil
}

// parseStoredAmount converts a NUMERIC column value back into a math.Int.
// A failure here means the row was corrupted outside this process.
func parseStoredAmount(value, column, poolID string) (math.Int, error) {
	amount, ok := math.NewIntFromString(value)
	if !ok {
		return math.ZeroInt(), fmt.Errorf("corrupted %s value %q for pool %s", column, value, poolID)
	}
	return amount, nil
}
