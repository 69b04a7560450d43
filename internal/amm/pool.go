/*

This is the reserve ledger at the heart of the engine. A Pool tracks its own
belief about how much of each asset it holds; pricing reads these tracked
reserves and never the live ledger balances, so tokens pushed at the escrow
account from outside cannot move the price. Every mutating operation runs
under the pool mutex as one critical section: validate, pull inbound assets,
update reserves, and only then push outbound assets or touch share supply.

*/

package amm

import (
	"sync"
	"time"

	"cosmossdk.io/math"

	"github.com/cascade-dex/cpmm/internal/logger"
	"github.com/cascade-dex/cpmm/internal/token"
	"github.com/cascade-dex/cpmm/internal/types"
)

var poolLogger = logger.GetForComponent("pool_engine")

// Pool is a two-asset constant-product market. The pair is fixed for the
// pool's lifetime and canonically ordered: assetA always carries the
// lexicographically smaller denom, regardless of constructor argument order.
type Pool struct {
	mu sync.Mutex

	id     types.PoolID
	assetA token.Token
	assetB token.Token

	// escrow is the pool's own account on both asset ledgers. Custody of
	// deposited assets lives here; reserveA/reserveB are the engine's
	// authoritative view of it.
	escrow string

	reserveA math.Int
	reserveB math.Int

	shares *token.ShareToken

	notifier Notifier
	metrics  *EngineMetrics
}

// NewPool creates an empty pool for a distinct pair of assets.
func NewPool(a, b token.Token, escrowPrefix string, notifier Notifier, metrics *EngineMetrics) (*Pool, error) {
	if a == nil || b == nil {
		return nil, ErrNilAsset
	}
	if a.Denom() == "" || b.Denom() == "" {
		return nil, ErrNilAsset.Wrap("asset denom cannot be empty")
	}
	if a.Denom() == b.Denom() {
		return nil, ErrIdenticalAssets.Wrapf("pool assets must differ, got %s twice", a.Denom())
	}

	// Canonical ordering: smaller denom becomes assetA.
	if b.Denom() < a.Denom() {
		a, b = b, a
	}

	id := types.NewPoolID(a.Denom(), b.Denom())
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &Pool{
		id:       id,
		assetA:   a,
		assetB:   b,
		escrow:   escrowPrefix + "/" + string(id),
		reserveA: math.ZeroInt(),
		reserveB: math.ZeroInt(),
		shares:   token.NewShareToken(string(id)),
		notifier: notifier,
		metrics:  metrics,
	}, nil
}

// ID returns the canonical pool identity.
func (p *Pool) ID() types.PoolID {
	return p.id
}

// AssetA returns the denom of the canonically first asset.
func (p *Pool) AssetA() string {
	return p.assetA.Denom()
}

// AssetB returns the denom of the canonically second asset.
func (p *Pool) AssetB() string {
	return p.assetB.Denom()
}

// Escrow returns the pool's custody account address.
func (p *Pool) Escrow() string {
	return p.escrow
}

// Shares returns the pool-share token issued by this pool.
func (p *Pool) Shares() *token.ShareToken {
	return p.shares
}

// GetReserves returns the tracked reserves of assetA and assetB.
func (p *Pool) GetReserves() (math.Int, math.Int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reserveA, p.reserveB
}

// TotalShares returns the total minted pool-share units.
func (p *Pool) TotalShares() math.Int {
	return p.shares.TotalSupply()
}

// Snapshot returns a point-in-time copy of the pool state for persistence
// and the API.
func (p *Pool) Snapshot() types.PoolSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

// snapshot requires p.mu held.
func (p *Pool) snapshot() types.PoolSnapshot {
	return types.PoolSnapshot{
		ID:          p.id,
		AssetA:      p.assetA.Denom(),
		AssetB:      p.assetB.Denom(),
		ReserveA:    p.reserveA,
		ReserveB:    p.reserveB,
		TotalShares: p.shares.TotalSupply(),
		UpdatedAt:   time.Now().UTC(),
	}
}

// Restore force-sets the tracked reserves, for rebuilding a pool from a
// persisted snapshot at startup. Never called on a pool that has traded.
func (p *Pool) Restore(reserveA, reserveB math.Int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reserveA = reserveA
	p.reserveB = reserveB
}

// assetFor maps a denom to the pool's token side. Unknown denoms are the
// InvalidAsset case every mutating operation must reject before touching state.
func (p *Pool) assetFor(denom string) (token.Token, error) {
	switch denom {
	case p.assetA.Denom():
		return p.assetA, nil
	case p.assetB.Denom():
		return p.assetB, nil
	default:
		return nil, ErrInvalidAsset.Wrapf("%s is not part of pool %s", denom, p.id)
	}
}

// requirePositive rejects zero amount arguments before any side effect.
func requirePositive(name string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrZeroAmount.Wrapf("%s must be strictly positive", name)
	}
	return nil
}

// pullAsset moves requested units of asset from the caller into pool custody
// and returns how much actually arrived, measured by diffing the escrow
// balance around the transfer. The diff, not the requested amount, is what
// enters the reserve ledger; assets that skim a transfer fee or round are
// thereby accounted at their true received value. The caller must have
// pre-approved the pool escrow for at least the requested amount.
func (p *Pool) pullAsset(asset token.Token, from string, requested math.Int) (math.Int, error) {
	before := asset.BalanceOf(p.escrow)
	if err := asset.TransferFrom(from, p.escrow, p.escrow, requested); err != nil {
		return math.ZeroInt(), ErrTransferFailed.Wrapf("pull %s %s from %s: %v",
			requested, asset.Denom(), from, err)
	}
	after := asset.BalanceOf(p.escrow)
	return after.Sub(before), nil
}

// pushAsset moves amount out of pool custody to the recipient.
func (p *Pool) pushAsset(asset token.Token, to string, amount math.Int) error {
	if err := asset.Transfer(p.escrow, to, amount); err != nil {
		return ErrTransferFailed.Wrapf("push %s %s to %s: %v",
			amount, asset.Denom(), to, err)
	}
	return nil
}

// refundAsset returns already-pulled units to the caller while unwinding a
// failed operation. A refund failure is logged but not surfaced; the original
// failure is the one the caller must see.
func (p *Pool) refundAsset(asset token.Token, to string, amount math.Int) {
	if amount.IsZero() {
		return
	}
	if err := asset.Transfer(p.escrow, to, amount); err != nil {
		poolLogger.Error().
			Err(err).
			Str("pool", string(p.id)).
			Str("denom", asset.Denom()).
			Str("amount", amount.String()).
			Msg("Failed to refund pulled assets during rollback")
	}
}

// observeReserves updates the reserve gauges after a mutation. No-op without metrics.
func (p *Pool) observeReserves() {
	if p.metrics == nil {
		return
	}
	p.metrics.PoolReserves.WithLabelValues(string(p.id), p.assetA.Denom()).Set(amountToFloat(p.reserveA))
	p.metrics.PoolReserves.WithLabelValues(string(p.id), p.assetB.Denom()).Set(amountToFloat(p.reserveB))
	p.metrics.ShareSupply.WithLabelValues(string(p.id)).Set(amountToFloat(p.shares.TotalSupply()))
}
