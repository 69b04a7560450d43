package amm

import (
	"time"

	"cosmossdk.io/math"

	"github.com/cascade-dex/cpmm/internal/types"
)

// AddLiquidity deposits up to the desired amounts of both assets and mints
// pool shares to the caller. Two regimes:
//
//   - Bootstrap (no shares outstanding): exactly the desired amounts are
//     pulled and floor(sqrt(actualA*actualB)) shares are minted. The first
//     provider fixes the initial price ratio.
//   - Proportional: the pulled amounts are capped so the existing reserve
//     ratio is kept, and the mint is the minimum of the two proportional
//     estimates. Rounding therefore always favors existing holders.
//
// Returns the actually deposited amounts (balance-diff accounted) and the
// shares minted.
func (p *Pool) AddLiquidity(caller string, amountADesired, amountBDesired math.Int) (math.Int, math.Int, math.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	zero := math.ZeroInt()

	if err := requirePositive("amountADesired", amountADesired); err != nil {
		return zero, zero, zero, err
	}
	if err := requirePositive("amountBDesired", amountBDesired); err != nil {
		return zero, zero, zero, err
	}

	totalShares := p.shares.TotalSupply()
	pullA, pullB := amountADesired, amountBDesired
	if !totalShares.IsZero() {
		// Cap each side at the amount that keeps the reserve ratio intact.
		pullA = math.MinInt(amountADesired, mulDiv(amountBDesired, p.reserveA, p.reserveB))
		pullB = math.MinInt(amountBDesired, mulDiv(amountADesired, p.reserveB, p.reserveA))
	}

	actualA, err := p.pullAsset(p.assetA, caller, pullA)
	if err != nil {
		return zero, zero, zero, err
	}
	actualB, err := p.pullAsset(p.assetB, caller, pullB)
	if err != nil {
		p.refundAsset(p.assetA, caller, actualA)
		return zero, zero, zero, err
	}

	var minted math.Int
	if totalShares.IsZero() {
		minted = sqrtProduct(actualA, actualB)
	} else {
		minted = math.MinInt(
			mulDiv(actualA, totalShares, p.reserveA),
			mulDiv(actualB, totalShares, p.reserveB),
		)
	}
	if minted.IsZero() {
		p.refundAsset(p.assetA, caller, actualA)
		p.refundAsset(p.assetB, caller, actualB)
		return zero, zero, zero, ErrInsufficientLiquidity.Wrap("liquidity contribution too small to mint shares")
	}

	p.reserveA = p.reserveA.Add(actualA)
	p.reserveB = p.reserveB.Add(actualB)

	if err := p.shares.Mint(caller, minted); err != nil {
		p.reserveA = p.reserveA.Sub(actualA)
		p.reserveB = p.reserveB.Sub(actualB)
		p.refundAsset(p.assetA, caller, actualA)
		p.refundAsset(p.assetB, caller, actualB)
		return zero, zero, zero, ErrTransferFailed.Wrapf("mint %s shares to %s: %v", minted, caller, err)
	}

	if p.metrics != nil {
		p.metrics.LiquidityAdded.WithLabelValues(string(p.id), p.assetA.Denom()).Add(amountToFloat(actualA))
		p.metrics.LiquidityAdded.WithLabelValues(string(p.id), p.assetB.Denom()).Add(amountToFloat(actualB))
	}
	p.observeReserves()

	poolLogger.Debug().
		Str("pool", string(p.id)).
		Str("caller", caller).
		Str("amount_a", actualA.String()).
		Str("amount_b", actualB.String()).
		Str("shares", minted.String()).
		Msg("Liquidity added")

	p.notifier.LiquidityAdded(types.AddLiquidityEvent{
		PoolID:    p.id,
		Caller:    caller,
		AmountA:   actualA,
		AmountB:   actualB,
		Shares:    minted,
		Timestamp: time.Now().UTC(),
	}, p.snapshot())

	return actualA, actualB, minted, nil
}

// RemoveLiquidity burns the caller's shares and pays out the proportional
// slice of both reserves:
//
//	amountA = shares * reserveA / totalShares
//	amountB = shares * reserveB / totalShares
//
// A vanishingly small share can legitimately pay out zero of one asset due
// to truncation; that is accepted, not an error. Shares are burned and
// reserves decremented before any asset leaves custody.
func (p *Pool) RemoveLiquidity(caller string, shares math.Int) (math.Int, math.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	zero := math.ZeroInt()

	if shares.IsNil() || !shares.IsPositive() {
		return zero, zero, ErrInsufficientLiquidity.Wrap("shares must be strictly positive")
	}

	held := p.shares.BalanceOf(caller)
	if held.LT(shares) {
		return zero, zero, ErrInsufficientShares.Wrapf("have %s, need %s", held, shares)
	}

	totalShares := p.shares.TotalSupply()
	amountA := mulDiv(shares, p.reserveA, totalShares)
	amountB := mulDiv(shares, p.reserveB, totalShares)

	p.reserveA = p.reserveA.Sub(amountA)
	p.reserveB = p.reserveB.Sub(amountB)
	if err := p.shares.Burn(caller, shares); err != nil {
		p.reserveA = p.reserveA.Add(amountA)
		p.reserveB = p.reserveB.Add(amountB)
		return zero, zero, ErrInsufficientShares.Wrapf("burn %s shares from %s: %v", shares, caller, err)
	}

	if err := p.pushAsset(p.assetA, caller, amountA); err != nil {
		p.unwindWithdrawal(caller, shares, amountA, amountB, zero)
		return zero, zero, err
	}
	if err := p.pushAsset(p.assetB, caller, amountB); err != nil {
		p.unwindWithdrawal(caller, shares, amountA, amountB, amountA)
		return zero, zero, err
	}

	if p.metrics != nil {
		p.metrics.LiquidityRemoved.WithLabelValues(string(p.id), p.assetA.Denom()).Add(amountToFloat(amountA))
		p.metrics.LiquidityRemoved.WithLabelValues(string(p.id), p.assetB.Denom()).Add(amountToFloat(amountB))
	}
	p.observeReserves()

	poolLogger.Debug().
		Str("pool", string(p.id)).
		Str("caller", caller).
		Str("amount_a", amountA.String()).
		Str("amount_b", amountB.String()).
		Str("shares", shares.String()).
		Msg("Liquidity removed")

	p.notifier.LiquidityRemoved(types.RemoveLiquidityEvent{
		PoolID:    p.id,
		Caller:    caller,
		AmountA:   amountA,
		AmountB:   amountB,
		Shares:    shares,
		Timestamp: time.Now().UTC(),
	}, p.snapshot())

	return amountA, amountB, nil
}

// unwindWithdrawal reverses a partially executed withdrawal: re-mints the
// burned shares, restores the reserves, and reclaims whatever of assetA
// already left custody. Requires p.mu held.
func (p *Pool) unwindWithdrawal(caller string, shares, amountA, amountB, sentA math.Int) {
	p.reserveA = p.reserveA.Add(amountA)
	p.reserveB = p.reserveB.Add(amountB)
	if err := p.shares.Mint(caller, shares); err != nil {
		poolLogger.Error().
			Err(err).
			Str("pool", string(p.id)).
			Str("caller", caller).
			Msg("Failed to restore burned shares during rollback")
	}
	if sentA.IsPositive() {
		if err := p.assetA.Transfer(caller, p.escrow, sentA); err != nil {
			poolLogger.Error().
				Err(err).
				Str("pool", string(p.id)).
				Str("caller", caller).
				Msg("Failed to reclaim paid-out assets during rollback")
		}
	}
}
