package amm

import (
	"time"

	"cosmossdk.io/math"

	"github.com/cascade-dex/cpmm/internal/types"
)

// Swap trades amountIn of assetIn for assetOut at the constant-product price
// and returns the output amount. The output is computed from the actually
// received input (balance-diff accounted) against the tracked reserves:
//
//	amountOut = reserveOut * actualIn / (reserveIn + actualIn)
//
// with the multiplication performed before the truncating division, so the
// product reserveIn*reserveOut never decreases across a swap. Reserves are
// updated before the outbound transfer; a nested call re-entering the pool
// during that transfer observes post-swap reserves. On any failure the
// operation unwinds completely and no state change survives.
func (p *Pool) Swap(caller, assetIn, assetOut string, amountIn math.Int) (math.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := "failed"
	defer func() {
		if p.metrics != nil {
			p.metrics.SwapsTotal.WithLabelValues(string(p.id), result).Inc()
		}
	}()

	// Guards: no side effect may occur on a rejected call.
	if err := requirePositive("amountIn", amountIn); err != nil {
		return math.ZeroInt(), err
	}
	if assetIn == assetOut {
		return math.ZeroInt(), ErrIdenticalAssets.Wrapf("cannot swap %s for itself", assetIn)
	}
	tokenIn, err := p.assetFor(assetIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	tokenOut, err := p.assetFor(assetOut)
	if err != nil {
		return math.ZeroInt(), err
	}

	reserveIn, reserveOut := p.reserveA, p.reserveB
	if assetIn == p.assetB.Denom() {
		reserveIn, reserveOut = p.reserveB, p.reserveA
	}

	actualIn, err := p.pullAsset(tokenIn, caller, amountIn)
	if err != nil {
		return math.ZeroInt(), err
	}

	amountOut := math.ZeroInt()
	if actualIn.IsPositive() {
		amountOut = mulDiv(reserveOut, actualIn, reserveIn.Add(actualIn))
	}
	if amountOut.IsZero() {
		// Input too small relative to reserves; hand it back and reject.
		p.refundAsset(tokenIn, caller, actualIn)
		return math.ZeroInt(), ErrInsufficientOutput.Wrapf(
			"%s %s in against reserves %s/%s", actualIn, assetIn, reserveIn, reserveOut)
	}

	// Effects before interactions: the ledger reflects the post-swap truth
	// before the output asset's ledger regains control.
	if assetIn == p.assetA.Denom() {
		p.reserveA = p.reserveA.Add(actualIn)
		p.reserveB = p.reserveB.Sub(amountOut)
	} else {
		p.reserveB = p.reserveB.Add(actualIn)
		p.reserveA = p.reserveA.Sub(amountOut)
	}

	if err := p.pushAsset(tokenOut, caller, amountOut); err != nil {
		// Unwind: restore reserves and return the pulled input.
		if assetIn == p.assetA.Denom() {
			p.reserveA = p.reserveA.Sub(actualIn)
			p.reserveB = p.reserveB.Add(amountOut)
		} else {
			p.reserveB = p.reserveB.Sub(actualIn)
			p.reserveA = p.reserveA.Add(amountOut)
		}
		p.refundAsset(tokenIn, caller, actualIn)
		return math.ZeroInt(), err
	}

	result = "success"
	if p.metrics != nil {
		p.metrics.SwapVolume.WithLabelValues(string(p.id), assetIn).Add(amountToFloat(actualIn))
	}
	p.observeReserves()

	poolLogger.Debug().
		Str("pool", string(p.id)).
		Str("caller", caller).
		Str("asset_in", assetIn).
		Str("asset_out", assetOut).
		Str("amount_in", actualIn.String()).
		Str("amount_out", amountOut.String()).
		Msg("Swap executed")

	p.notifier.SwapExecuted(types.SwapEvent{
		PoolID:    p.id,
		Caller:    caller,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		AmountIn:  actualIn,
		AmountOut: amountOut,
		Timestamp: time.Now().UTC(),
	}, p.snapshot())

	return amountOut, nil
}
