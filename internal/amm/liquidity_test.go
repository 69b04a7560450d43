package amm

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestAddLiquidity_Bootstrap(t *testing.T) {
	// Depositing (100, 400) into an empty pool mints floor(sqrt(100*400)) = 200.
	pool, a, b, notifier := newTestPool(t)
	fund(t, a, pool, "lp", 100)
	fund(t, b, pool, "lp", 400)

	actualA, actualB, shares, err := pool.AddLiquidity("lp", math.NewInt(100), math.NewInt(400))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), actualA)
	require.Equal(t, math.NewInt(400), actualB)
	require.Equal(t, math.NewInt(200), shares)

	ra, rb := pool.GetReserves()
	require.Equal(t, math.NewInt(100), ra)
	require.Equal(t, math.NewInt(400), rb)
	require.Equal(t, math.NewInt(200), pool.TotalShares())
	require.Equal(t, math.NewInt(200), pool.Shares().BalanceOf("lp"))

	require.Len(t, notifier.adds, 1)
	require.Equal(t, math.NewInt(200), notifier.adds[0].Shares)
}

func TestAddLiquidity_BootstrapNonPerfectSquare(t *testing.T) {
	// floor(sqrt(10*21)) = floor(14.49) = 14.
	pool, a, b, _ := newTestPool(t)
	fund(t, a, pool, "lp", 10)
	fund(t, b, pool, "lp", 21)

	_, _, shares, err := pool.AddLiquidity("lp", math.NewInt(10), math.NewInt(21))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(14), shares)
}

func TestAddLiquidity_Proportional(t *testing.T) {
	// Pool at (100, 400) with 200 shares. Desired (50, 50):
	//   capA = min(50, 50*100/400) = 12
	//   capB = min(50, 50*400/100) = 50
	// minted = min(12*200/100, 50*200/400) = min(24, 25) = 24.
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100, 400)

	fund(t, a, pool, "lp2", 50)
	fund(t, b, pool, "lp2", 50)
	actualA, actualB, shares, err := pool.AddLiquidity("lp2", math.NewInt(50), math.NewInt(50))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(12), actualA)
	require.Equal(t, math.NewInt(50), actualB)
	require.Equal(t, math.NewInt(24), shares)

	ra, rb := pool.GetReserves()
	require.Equal(t, math.NewInt(112), ra)
	require.Equal(t, math.NewInt(450), rb)
	require.Equal(t, math.NewInt(224), pool.TotalShares())

	// Only the capped amounts were pulled; the rest stayed with the caller.
	require.Equal(t, math.NewInt(38), a.BalanceOf("lp2"))
	require.True(t, b.BalanceOf("lp2").IsZero())
}

func TestAddLiquidity_ProportionalBalanced(t *testing.T) {
	// A deposit at the exact reserve ratio is taken in full.
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100, 400)

	fund(t, a, pool, "lp2", 50)
	fund(t, b, pool, "lp2", 200)
	actualA, actualB, shares, err := pool.AddLiquidity("lp2", math.NewInt(50), math.NewInt(200))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50), actualA)
	require.Equal(t, math.NewInt(200), actualB)
	require.Equal(t, math.NewInt(100), shares)
}

func TestAddLiquidity_ZeroDesired(t *testing.T) {
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100, 400)

	_, _, _, err := pool.AddLiquidity("lp2", math.ZeroInt(), math.NewInt(10))
	require.ErrorIs(t, err, ErrZeroAmount)
	_, _, _, err = pool.AddLiquidity("lp2", math.NewInt(10), math.ZeroInt())
	require.ErrorIs(t, err, ErrZeroAmount)
}

func TestAddLiquidity_ContributionTooSmall(t *testing.T) {
	// A one-sided dust deposit against lopsided reserves caps the thin side
	// to zero and cannot mint; the pulled funds come back.
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 1_000_000, 2)

	fund(t, a, pool, "lp2", 1)
	fund(t, b, pool, "lp2", 1)
	_, _, _, err := pool.AddLiquidity("lp2", math.NewInt(1), math.NewInt(1))
	require.ErrorIs(t, err, ErrInsufficientLiquidity)
	require.Equal(t, math.NewInt(1), a.BalanceOf("lp2"))
	require.Equal(t, math.NewInt(1), b.BalanceOf("lp2"))
}

func TestAddLiquidity_TransferFailed(t *testing.T) {
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100, 400)

	// Approve only side A; the side-B pull must fail and side A refund.
	fund(t, a, pool, "lp2", 10)
	require.NoError(t, b.Mint("lp2", math.NewInt(40)))

	_, _, _, err := pool.AddLiquidity("lp2", math.NewInt(10), math.NewInt(40))
	require.ErrorIs(t, err, ErrTransferFailed)
	require.Equal(t, math.NewInt(10), a.BalanceOf("lp2"))

	ra, rb := pool.GetReserves()
	require.Equal(t, math.NewInt(100), ra)
	require.Equal(t, math.NewInt(400), rb)
	require.Equal(t, math.NewInt(200), pool.TotalShares())
}

func TestRemoveLiquidity_Proportional(t *testing.T) {
	pool, a, b, notifier := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100, 400)

	// Withdraw half the shares: 100*100/200 = 50 A, 100*400/200 = 200 B.
	amountA, amountB, err := pool.RemoveLiquidity("lp", math.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50), amountA)
	require.Equal(t, math.NewInt(200), amountB)

	ra, rb := pool.GetReserves()
	require.Equal(t, math.NewInt(50), ra)
	require.Equal(t, math.NewInt(200), rb)
	require.Equal(t, math.NewInt(100), pool.TotalShares())
	require.Equal(t, math.NewInt(50), a.BalanceOf("lp"))
	require.Equal(t, math.NewInt(200), b.BalanceOf("lp"))

	require.Len(t, notifier.removes, 1)
	require.Equal(t, math.NewInt(100), notifier.removes[0].Shares)
}

func TestRemoveLiquidity_AllSharesDrainsPool(t *testing.T) {
	pool, a, b, _ := newTestPool(t)
	shares := seedPool(t, pool, a, b, "lp", 100, 400)

	amountA, amountB, err := pool.RemoveLiquidity("lp", shares)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), amountA)
	require.Equal(t, math.NewInt(400), amountB)

	// Back to the empty state.
	ra, rb := pool.GetReserves()
	require.True(t, ra.IsZero())
	require.True(t, rb.IsZero())
	require.True(t, pool.TotalShares().IsZero())

	// A fresh bootstrap is legal after full evacuation.
	fund(t, a, pool, "lp", 100)
	fund(t, b, pool, "lp", 400)
	_, _, minted, err := pool.AddLiquidity("lp", math.NewInt(100), math.NewInt(400))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200), minted)
}

func TestRemoveLiquidity_TruncationToZeroAccepted(t *testing.T) {
	// One share out of a large supply can round one side down to zero;
	// that is a legitimate outcome, not an error.
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100_000, 3)

	amountA, amountB, err := pool.RemoveLiquidity("lp", math.NewInt(1))
	require.NoError(t, err)
	require.True(t, amountA.IsPositive())
	require.True(t, amountB.IsZero())
}

func TestRemoveLiquidity_Guards(t *testing.T) {
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100, 400)

	_, _, err := pool.RemoveLiquidity("lp", math.ZeroInt())
	require.ErrorIs(t, err, ErrInsufficientLiquidity)

	_, _, err = pool.RemoveLiquidity("lp", math.NewInt(201))
	require.ErrorIs(t, err, ErrInsufficientShares)

	_, _, err = pool.RemoveLiquidity("stranger", math.NewInt(1))
	require.ErrorIs(t, err, ErrInsufficientShares)
}

func TestLiquidity_RoundTripNeverProfits(t *testing.T) {
	// Adding then immediately removing the minted shares returns at most the
	// deposited amounts; truncation losses stay with the pool.
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 97, 389)

	fund(t, a, pool, "lp2", 13)
	fund(t, b, pool, "lp2", 57)
	actualA, actualB, shares, err := pool.AddLiquidity("lp2", math.NewInt(13), math.NewInt(57))
	require.NoError(t, err)

	backA, backB, err := pool.RemoveLiquidity("lp2", shares)
	require.NoError(t, err)
	require.True(t, backA.LTE(actualA), "withdrew %s A, deposited %s", backA, actualA)
	require.True(t, backB.LTE(actualB), "withdrew %s B, deposited %s", backB, actualB)
}
