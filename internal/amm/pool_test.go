package amm

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/cascade-dex/cpmm/internal/token"
	"github.com/cascade-dex/cpmm/internal/types"
)

// recordingNotifier captures every notification for assertions.
type recordingNotifier struct {
	swaps     []types.SwapEvent
	adds      []types.AddLiquidityEvent
	removes   []types.RemoveLiquidityEvent
	snapshots []types.PoolSnapshot
}

func (n *recordingNotifier) SwapExecuted(e types.SwapEvent, s types.PoolSnapshot) {
	n.swaps = append(n.swaps, e)
	n.snapshots = append(n.snapshots, s)
}

func (n *recordingNotifier) LiquidityAdded(e types.AddLiquidityEvent, s types.PoolSnapshot) {
	n.adds = append(n.adds, e)
	n.snapshots = append(n.snapshots, s)
}

func (n *recordingNotifier) LiquidityRemoved(e types.RemoveLiquidityEvent, s types.PoolSnapshot) {
	n.removes = append(n.removes, e)
	n.snapshots = append(n.snapshots, s)
}

// newTestPool builds a uatom/uusdc pool with fresh ledgers. uatom sorts
// before uusdc, so it is always assetA.
func newTestPool(t *testing.T) (*Pool, *token.Ledger, *token.Ledger, *recordingNotifier) {
	t.Helper()
	a := token.NewLedger("uatom")
	b := token.NewLedger("uusdc")
	notifier := &recordingNotifier{}
	pool, err := NewPool(a, b, "escrow", notifier, nil)
	require.NoError(t, err)
	return pool, a, b, notifier
}

// fund mints amount to holder and approves the pool escrow to pull it.
func fund(t *testing.T, l *token.Ledger, pool *Pool, holder string, amount int64) {
	t.Helper()
	require.NoError(t, l.Mint(holder, math.NewInt(amount)))
	require.NoError(t, l.Approve(holder, pool.Escrow(), math.NewInt(amount)))
}

// seedPool funds the provider and deposits (amountA, amountB) as bootstrap liquidity.
func seedPool(t *testing.T, pool *Pool, a, b *token.Ledger, provider string, amountA, amountB int64) math.Int {
	t.Helper()
	fund(t, a, pool, provider, amountA)
	fund(t, b, pool, provider, amountB)
	_, _, shares, err := pool.AddLiquidity(provider, math.NewInt(amountA), math.NewInt(amountB))
	require.NoError(t, err)
	return shares
}

func TestNewPool_CanonicalOrdering(t *testing.T) {
	a := token.NewLedger("uatom")
	b := token.NewLedger("uusdc")

	forward, err := NewPool(a, b, "escrow", nil, nil)
	require.NoError(t, err)
	reversed, err := NewPool(b, a, "escrow", nil, nil)
	require.NoError(t, err)

	// Identity is deterministic regardless of argument order.
	require.Equal(t, forward.ID(), reversed.ID())
	require.Equal(t, "uatom", forward.AssetA())
	require.Equal(t, "uusdc", forward.AssetB())
	require.Equal(t, "uatom", reversed.AssetA())
	require.Equal(t, "uusdc", reversed.AssetB())
	require.Equal(t, types.PoolID("uatom:uusdc"), forward.ID())
}

func TestNewPool_RejectsIdenticalAssets(t *testing.T) {
	a := token.NewLedger("uatom")
	_, err := NewPool(a, token.NewLedger("uatom"), "escrow", nil, nil)
	require.ErrorIs(t, err, ErrIdenticalAssets)
}

func TestNewPool_RejectsNilAsset(t *testing.T) {
	a := token.NewLedger("uatom")

	_, err := NewPool(nil, a, "escrow", nil, nil)
	require.ErrorIs(t, err, ErrNilAsset)
	_, err = NewPool(a, nil, "escrow", nil, nil)
	require.ErrorIs(t, err, ErrNilAsset)
	_, err = NewPool(a, token.NewLedger(""), "escrow", nil, nil)
	require.ErrorIs(t, err, ErrNilAsset)
}

func TestPool_GetReservesIdempotent(t *testing.T) {
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100, 400)

	ra1, rb1 := pool.GetReserves()
	ra2, rb2 := pool.GetReserves()
	require.Equal(t, ra1, ra2)
	require.Equal(t, rb1, rb2)
	require.Equal(t, math.NewInt(100), ra1)
	require.Equal(t, math.NewInt(400), rb1)
}

func TestPool_ReservesIgnoreInjectedBalance(t *testing.T) {
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100, 400)

	// Push tokens at the escrow account from outside the engine. The tracked
	// reserves, and therefore pricing, must not move.
	require.NoError(t, a.Mint(pool.Escrow(), math.NewInt(1_000_000)))
	require.NoError(t, b.Mint(pool.Escrow(), math.NewInt(1_000_000)))

	ra, rb := pool.GetReserves()
	require.Equal(t, math.NewInt(100), ra)
	require.Equal(t, math.NewInt(400), rb)

	// Swap prices against tracked reserves: 400*10/(100+10) = 36.
	fund(t, a, pool, "trader", 10)
	out, err := pool.Swap("trader", "uatom", "uusdc", math.NewInt(10))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(36), out)
}

func TestPool_Snapshot(t *testing.T) {
	pool, a, b, _ := newTestPool(t)
	seedPool(t, pool, a, b, "lp", 100, 400)

	snap := pool.Snapshot()
	require.Equal(t, pool.ID(), snap.ID)
	require.Equal(t, "uatom", snap.AssetA)
	require.Equal(t, "uusdc", snap.AssetB)
	require.Equal(t, math.NewInt(100), snap.ReserveA)
	require.Equal(t, math.NewInt(400), snap.ReserveB)
	require.Equal(t, math.NewInt(200), snap.TotalShares)
	require.False(t, snap.UpdatedAt.IsZero())
}

func TestPool_Restore(t *testing.T) {
	pool, _, _, _ := newTestPool(t)
	pool.Restore(math.NewInt(5000), math.NewInt(7000))

	ra, rb := pool.GetReserves()
	require.Equal(t, math.NewInt(5000), ra)
	require.Equal(t, math.NewInt(7000), rb)
}
