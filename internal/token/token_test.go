package token

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestLedger_MintAndBalance(t *testing.T) {
	l := NewLedger("uatom")

	require.True(t, l.BalanceOf("alice").IsZero())
	require.True(t, l.TotalSupply().IsZero())

	require.NoError(t, l.Mint("alice", math.NewInt(1000)))
	require.Equal(t, math.NewInt(1000), l.BalanceOf("alice"))
	require.Equal(t, math.NewInt(1000), l.TotalSupply())

	require.NoError(t, l.Mint("alice", math.NewInt(500)))
	require.Equal(t, math.NewInt(1500), l.BalanceOf("alice"))
	require.Equal(t, math.NewInt(1500), l.TotalSupply())
}

func TestLedger_MintEmptyHolder(t *testing.T) {
	l := NewLedger("uatom")
	require.ErrorIs(t, l.Mint("", math.NewInt(1)), ErrEmptyAddress)
}

func TestLedger_Transfer(t *testing.T) {
	l := NewLedger("uatom")
	require.NoError(t, l.Mint("alice", math.NewInt(100)))

	require.NoError(t, l.Transfer("alice", "bob", math.NewInt(40)))
	require.Equal(t, math.NewInt(60), l.BalanceOf("alice"))
	require.Equal(t, math.NewInt(40), l.BalanceOf("bob"))

	// Supply is conserved across transfers.
	require.Equal(t, math.NewInt(100), l.TotalSupply())
}

func TestLedger_TransferInsufficientBalance(t *testing.T) {
	l := NewLedger("uatom")
	require.NoError(t, l.Mint("alice", math.NewInt(10)))

	err := l.Transfer("alice", "bob", math.NewInt(11))
	require.ErrorIs(t, err, ErrInsufficientBalance)

	// Nothing moved.
	require.Equal(t, math.NewInt(10), l.BalanceOf("alice"))
	require.True(t, l.BalanceOf("bob").IsZero())
}

func TestLedger_ApproveAndTransferFrom(t *testing.T) {
	l := NewLedger("uusdc")
	require.NoError(t, l.Mint("alice", math.NewInt(100)))
	require.NoError(t, l.Approve("alice", "pool", math.NewInt(70)))
	require.Equal(t, math.NewInt(70), l.Allowance("alice", "pool"))

	require.NoError(t, l.TransferFrom("alice", "pool", "pool", math.NewInt(30)))
	require.Equal(t, math.NewInt(70), l.BalanceOf("alice"))
	require.Equal(t, math.NewInt(30), l.BalanceOf("pool"))
	require.Equal(t, math.NewInt(40), l.Allowance("alice", "pool"))
}

func TestLedger_TransferFromInsufficientAllowance(t *testing.T) {
	l := NewLedger("uusdc")
	require.NoError(t, l.Mint("alice", math.NewInt(100)))
	require.NoError(t, l.Approve("alice", "pool", math.NewInt(20)))

	err := l.TransferFrom("alice", "pool", "pool", math.NewInt(21))
	require.ErrorIs(t, err, ErrInsufficientAllowance)
	require.Equal(t, math.NewInt(100), l.BalanceOf("alice"))
	require.Equal(t, math.NewInt(20), l.Allowance("alice", "pool"))
}

func TestLedger_TransferFromNoAllowance(t *testing.T) {
	l := NewLedger("uusdc")
	require.NoError(t, l.Mint("alice", math.NewInt(100)))

	err := l.TransferFrom("alice", "pool", "pool", math.NewInt(1))
	require.ErrorIs(t, err, ErrInsufficientAllowance)
}

func TestLedger_Burn(t *testing.T) {
	l := NewLedger("uatom")
	require.NoError(t, l.Mint("alice", math.NewInt(100)))
	require.NoError(t, l.Burn("alice", math.NewInt(60)))
	require.Equal(t, math.NewInt(40), l.BalanceOf("alice"))
	require.Equal(t, math.NewInt(40), l.TotalSupply())

	require.ErrorIs(t, l.Burn("alice", math.NewInt(41)), ErrInsufficientBalance)
}

func TestShareToken_Denom(t *testing.T) {
	s := NewShareToken("uatom:uusdc")
	require.Equal(t, "cpmm-share-uatom:uusdc", s.Denom())

	require.NoError(t, s.Mint("lp1", math.NewInt(200)))
	require.Equal(t, math.NewInt(200), s.TotalSupply())
}

func TestBank_GetOrCreate(t *testing.T) {
	b := NewBank()
	require.Nil(t, b.Get("uatom"))

	l1 := b.GetOrCreate("uatom")
	l2 := b.GetOrCreate("uatom")
	require.Same(t, l1, l2)
	require.Same(t, l1, b.Get("uatom"))
	require.NotSame(t, l1, b.GetOrCreate("uusdc"))
}
