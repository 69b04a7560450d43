package amm

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestMulDiv(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c int64
		want    int64
	}{
		{"exact", 6, 4, 8, 3},
		{"floors", 7, 3, 4, 5},
		{"zero numerator", 0, 100, 7, 0},
		{"truncates to zero", 1, 2, 5, 0},
		{"identity", 42, 9, 9, 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mulDiv(math.NewInt(tc.a), math.NewInt(tc.b), math.NewInt(tc.c))
			require.Equal(t, math.NewInt(tc.want), got)
		})
	}
}

func TestMulDiv_NoIntermediateOverflow(t *testing.T) {
	// The intermediate product exceeds math.Int's 256-bit range; the
	// big.Int path must carry it without panicking.
	a := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 140))
	got := mulDiv(a, a, a)
	require.Equal(t, a, got)
}

func TestSqrtProduct(t *testing.T) {
	cases := []struct {
		name string
		a, b int64
		want int64
	}{
		{"perfect square", 100, 400, 200},
		{"floors", 10, 21, 14},
		{"one by one", 1, 1, 1},
		{"zero side", 0, 500, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sqrtProduct(math.NewInt(tc.a), math.NewInt(tc.b))
			require.Equal(t, math.NewInt(tc.want), got)
		})
	}
}

func TestSqrtProduct_LargeValues(t *testing.T) {
	// (2^100)^2 product; exact root is 2^100.
	x := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 100))
	require.Equal(t, x, sqrtProduct(x, x))
}
