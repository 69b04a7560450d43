package amm

import (
	"math/big"

	"cosmossdk.io/math"
)

// Integer helpers for the pricing formulas. All intermediate products go
// through big.Int so that reserve * amount can exceed the 256-bit range of
// math.Int without panicking; only final results are converted back.

// mulDiv computes floor(a * b / c). c must be non-zero.
func mulDiv(a, b, c math.Int) math.Int {
	num := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return math.NewIntFromBigInt(num.Div(num, c.BigInt()))
}

// sqrtProduct computes floor(sqrt(a * b)), the geometric mean used for the
// bootstrap share mint.
func sqrtProduct(a, b math.Int) math.Int {
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return math.NewIntFromBigInt(product.Sqrt(product))
}
