/*
This file contains common utility functions for converting between wire-format
amount strings and SDK math types. All amounts cross the HTTP boundary as
decimal strings so that arbitrary-precision integers never pass through
float64 JSON numbers.
*/

package utils

import (
	"errors"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// Error definitions for zero-tolerance error handling
var (
	ErrAmountEmpty    = errors.New("amount is empty")
	ErrAmountInvalid  = errors.New("amount is not a valid integer")
	ErrAmountNegative = errors.New("amount is negative")
)

// ParseAmount converts a decimal-string amount into an SDK Int.
// Rejects empty, non-numeric, and negative input.
func ParseAmount(s string) (sdkmath.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sdkmath.ZeroInt(), ErrAmountEmpty
	}

	amount, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %q", ErrAmountInvalid, s)
	}
	if amount.IsNegative() {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %q", ErrAmountNegative, s)
	}
	return amount, nil
}

// FormatAmount renders an SDK Int as its canonical decimal string.
// A nil Int renders as "0" so half-initialized records never panic the encoder.
func FormatAmount(amount sdkmath.Int) string {
	if amount.IsNil() {
		return "0"
	}
	return amount.String()
}
