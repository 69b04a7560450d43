package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPoolID_Canonical(t *testing.T) {
	require.Equal(t, PoolID("uatom:uusdc"), NewPoolID("uatom", "uusdc"))
	require.Equal(t, PoolID("uatom:uusdc"), NewPoolID("uusdc", "uatom"))

	// Lexicographic, not length-based ordering.
	require.Equal(t, PoolID("ua:uzz"), NewPoolID("uzz", "ua"))
}
