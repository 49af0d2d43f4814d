package types_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtirbgo/gtirb/pkg/types"
)

func TestAddress_AddWrapsOnOverflow(t *testing.T) {
	max := types.Address(math.MaxUint64)
	require.Equal(t, types.Address(0), max.Add(1))
}

func TestAddress_SubWrapsOnUnderflow(t *testing.T) {
	zero := types.Address(0)
	require.Equal(t, types.Address(math.MaxUint64), zero.Sub(1))
}

func TestAddress_CompareAndLess(t *testing.T) {
	a, b := types.Address(0x1000), types.Address(0x2000)
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(a))
}

func TestAddress_String(t *testing.T) {
	require.Equal(t, "0x401000", types.Address(0x401000).String())
}
