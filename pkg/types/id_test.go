package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtirbgo/gtirb/pkg/types"
)

func TestNewID_FreshIdentifiersAreUnique(t *testing.T) {
	seen := make(map[types.ID]bool)
	for i := 0; i < 1000; i++ {
		id := types.NewID()
		require.False(t, id.IsNil(), "fresh identifier must not be nil")
		require.False(t, seen[id], "identifier collision on iteration %d", i)
		seen[id] = true
	}
}

func TestParseID_WrongLengthIsMalformed(t *testing.T) {
	_, err := types.ParseID([]byte{1, 2, 3})
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, types.ErrKindMalformedIdentifier, typed.Kind)
}

func TestParseID_RoundTripsBytes(t *testing.T) {
	id := types.NewID()
	parsed, err := types.ParseID(id.Bytes())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestNilID_IsZeroValue(t *testing.T) {
	var id types.ID
	require.True(t, id.IsNil())
	require.Equal(t, types.NilID, id)
}
