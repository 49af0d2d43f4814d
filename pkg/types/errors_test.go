package types_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtirbgo/gtirb/pkg/types"
)

func TestError_IsMatchesOnKindAlone(t *testing.T) {
	err := types.Wrapf(types.ErrKindNotFound, nil, "symbol %s missing", "deadbeef")
	require.True(t, errors.Is(err, types.ErrNotFound))
	require.False(t, errors.Is(err, types.ErrBorrowConflict))
}

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := types.Wrapf(types.ErrKindTruncated, cause, "short read")
	require.ErrorIs(t, err, cause)
}

func TestErrKind_String(t *testing.T) {
	require.Equal(t, "BorrowConflict", types.ErrKindBorrowConflict.String())
}
