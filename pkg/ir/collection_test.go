package ir_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtirbgo/gtirb/pkg/ir"
	"github.com/gtirbgo/gtirb/pkg/types"
)

func TestChildIter_PreservesInsertionOrder(t *testing.T) {
	c := ir.NewContext()
	top, err := ir.NewTop(c)
	require.NoError(t, err)

	var ids []types.ID
	for i := 0; i < 3; i++ {
		m, err := ir.NewModule(c, "m")
		require.NoError(t, err)
		require.NoError(t, top.AddModule(m))
		ids = append(ids, m.ID())
	}

	it := top.IterModules()
	defer it.Close()
	var got []types.ID
	for {
		m, err := it.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, m.ID())
	}
	require.Equal(t, ids, got)
}

func TestChildIter_OpenBorrowBlocksRemove(t *testing.T) {
	c := ir.NewContext()
	top, err := ir.NewTop(c)
	require.NoError(t, err)
	m, err := ir.NewModule(c, "m")
	require.NoError(t, err)
	require.NoError(t, top.AddModule(m))

	it := top.IterModules()
	_, err = top.RemoveModule(m.ID())
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, types.ErrKindBorrowConflict, typed.Kind)

	it.Close()
	_, err = top.RemoveModule(m.ID())
	require.NoError(t, err)
}

func TestRemoveModule_NotFoundForUnknownID(t *testing.T) {
	c := ir.NewContext()
	top, err := ir.NewTop(c)
	require.NoError(t, err)

	_, err = top.RemoveModule(types.NewID())
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, types.ErrKindNotFound, typed.Kind)
}

func TestAddModule_OpenBorrowBlocksAdd(t *testing.T) {
	c := ir.NewContext()
	top, err := ir.NewTop(c)
	require.NoError(t, err)
	m1, err := ir.NewModule(c, "m1")
	require.NoError(t, err)
	require.NoError(t, top.AddModule(m1))

	it := top.IterModules()
	m2, err := ir.NewModule(c, "m2")
	require.NoError(t, err)

	err = top.AddModule(m2)
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, types.ErrKindBorrowConflict, typed.Kind)
	require.Nil(t, m2.Parent(), "a failed add must leave the child detached")

	it.Close()
	require.NoError(t, top.AddModule(m2))
}

func TestAddModule_DetachedNodeOnDoubleAttach(t *testing.T) {
	c := ir.NewContext()
	top, err := ir.NewTop(c)
	require.NoError(t, err)
	other, err := ir.NewTop(ir.NewContext())
	require.NoError(t, err)

	m, err := ir.NewModule(c, "m")
	require.NoError(t, err)
	require.NoError(t, top.AddModule(m))

	err = other.AddModule(m)
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, types.ErrKindDetachedNode, typed.Kind)
}
