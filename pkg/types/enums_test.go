package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtirbgo/gtirb/pkg/types"
)

func TestValidFileFormat_RejectsOutOfRangeTags(t *testing.T) {
	require.True(t, types.ValidFileFormat(types.FileFormatELF))
	require.False(t, types.ValidFileFormat(types.FileFormat(255)))
}

func TestValidISA_RejectsOutOfRangeTags(t *testing.T) {
	require.True(t, types.ValidISA(types.ISAX64))
	require.False(t, types.ValidISA(types.ISA(255)))
}

func TestValidByteOrder_RejectsOutOfRangeTags(t *testing.T) {
	require.True(t, types.ValidByteOrder(types.ByteOrderLittle))
	require.False(t, types.ValidByteOrder(types.ByteOrder(99)))
}

func TestValidSectionFlag_RejectsOutOfRangeTags(t *testing.T) {
	require.True(t, types.ValidSectionFlag(types.SectionFlagThreadLocal))
	require.False(t, types.ValidSectionFlag(types.SectionFlag(99)))
}

func TestEnumStringers_FallBackForUnknownValues(t *testing.T) {
	require.Equal(t, "ELF", types.FileFormatELF.String())
	require.Contains(t, types.FileFormat(255).String(), "FileFormat(255)")
}
