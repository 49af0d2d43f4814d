package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtirbgo/gtirb/internal/wire"
	"github.com/gtirbgo/gtirb/pkg/types"
)

func TestWriterReader_RoundTripsEveryPrimitive(t *testing.T) {
	id := types.NewID()

	w := wire.NewWriter()
	w.PutUint8(0xAB)
	w.PutBool(true)
	w.PutBool(false)
	w.PutUint32(0xDEADBEEF)
	w.PutUint64(0x1122334455667788)
	w.PutInt64(-42)
	w.PutID(id)
	w.PutAddress(0xCAFEBABE)
	w.PutBytes([]byte{1, 2, 3})
	w.PutString("hello")
	w.PutCount(7)

	r := wire.NewReader(w.Bytes())

	u8, err := r.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), u8)

	b1, err := r.Bool()
	require.NoError(t, err)
	require.True(t, b1)

	b2, err := r.Bool()
	require.NoError(t, err)
	require.False(t, b2)

	u32, err := r.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := r.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x1122334455667788), u64)

	i64, err := r.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(-42), i64)

	gotID, err := r.ID()
	require.NoError(t, err)
	require.Equal(t, id, gotID)

	addr, err := r.Address()
	require.NoError(t, err)
	require.Equal(t, types.Address(0xCAFEBABE), addr)

	data, err := r.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)

	s, err := r.String()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	count, err := r.Count()
	require.NoError(t, err)
	require.Equal(t, uint32(7), count)

	require.Zero(t, r.Remaining())
}

func TestReader_ShortReadIsTruncatedError(t *testing.T) {
	r := wire.NewReader([]byte{1, 2})
	_, err := r.Uint32()
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, types.ErrKindTruncated, typed.Kind)
}

func TestReader_ID_RejectsShortBuffer(t *testing.T) {
	r := wire.NewReader(make([]byte, 4))
	_, err := r.ID()
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, types.ErrKindTruncated, typed.Kind)
}

func TestReader_Bytes_LengthPrefixPastEndIsTruncated(t *testing.T) {
	w := wire.NewWriter()
	w.PutUint32(100)
	r := wire.NewReader(w.Bytes())
	_, err := r.Bytes()
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, types.ErrKindTruncated, typed.Kind)
}

func TestReader_Offset_TracksCursorAdvance(t *testing.T) {
	w := wire.NewWriter()
	w.PutUint8(1)
	w.PutUint32(2)
	r := wire.NewReader(w.Bytes())
	require.Equal(t, 0, r.Offset())
	_, err := r.Uint8()
	require.NoError(t, err)
	require.Equal(t, 1, r.Offset())
	_, err = r.Uint32()
	require.NoError(t, err)
	require.Equal(t, 5, r.Offset())
}
