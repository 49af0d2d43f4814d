package wire

import (
	"github.com/gtirbgo/gtirb/internal/buf"
	"github.com/gtirbgo/gtirb/pkg/types"
)

// Reader is a bounds-checked cursor over a decode buffer. Every read
// advances the cursor; a read that would run past the end of the buffer
// fails with ErrTruncated rather than panicking, matching §4.7's
// truncated-envelope failure mode.
type Reader struct {
	buf []byte
	off int
}

// NewReader wraps b for sequential reading starting at offset 0.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int { return r.off }

// Remaining reports how many bytes are left unread.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) take(n int) ([]byte, error) {
	s, ok := buf.Slice(r.buf, r.off, n)
	if !ok {
		return nil, types.Wrapf(types.ErrKindTruncated, nil,
			"need %d bytes at offset %d, have %d", n, r.off, len(r.buf))
	}
	r.off += n
	return s, nil
}

// Uint8 reads one byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads one byte as a boolean (zero is false, anything else is true).
func (r *Reader) Bool() (bool, error) {
	b, err := r.Uint8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return buf.U32LE(b), nil
}

// Int64 reads a little-endian int64.
func (r *Reader) Int64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(buf.U64LE(b)), nil
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return buf.U64LE(b), nil
}

// ID reads a fixed 16-byte identifier.
func (r *Reader) ID() (types.ID, error) {
	b, err := r.take(types.IDSize)
	if err != nil {
		return types.NilID, err
	}
	return types.ParseID(b)
}

// Address reads a little-endian 64-bit address.
func (r *Reader) Address() (types.Address, error) {
	v, err := r.Uint64()
	return types.Address(v), err
}

// Bytes reads a uint32-length-prefixed byte string and returns a copy.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// String reads a uint32-length-prefixed UTF-8 string.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Count reads a uint32 element count for a list or map field.
func (r *Reader) Count() (uint32, error) {
	return r.Uint32()
}
