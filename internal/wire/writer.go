package wire

import "encoding/binary"

// Writer is an append-only little-endian encode buffer, the dual of Reader.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated wire bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// PutUint8 appends one byte.
func (w *Writer) PutUint8(v uint8) { w.buf = append(w.buf, v) }

// PutBool appends a boolean as a single 0/1 byte.
func (w *Writer) PutBool(v bool) {
	if v {
		w.PutUint8(1)
	} else {
		w.PutUint8(0)
	}
}

// PutUint32 appends a little-endian uint32.
func (w *Writer) PutUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// PutUint64 appends a little-endian uint64.
func (w *Writer) PutUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// PutInt64 appends a little-endian int64.
func (w *Writer) PutInt64(v int64) { w.PutUint64(uint64(v)) }

// PutID appends a raw 16-byte identifier.
func (w *Writer) PutID(id [16]byte) { w.buf = append(w.buf, id[:]...) }

// PutAddress appends a little-endian 64-bit address.
func (w *Writer) PutAddress(a uint64) { w.PutUint64(a) }

// PutBytes appends a uint32 length prefix followed by b.
func (w *Writer) PutBytes(b []byte) {
	w.PutUint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// PutString appends a uint32 length prefix followed by the UTF-8 bytes of s.
func (w *Writer) PutString(s string) { w.PutBytes([]byte(s)) }

// PutCount appends a uint32 element count for a list or map field.
func (w *Writer) PutCount(n int) { w.PutUint32(uint32(n)) }
