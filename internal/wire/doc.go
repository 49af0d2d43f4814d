// Package wire implements the bounds-checked binary primitives the codec
// in pkg/ir builds its record parsing on: little-endian integers, length-
// prefixed byte strings, and counted lists, all read from and written to a
// single growable buffer.
package wire
