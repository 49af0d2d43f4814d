package types

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// IDSize is the wire width of an ID: exactly 16 bytes, no more, no less.
const IDSize = 16

// ID is an opaque 128-bit stable identifier, unique within one Context.
// Two IDs compare bitwise; the zero value is the nil identifier and is never
// assigned to a live node.
type ID [IDSize]byte

// NilID is the zero identifier. It is used as a sentinel "unset" value for
// optional identifier fields (e.g. Module.EntryPoint, Symbol.Referent).
var NilID ID

// NewID generates a fresh identifier from a cryptographically adequate
// random source. Panics only if the system RNG is broken, matching the
// standard library's own crypto/rand contract.
func NewID() ID {
	var id ID
	if _, err := rand.Read(id[:]); err != nil {
		panic(fmt.Sprintf("types: crypto/rand failed: %v", err))
	}
	return id
}

// ParseID parses exactly IDSize bytes into an ID. Any other length is a
// MalformedIdentifier error.
func ParseID(b []byte) (ID, error) {
	var id ID
	if len(b) != IDSize {
		return id, Wrapf(ErrKindMalformedIdentifier, nil, "identifier has %d bytes, want %d", len(b), IDSize)
	}
	copy(id[:], b)
	return id, nil
}

// IsNil reports whether id is the zero identifier.
func (id ID) IsNil() bool { return id == NilID }

// Bytes returns the 16-byte wire encoding of id.
func (id ID) Bytes() []byte {
	out := make([]byte, IDSize)
	copy(out, id[:])
	return out
}

// String renders id as lowercase hex, for debug output only.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}
