// Package types defines the primitive values shared across the GTIRB core:
// the 128-bit stable identifier, the 64-bit code address, the wire-format
// enumerations, and the typed error taxonomy used by every other package.
//
// Design goals:
//   - Small, copyable values (ID, Address) instead of pointers where identity
//     is not required.
//   - Typed errors with stable categories (ErrKind: MalformedIdentifier,
//     UnknownEnum, TruncatedInput, ..., DanglingReferent) so
//     callers can branch with errors.Is instead of string matching.
//   - No dependency beyond the standard library and crypto/rand.
package types
