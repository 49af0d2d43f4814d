package types

import "fmt"

// ErrKind classifies errors so callers can branch on intent rather than text,
// matching the §7 error taxonomy.
type ErrKind int

const (
	// ErrKindMalformedIdentifier: a 16-byte identifier field had the wrong length.
	ErrKindMalformedIdentifier ErrKind = iota
	// ErrKindUnknownEnum: an enumerated wire tag fell outside its declared set.
	ErrKindUnknownEnum
	// ErrKindTruncated: the wire envelope could not be parsed (short read).
	ErrKindTruncated
	// ErrKindInvalidBlockRecord: a Block record had neither a code nor data body.
	ErrKindInvalidBlockRecord
	// ErrKindInvalidSizes: initialized contents exceeded declared size, or a
	// symbolic-expression key was >= the interval size.
	ErrKindInvalidSizes
	// ErrKindDetachedNode: an add-child was attempted on a node already attached
	// to a different parent.
	ErrKindDetachedNode
	// ErrKindNotFound: identifier not present in the registry, or a child
	// identifier not present in a parent's child list.
	ErrKindNotFound
	// ErrKindBorrowConflict: a structural mutation was attempted while an
	// iterator or read-borrow was live on the same container.
	ErrKindBorrowConflict
	// ErrKindDanglingReferent: a Symbol's referent identifier did not resolve.
	ErrKindDanglingReferent
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindMalformedIdentifier:
		return "MalformedIdentifier"
	case ErrKindUnknownEnum:
		return "UnknownEnum"
	case ErrKindTruncated:
		return "TruncatedInput"
	case ErrKindInvalidBlockRecord:
		return "InvalidBlockRecord"
	case ErrKindInvalidSizes:
		return "InvalidSizes"
	case ErrKindDetachedNode:
		return "DetachedNode"
	case ErrKindNotFound:
		return "NotFound"
	case ErrKindBorrowConflict:
		return "BorrowConflict"
	case ErrKindDanglingReferent:
		return "DanglingReferent"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on Kind alone (ignoring Msg/Err), so callers can
// compare against the sentinels below without caring about the wrapped detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned (and matched via errors.Is) by implementations.
var (
	ErrMalformedIdentifier = &Error{Kind: ErrKindMalformedIdentifier, Msg: "identifier field is not exactly 16 bytes"}
	ErrUnknownEnum         = &Error{Kind: ErrKindUnknownEnum, Msg: "enumerated tag value is not recognized"}
	ErrTruncated           = &Error{Kind: ErrKindTruncated, Msg: "wire envelope truncated or malformed"}
	ErrInvalidBlockRecord  = &Error{Kind: ErrKindInvalidBlockRecord, Msg: "block record has neither a code nor a data body"}
	ErrInvalidSizes        = &Error{Kind: ErrKindInvalidSizes, Msg: "declared size is inconsistent with content"}
	ErrDetachedNode        = &Error{Kind: ErrKindDetachedNode, Msg: "node is already attached to a different parent"}
	ErrNotFound            = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	ErrBorrowConflict      = &Error{Kind: ErrKindBorrowConflict, Msg: "mutation conflicts with a live iterator or borrow"}
	ErrDanglingReferent    = &Error{Kind: ErrKindDanglingReferent, Msg: "symbol referent does not resolve in this context"}
)

// Wrapf builds a new *Error of the given kind, wrapping cause, with a
// formatted message. Cause may be nil.
func Wrapf(kind ErrKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}
