package ir

import "github.com/gtirbgo/gtirb/pkg/types"

// SymbolicExpressionKind distinguishes the three symbolic-expression shapes
// the wire format allows (§6).
type SymbolicExpressionKind uint8

const (
	// SymAddrAddr is scale*Sym1 - scale*Sym2 + offset (a scaled sum of two symbols).
	SymAddrAddr SymbolicExpressionKind = iota
	// SymAddrConst is Sym + offset.
	SymAddrConst
	// SymStackConst is a stack-relative Sym + offset.
	SymStackConst
)

func (k SymbolicExpressionKind) String() string {
	switch k {
	case SymAddrAddr:
		return "SymAddrAddr"
	case SymAddrConst:
		return "SymAddrConst"
	case SymStackConst:
		return "SymStackConst"
	default:
		return "SymbolicExpressionKind(?)"
	}
}

// SymbolicExpression is a small arithmetic expression over symbols and
// constants, associated with a byte offset within a ByteInterval (§3). It is
// a value, not a node: it carries symbol identifiers by reference rather
// than owning them.
type SymbolicExpression struct {
	Kind   SymbolicExpressionKind
	Scale  int64   // only meaningful for SymAddrAddr
	Offset int64   // constant addend
	Sym1   types.ID // primary symbol (all kinds)
	Sym2   types.ID // secondary symbol (SymAddrAddr only)
}
