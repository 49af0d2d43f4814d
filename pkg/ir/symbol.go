package ir

import (
	"github.com/gtirbgo/gtirb/pkg/types"
)

type symbolPayloadKind uint8

const (
	symbolPayloadNone symbolPayloadKind = iota
	symbolPayloadValue
	symbolPayloadReferent
)

// Symbol is a named reference with either an absolute-value payload or an
// identifier payload pointing at another node (§3). The two payload forms
// are mutually exclusive.
type Symbol struct {
	id     types.ID
	ctx    *Context
	parent *Module
	refs   int

	name        string
	payloadKind symbolPayloadKind
	value       types.Address
	referent    types.ID
}

// NewSymbol creates a fresh, detached Symbol registered in c, with no payload set.
func NewSymbol(c *Context, name string) (*Symbol, error) {
	id := types.NewID()
	if err := c.claim(id, kindSymbol); err != nil {
		return nil, err
	}
	s := &Symbol{id: id, ctx: c, refs: 1, name: name}
	c.symbols[id] = s
	return s, nil
}

func newSymbolFromWire(c *Context, id types.ID) (*Symbol, error) {
	if err := c.claim(id, kindSymbol); err != nil {
		return nil, err
	}
	s := &Symbol{id: id, ctx: c, refs: 1}
	c.symbols[id] = s
	return s, nil
}

// ID returns the Symbol's stable identifier.
func (s *Symbol) ID() types.ID { return s.id }

// Context returns the owning Context.
func (s *Symbol) Context() *Context { return s.ctx }

// Parent returns the owning Module, or nil if detached.
func (s *Symbol) Parent() *Module { return s.parent }

// Name returns the symbol's name.
func (s *Symbol) Name() string { return s.name }

// SetName sets the symbol's name.
func (s *Symbol) SetName(name string) { s.name = name }

// Value returns the symbol's inline address payload, and whether one is set.
func (s *Symbol) Value() (types.Address, bool) {
	if s.payloadKind != symbolPayloadValue {
		return 0, false
	}
	return s.value, true
}

// SetValue sets an inline-address payload, clearing any referent payload.
func (s *Symbol) SetValue(a types.Address) {
	s.payloadKind = symbolPayloadValue
	s.value = a
	s.referent = types.NilID
}

// Referent returns the symbol's referent identifier, and whether one is set.
func (s *Symbol) Referent() (types.ID, bool) {
	if s.payloadKind != symbolPayloadReferent {
		return types.NilID, false
	}
	return s.referent, true
}

// SetReferent sets a referent-identifier payload, clearing any inline-value
// payload. The referent is not required to resolve at set time; dangling
// referents surface only on explicit dereference (Context.Verify, or
// Resolve below) per §9's first Open Question.
func (s *Symbol) SetReferent(id types.ID) {
	s.payloadKind = symbolPayloadReferent
	s.referent = id
	s.value = 0
}

// ClearPayload unsets whichever payload is currently set.
func (s *Symbol) ClearPayload() {
	s.payloadKind = symbolPayloadNone
	s.value = 0
	s.referent = types.NilID
}

// Resolve looks up this symbol's referent in its Context. It returns
// ErrDanglingReferent if a referent payload is set but does not resolve,
// and ErrNotFound if no referent payload is set at all.
func (s *Symbol) Resolve() (any, error) {
	id, ok := s.Referent()
	if !ok {
		return nil, types.ErrNotFound
	}
	node, ok := s.ctx.FindAny(id)
	if !ok {
		return nil, types.Wrapf(types.ErrKindDanglingReferent, nil,
			"symbol %s referent %s does not resolve", s.id, id)
	}
	return node, nil
}

// Retain increments the handle count.
func (s *Symbol) Retain() *Symbol { s.refs++; return s }

// Release drops one handle, destroying the symbol once unreferenced and detached.
func (s *Symbol) Release() {
	s.refs--
	if s.refs <= 0 && s.parent == nil {
		s.destroy()
	}
}

// destroy removes this symbol from the registry. A Symbol is a leaf: it
// carries its referent by identifier only and owns no child nodes.
func (s *Symbol) destroy() {
	delete(s.ctx.symbols, s.id)
	s.ctx.unclaim(s.id)
}
