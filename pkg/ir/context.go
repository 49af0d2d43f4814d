package ir

import (
	"fmt"

	"github.com/gtirbgo/gtirb/pkg/types"
)

// kind distinguishes the eight node entities for the purpose of typed
// lookup and cross-kind collision detection.
type kind uint8

const (
	kindTop kind = iota
	kindModule
	kindSection
	kindByteInterval
	kindCodeBlock
	kindDataBlock
	kindProxyBlock
	kindSymbol
)

// Context is a process-local registry mapping each live identifier to its
// node: the Top pointer plus one typed map for each of the other seven node
// kinds (§4.3). One Context owns at most one
// Top at a time; the Top owns the rest of the tree. A Context may be shared
// (multiple Go values may point at the same *Context); mutation is assumed
// single-threaded, matching §5.
type Context struct {
	top *Top

	modules       map[types.ID]*Module
	sections      map[types.ID]*Section
	byteIntervals map[types.ID]*ByteInterval
	codeBlocks    map[types.ID]*CodeBlock
	dataBlocks    map[types.ID]*DataBlock
	proxyBlocks   map[types.ID]*ProxyBlock
	symbols       map[types.ID]*Symbol

	// presence is the union of every live ID across all eight kinds. It
	// exists to reject ID reuse at insert time, within or across kinds,
	// resolving §9's third Open Question ("identifiers are globally unique
	// within a context, across all kinds").
	presence map[types.ID]kind
}

// NewContext allocates a fresh, empty Context with no Top.
func NewContext() *Context {
	return &Context{
		modules:       make(map[types.ID]*Module),
		sections:      make(map[types.ID]*Section),
		byteIntervals: make(map[types.ID]*ByteInterval),
		codeBlocks:    make(map[types.ID]*CodeBlock),
		dataBlocks:    make(map[types.ID]*DataBlock),
		proxyBlocks:   make(map[types.ID]*ProxyBlock),
		symbols:       make(map[types.ID]*Symbol),
		presence:      make(map[types.ID]kind),
	}
}

// Top returns the Context's root node, or nil if none has been created yet.
func (c *Context) Top() *Top { return c.top }

// claim registers id as belonging to k, failing if any live node of any
// kind (including k itself) already holds it.
func (c *Context) claim(id types.ID, k kind) error {
	if existing, ok := c.presence[id]; ok {
		return fmt.Errorf("ir: identifier %s already registered as kind %d, cannot reuse as kind %d", id, existing, k)
	}
	c.presence[id] = k
	return nil
}

func (c *Context) unclaim(id types.ID) {
	delete(c.presence, id)
}

// FindModule returns the live Module named by id, or (nil, false).
func (c *Context) FindModule(id types.ID) (*Module, bool) { v, ok := c.modules[id]; return v, ok }

// FindSection returns the live Section named by id, or (nil, false).
func (c *Context) FindSection(id types.ID) (*Section, bool) { v, ok := c.sections[id]; return v, ok }

// FindByteInterval returns the live ByteInterval named by id, or (nil, false).
func (c *Context) FindByteInterval(id types.ID) (*ByteInterval, bool) {
	v, ok := c.byteIntervals[id]
	return v, ok
}

// FindCodeBlock returns the live CodeBlock named by id, or (nil, false).
func (c *Context) FindCodeBlock(id types.ID) (*CodeBlock, bool) {
	v, ok := c.codeBlocks[id]
	return v, ok
}

// FindDataBlock returns the live DataBlock named by id, or (nil, false).
func (c *Context) FindDataBlock(id types.ID) (*DataBlock, bool) {
	v, ok := c.dataBlocks[id]
	return v, ok
}

// FindProxyBlock returns the live ProxyBlock named by id, or (nil, false).
func (c *Context) FindProxyBlock(id types.ID) (*ProxyBlock, bool) {
	v, ok := c.proxyBlocks[id]
	return v, ok
}

// FindSymbol returns the live Symbol named by id, or (nil, false).
func (c *Context) FindSymbol(id types.ID) (*Symbol, bool) { v, ok := c.symbols[id]; return v, ok }

// FindAny performs an untyped lookup across all eight kinds in a defined
// order (Top, Module, Section, ByteInterval, CodeBlock, DataBlock,
// ProxyBlock, Symbol). It is optional per §4.3 but convenient for the CLI
// and for diagnostics.
func (c *Context) FindAny(id types.ID) (any, bool) {
	if c.top != nil && c.top.id == id {
		return c.top, true
	}
	if v, ok := c.modules[id]; ok {
		return v, true
	}
	if v, ok := c.sections[id]; ok {
		return v, true
	}
	if v, ok := c.byteIntervals[id]; ok {
		return v, true
	}
	if v, ok := c.codeBlocks[id]; ok {
		return v, true
	}
	if v, ok := c.dataBlocks[id]; ok {
		return v, true
	}
	if v, ok := c.proxyBlocks[id]; ok {
		return v, true
	}
	if v, ok := c.symbols[id]; ok {
		return v, true
	}
	return nil, false
}

// DanglingReferent describes a Symbol whose referent ID does not resolve to
// any live node in the Context.
type DanglingReferent struct {
	Symbol   types.ID
	Referent types.ID
}

// Verify enumerates all dangling referents of every Symbol registered in
// the Context, attached or not, resolving §9's first Open Question: a
// dangling referent is not an error until it is dereferenced (Symbol.Resolve
// then fails with DanglingReferent), and this method is the dedicated way to
// discover all of them up front.
func (c *Context) Verify() []DanglingReferent {
	var out []DanglingReferent
	for id, sym := range c.symbols {
		if sym.payloadKind != symbolPayloadReferent {
			continue
		}
		if _, ok := c.FindAny(sym.referent); !ok {
			out = append(out, DanglingReferent{Symbol: id, Referent: sym.referent})
		}
	}
	return out
}
