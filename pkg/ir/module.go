package ir

import (
	"github.com/gtirbgo/gtirb/pkg/types"
)

// Module is one analyzed binary image within a Top (§3).
type Module struct {
	id     types.ID
	ctx    *Context
	parent *Top
	refs   int

	name          string
	binaryPath    string
	preferredAddr types.Address
	rebaseDelta   int64
	fileFormat    types.FileFormat
	isa           types.ISA
	byteOrder     types.ByteOrder
	entryPoint    types.ID // CodeBlock ID, NilID if unset

	sections childList[*Section]
	symbols  childList[*Symbol]
	proxies  childList[*ProxyBlock]
	auxData  map[string][]byte
}

// NewModule creates a fresh, detached Module registered in c.
func NewModule(c *Context, name string) (*Module, error) {
	id := types.NewID()
	if err := c.claim(id, kindModule); err != nil {
		return nil, err
	}
	m := &Module{id: id, ctx: c, refs: 1, name: name, auxData: make(map[string][]byte)}
	c.modules[id] = m
	return m, nil
}

func newModuleFromWire(c *Context, id types.ID) (*Module, error) {
	if err := c.claim(id, kindModule); err != nil {
		return nil, err
	}
	m := &Module{id: id, ctx: c, refs: 1, auxData: make(map[string][]byte)}
	c.modules[id] = m
	return m, nil
}

// ID returns the Module's stable identifier.
func (m *Module) ID() types.ID { return m.id }

// Context returns the owning Context.
func (m *Module) Context() *Context { return m.ctx }

// Parent returns the owning Top, or nil if this Module is detached.
func (m *Module) Parent() *Top { return m.parent }

// Name returns the module's human name.
func (m *Module) Name() string { return m.name }

// SetName sets the module's human name.
func (m *Module) SetName(name string) { m.name = name }

// BinaryPath returns the path of the binary this module was loaded from.
func (m *Module) BinaryPath() string { return m.binaryPath }

// SetBinaryPath sets the binary path.
func (m *Module) SetBinaryPath(path string) { m.binaryPath = path }

// PreferredAddr returns the module's preferred load address.
func (m *Module) PreferredAddr() types.Address { return m.preferredAddr }

// SetPreferredAddr sets the preferred load address.
func (m *Module) SetPreferredAddr(a types.Address) { m.preferredAddr = a }

// RebaseDelta returns the signed rebase delta applied when this module was
// relocated from its preferred address.
func (m *Module) RebaseDelta() int64 { return m.rebaseDelta }

// SetRebaseDelta sets the rebase delta.
func (m *Module) SetRebaseDelta(d int64) { m.rebaseDelta = d }

// IsRelocated reports whether this module's rebase delta is non-zero.
func (m *Module) IsRelocated() bool { return m.rebaseDelta != 0 }

// FileFormat returns the module's binary container format tag.
func (m *Module) FileFormat() types.FileFormat { return m.fileFormat }

// SetFileFormat sets the file-format tag. Callers are expected to pass a
// value for which types.ValidFileFormat returns true; the core itself only
// rejects invalid tags at decode time (§4.7).
func (m *Module) SetFileFormat(f types.FileFormat) { m.fileFormat = f }

// ISA returns the module's instruction-set tag.
func (m *Module) ISA() types.ISA { return m.isa }

// SetISA sets the ISA tag.
func (m *Module) SetISA(i types.ISA) { m.isa = i }

// ByteOrder returns the module's endianness tag.
func (m *Module) ByteOrder() types.ByteOrder { return m.byteOrder }

// SetByteOrder sets the endianness tag.
func (m *Module) SetByteOrder(o types.ByteOrder) { m.byteOrder = o }

// EntryPoint returns the identifier of the entry CodeBlock, and whether one
// is set.
func (m *Module) EntryPoint() (types.ID, bool) {
	if m.entryPoint.IsNil() {
		return types.NilID, false
	}
	return m.entryPoint, true
}

// SetEntryPoint sets the entry-point referent to the given CodeBlock ID.
func (m *Module) SetEntryPoint(id types.ID) { m.entryPoint = id }

// ClearEntryPoint unsets the entry-point referent.
func (m *Module) ClearEntryPoint() { m.entryPoint = types.NilID }

// AuxData returns the opaque auxiliary-data map, preserved byte-for-byte
// through decode/encode.
func (m *Module) AuxData() map[string][]byte { return m.auxData }

// Retain increments the handle count.
func (m *Module) Retain() *Module { m.refs++; return m }

// Release drops one handle. If the count reaches zero and the module is
// detached, it (and its subtree) is destroyed and forgotten.
func (m *Module) Release() {
	m.refs--
	if m.refs <= 0 && m.parent == nil {
		m.destroy()
	}
}

func (m *Module) destroy() {
	for _, sec := range m.sections.items {
		sec.destroy()
	}
	for _, sym := range m.symbols.items {
		sym.destroy()
	}
	for _, p := range m.proxies.items {
		p.destroy()
	}
	delete(m.ctx.modules, m.id)
	m.ctx.unclaim(m.id)
}

// AddSection appends s to this module's section list.
func (m *Module) AddSection(s *Section) error {
	if s.parent != nil {
		return types.Wrapf(types.ErrKindDetachedNode, nil, "section %s is already attached", s.id)
	}
	if err := m.sections.add(s); err != nil {
		return err
	}
	s.parent = m
	return nil
}

// RemoveSection detaches the section identified by id.
func (m *Module) RemoveSection(id types.ID) (*Section, error) {
	s, err := m.sections.removeByID(id)
	if err != nil {
		return nil, err
	}
	s.parent = nil
	return s, nil
}

// IterSections returns a restartable iterator over this module's sections.
func (m *Module) IterSections() *ChildIter[*Section] { return m.sections.iter() }

// SectionCount returns the number of sections owned by this module.
func (m *Module) SectionCount() int { return m.sections.len() }

// AddSymbol appends sym to this module's symbol set.
func (m *Module) AddSymbol(sym *Symbol) error {
	if sym.parent != nil {
		return types.Wrapf(types.ErrKindDetachedNode, nil, "symbol %s is already attached", sym.id)
	}
	if err := m.symbols.add(sym); err != nil {
		return err
	}
	sym.parent = m
	return nil
}

// RemoveSymbol detaches the symbol identified by id.
func (m *Module) RemoveSymbol(id types.ID) (*Symbol, error) {
	sym, err := m.symbols.removeByID(id)
	if err != nil {
		return nil, err
	}
	sym.parent = nil
	return sym, nil
}

// IterSymbols returns a restartable iterator over this module's symbols.
func (m *Module) IterSymbols() *ChildIter[*Symbol] { return m.symbols.iter() }

// SymbolCount returns the number of symbols owned by this module.
func (m *Module) SymbolCount() int { return m.symbols.len() }

// AddProxyBlock appends p to this module's proxy-block set.
func (m *Module) AddProxyBlock(p *ProxyBlock) error {
	if p.parent != nil {
		return types.Wrapf(types.ErrKindDetachedNode, nil, "proxy block %s is already attached", p.id)
	}
	if err := m.proxies.add(p); err != nil {
		return err
	}
	p.parent = m
	return nil
}

// RemoveProxyBlock detaches the proxy block identified by id.
func (m *Module) RemoveProxyBlock(id types.ID) (*ProxyBlock, error) {
	p, err := m.proxies.removeByID(id)
	if err != nil {
		return nil, err
	}
	p.parent = nil
	return p, nil
}

// IterProxyBlocks returns a restartable iterator over this module's proxy blocks.
func (m *Module) IterProxyBlocks() *ChildIter[*ProxyBlock] { return m.proxies.iter() }

// ProxyBlockCount returns the number of proxy blocks owned by this module.
func (m *Module) ProxyBlockCount() int { return m.proxies.len() }

// ByteSpan returns the minimum address and total size spanned by this
// module's sections, iff every contained ByteInterval has an address
// (§4.6, §8 property 7). The bool is false when the span is unset.
func (m *Module) ByteSpan() (types.Address, uint64, bool) {
	it := m.IterSections()
	defer it.Close()

	var (
		minAddr types.Address
		maxEnd  uint64
		have    bool
	)
	for {
		s, err := it.Next()
		if err != nil {
			break
		}
		if s.ByteIntervalCount() == 0 {
			continue
		}
		addr, size, ok := s.ByteSpan()
		if !ok {
			return 0, 0, false
		}
		end := uint64(addr) + size
		if !have {
			minAddr, maxEnd, have = addr, end, true
			continue
		}
		if addr < minAddr {
			minAddr = addr
		}
		if end > maxEnd {
			maxEnd = end
		}
	}
	if !have {
		return 0, 0, false
	}
	return minAddr, maxEnd - uint64(minAddr), true
}

// ByteIntervals returns a flat slice of every ByteInterval across all of
// this module's sections, in section order then interval order.
func (m *Module) ByteIntervals() []*ByteInterval {
	var out []*ByteInterval
	it := m.IterSections()
	defer it.Close()
	for {
		s, err := it.Next()
		if err != nil {
			break
		}
		bit := s.IterByteIntervals()
		for {
			bi, err := bit.Next()
			if err != nil {
				break
			}
			out = append(out, bi)
		}
		bit.Close()
	}
	return out
}

// CodeBlocks returns a flat slice of every CodeBlock across all of this
// module's sections and byte intervals.
func (m *Module) CodeBlocks() []*CodeBlock {
	var out []*CodeBlock
	for _, bi := range m.ByteIntervals() {
		it := bi.IterCodeBlocks()
		for {
			cb, err := it.Next()
			if err != nil {
				break
			}
			out = append(out, cb)
		}
		it.Close()
	}
	return out
}

// DataBlocks returns a flat slice of every DataBlock across all of this
// module's sections and byte intervals.
func (m *Module) DataBlocks() []*DataBlock {
	var out []*DataBlock
	for _, bi := range m.ByteIntervals() {
		it := bi.IterDataBlocks()
		for {
			db, err := it.Next()
			if err != nil {
				break
			}
			out = append(out, db)
		}
		it.Close()
	}
	return out
}
