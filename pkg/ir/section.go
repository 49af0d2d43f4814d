package ir

import (
	"github.com/gtirbgo/gtirb/pkg/types"
)

// Section is a named region of a module's address space (§3).
type Section struct {
	id     types.ID
	ctx    *Context
	parent *Module
	refs   int

	name          string
	flags         uint32 // bitset over types.SectionFlag
	byteIntervals childList[*ByteInterval]
}

// NewSection creates a fresh, detached Section registered in c.
func NewSection(c *Context, name string) (*Section, error) {
	id := types.NewID()
	if err := c.claim(id, kindSection); err != nil {
		return nil, err
	}
	s := &Section{id: id, ctx: c, refs: 1, name: name}
	c.sections[id] = s
	return s, nil
}

func newSectionFromWire(c *Context, id types.ID) (*Section, error) {
	if err := c.claim(id, kindSection); err != nil {
		return nil, err
	}
	s := &Section{id: id, ctx: c, refs: 1}
	c.sections[id] = s
	return s, nil
}

// ID returns the Section's stable identifier.
func (s *Section) ID() types.ID { return s.id }

// Context returns the owning Context.
func (s *Section) Context() *Context { return s.ctx }

// Parent returns the owning Module, or nil if detached.
func (s *Section) Parent() *Module { return s.parent }

// Name returns the section's name.
func (s *Section) Name() string { return s.name }

// SetName sets the section's name.
func (s *Section) SetName(name string) { s.name = name }

// HasFlag reports whether f is set.
func (s *Section) HasFlag(f types.SectionFlag) bool {
	return s.flags&(1<<uint(f)) != 0
}

// AddFlags sets each of the given flags.
func (s *Section) AddFlags(flags ...types.SectionFlag) {
	for _, f := range flags {
		s.flags |= 1 << uint(f)
	}
}

// RemoveFlags clears each of the given flags.
func (s *Section) RemoveFlags(flags ...types.SectionFlag) {
	for _, f := range flags {
		s.flags &^= 1 << uint(f)
	}
}

// Retain increments the handle count.
func (s *Section) Retain() *Section { s.refs++; return s }

// Release drops one handle. If the count reaches zero and the section is
// detached, it and every ByteInterval it owns (and their blocks) are
// destroyed and forgotten (§3: "the node and its subtree are destroyed").
func (s *Section) Release() {
	s.refs--
	if s.refs <= 0 && s.parent == nil {
		s.destroy()
	}
}

func (s *Section) destroy() {
	for _, bi := range s.byteIntervals.items {
		bi.destroy()
	}
	delete(s.ctx.sections, s.id)
	s.ctx.unclaim(s.id)
}

// AddByteInterval appends bi to this section's byte-interval list.
func (s *Section) AddByteInterval(bi *ByteInterval) error {
	if bi.parent != nil {
		return types.Wrapf(types.ErrKindDetachedNode, nil, "byte interval %s is already attached", bi.id)
	}
	if err := s.byteIntervals.add(bi); err != nil {
		return err
	}
	bi.parent = s
	return nil
}

// RemoveByteInterval detaches the byte interval identified by id.
func (s *Section) RemoveByteInterval(id types.ID) (*ByteInterval, error) {
	bi, err := s.byteIntervals.removeByID(id)
	if err != nil {
		return nil, err
	}
	bi.parent = nil
	return bi, nil
}

// IterByteIntervals returns a restartable iterator over this section's byte intervals.
func (s *Section) IterByteIntervals() *ChildIter[*ByteInterval] { return s.byteIntervals.iter() }

// ByteIntervalCount returns the number of byte intervals in this section.
func (s *Section) ByteIntervalCount() int { return s.byteIntervals.len() }

// ByteSpan returns the minimum address and total size spanned by this
// section's byte intervals, iff every one of them has an address set. A
// section with no byte intervals has no span.
func (s *Section) ByteSpan() (types.Address, uint64, bool) {
	it := s.IterByteIntervals()
	defer it.Close()

	var (
		minAddr types.Address
		maxEnd  uint64
		have    bool
	)
	for {
		bi, err := it.Next()
		if err != nil {
			break
		}
		addr, ok := bi.Address()
		if !ok {
			return 0, 0, false
		}
		end := uint64(addr) + bi.Size()
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
