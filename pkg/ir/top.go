package ir

import (
	"github.com/gtirbgo/gtirb/pkg/types"
)

// Top is the root container of one IR tree (§3). A Context owns at most one
// Top at a time.
type Top struct {
	id      types.ID
	ctx     *Context
	refs    int
	version uint32
	modules childList[*Module]
	auxData map[string][]byte
}

// NewTop creates a fresh, detached-from-nothing Top (Top has no parent by
// definition) registered in c, and sets it as c's root. It is an error to
// call NewTop on a Context that already owns a Top.
func NewTop(c *Context) (*Top, error) {
	if c.top != nil {
		return nil, types.Wrapf(types.ErrKindDetachedNode, nil, "context already owns a Top")
	}
	id := types.NewID()
	if err := c.claim(id, kindTop); err != nil {
		return nil, err
	}
	t := &Top{id: id, ctx: c, refs: 1, auxData: make(map[string][]byte)}
	c.top = t
	return t, nil
}

// newTopFromWire reconstructs a Top during decode, using the identifier
// recorded on the wire instead of generating a fresh one.
func newTopFromWire(c *Context, id types.ID, version uint32) (*Top, error) {
	if c.top != nil {
		return nil, types.Wrapf(types.ErrKindDetachedNode, nil, "context already owns a Top")
	}
	if err := c.claim(id, kindTop); err != nil {
		return nil, err
	}
	t := &Top{id: id, ctx: c, refs: 1, version: version, auxData: make(map[string][]byte)}
	c.top = t
	return t, nil
}

// ID returns the Top's stable identifier.
func (t *Top) ID() types.ID { return t.id }

// Context returns the owning Context.
func (t *Top) Context() *Context { return t.ctx }

// Version returns the schema version recorded on this Top.
func (t *Top) Version() uint32 { return t.version }

// SetVersion sets the schema version.
func (t *Top) SetVersion(v uint32) { t.version = v }

// AuxData returns the opaque auxiliary-data map, preserved byte-for-byte
// through decode/encode and never interpreted by the core (§1).
func (t *Top) AuxData() map[string][]byte { return t.auxData }

// Retain increments the handle count, producing a second independent
// handle to the same storage.
func (t *Top) Retain() *Top { t.refs++; return t }

// Release drops one handle. Top has no parent, so it is never "attached";
// once its handle count reaches zero, it and its entire subtree (every
// Module it owns, and everything they own in turn) are destroyed and
// forgotten (§3: "the node and its subtree are destroyed").
func (t *Top) Release() {
	t.refs--
	if t.refs <= 0 {
		for _, m := range t.modules.items {
			m.destroy()
		}
		t.ctx.unclaim(t.id)
		if t.ctx.top == t {
			t.ctx.top = nil
		}
	}
}

// AddModule appends m to this Top's module list and sets m's up-reference.
// Fails with DetachedNode if m is already attached to a different Top.
func (t *Top) AddModule(m *Module) error {
	if m.parent != nil {
		return types.Wrapf(types.ErrKindDetachedNode, nil, "module %s is already attached", m.id)
	}
	if err := t.modules.add(m); err != nil {
		return err
	}
	m.parent = t
	return nil
}

// RemoveModule detaches the module identified by id from this Top's
// module list, clearing its up-reference, and returns its handle.
func (t *Top) RemoveModule(id types.ID) (*Module, error) {
	m, err := t.modules.removeByID(id)
	if err != nil {
		return nil, err
	}
	m.parent = nil
	return m, nil
}

// IterModules returns a lazy, restartable iterator over this Top's modules
// in insertion order. Callers must Close the iterator when done.
func (t *Top) IterModules() *ChildIter[*Module] { return t.modules.iter() }

// ModuleCount returns the number of modules currently owned by this Top.
func (t *Top) ModuleCount() int { return t.modules.len() }
