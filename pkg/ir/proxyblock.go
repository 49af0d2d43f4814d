package ir

import (
	"github.com/gtirbgo/gtirb/pkg/types"
)

// ProxyBlock is a placeholder for a referent external to the module, e.g.
// an imported symbol target (§3). It carries no attributes beyond its
// identifier.
type ProxyBlock struct {
	id     types.ID
	ctx    *Context
	parent *Module
	refs   int
}

// NewProxyBlock creates a fresh, detached ProxyBlock registered in c.
func NewProxyBlock(c *Context) (*ProxyBlock, error) {
	id := types.NewID()
	if err := c.claim(id, kindProxyBlock); err != nil {
		return nil, err
	}
	p := &ProxyBlock{id: id, ctx: c, refs: 1}
	c.proxyBlocks[id] = p
	return p, nil
}

func newProxyBlockFromWire(c *Context, id types.ID) (*ProxyBlock, error) {
	if err := c.claim(id, kindProxyBlock); err != nil {
		return nil, err
	}
	p := &ProxyBlock{id: id, ctx: c, refs: 1}
	c.proxyBlocks[id] = p
	return p, nil
}

// ID returns the ProxyBlock's stable identifier.
func (p *ProxyBlock) ID() types.ID { return p.id }

// Context returns the owning Context.
func (p *ProxyBlock) Context() *Context { return p.ctx }

// Parent returns the owning Module, or nil if detached.
func (p *ProxyBlock) Parent() *Module { return p.parent }

// Retain increments the handle count.
func (p *ProxyBlock) Retain() *ProxyBlock { p.refs++; return p }

// Release drops one handle, destroying the block once unreferenced and detached.
func (p *ProxyBlock) Release() {
	p.refs--
	if p.refs <= 0 && p.parent == nil {
		p.destroy()
	}
}

// destroy removes this block from the registry. A ProxyBlock is a leaf: it
// owns no children of its own.
func (p *ProxyBlock) destroy() {
	delete(p.ctx.proxyBlocks, p.id)
	p.ctx.unclaim(p.id)
}
