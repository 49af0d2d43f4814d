package ir

import (
	"github.com/gtirbgo/gtirb/pkg/types"
)

// CodeBlock is a labeled span of bytes within a ByteInterval, treated as
// code (§3).
type CodeBlock struct {
	id     types.ID
	ctx    *Context
	parent *ByteInterval
	refs   int

	offset     uint64
	size       uint64
	decodeMode types.DecodeMode
}

// NewCodeBlock creates a fresh, detached CodeBlock registered in c.
func NewCodeBlock(c *Context, offset, size uint64) (*CodeBlock, error) {
	id := types.NewID()
	if err := c.claim(id, kindCodeBlock); err != nil {
		return nil, err
	}
	cb := &CodeBlock{id: id, ctx: c, refs: 1, offset: offset, size: size}
	c.codeBlocks[id] = cb
	return cb, nil
}

func newCodeBlockFromWire(c *Context, id types.ID) (*CodeBlock, error) {
	if err := c.claim(id, kindCodeBlock); err != nil {
		return nil, err
	}
	cb := &CodeBlock{id: id, ctx: c, refs: 1}
	c.codeBlocks[id] = cb
	return cb, nil
}

// ID returns the CodeBlock's stable identifier.
func (cb *CodeBlock) ID() types.ID { return cb.id }

// Context returns the owning Context.
func (cb *CodeBlock) Context() *Context { return cb.ctx }

// Parent returns the owning ByteInterval, or nil if detached.
func (cb *CodeBlock) Parent() *ByteInterval { return cb.parent }

// Offset returns the block's offset within its ByteInterval.
func (cb *CodeBlock) Offset() uint64 { return cb.offset }

// SetOffset sets the block's offset within its ByteInterval.
func (cb *CodeBlock) SetOffset(off uint64) { cb.offset = off }

// Size returns the block's size in bytes.
func (cb *CodeBlock) Size() uint64 { return cb.size }

// SetSize sets the block's size in bytes.
func (cb *CodeBlock) SetSize(n uint64) { cb.size = n }

// DecodeMode returns the block's decode-mode tag.
func (cb *CodeBlock) DecodeMode() types.DecodeMode { return cb.decodeMode }

// SetDecodeMode sets the block's decode-mode tag.
func (cb *CodeBlock) SetDecodeMode(m types.DecodeMode) { cb.decodeMode = m }

// Retain increments the handle count.
func (cb *CodeBlock) Retain() *CodeBlock { cb.refs++; return cb }

// Release drops one handle, destroying the block once unreferenced and detached.
func (cb *CodeBlock) Release() {
	cb.refs--
	if cb.refs <= 0 && cb.parent == nil {
		cb.destroy()
	}
}

// destroy removes this block from the registry. A CodeBlock is a leaf: it
// owns no children of its own.
func (cb *CodeBlock) destroy() {
	delete(cb.ctx.codeBlocks, cb.id)
	cb.ctx.unclaim(cb.id)
}
