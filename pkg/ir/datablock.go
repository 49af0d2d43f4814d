package ir

import (
	"github.com/gtirbgo/gtirb/pkg/types"
)

// DataBlock is a labeled span of bytes within a ByteInterval, treated as
// data (§3).
type DataBlock struct {
	id     types.ID
	ctx    *Context
	parent *ByteInterval
	refs   int

	offset uint64
	size   uint64
}

// NewDataBlock creates a fresh, detached DataBlock registered in c.
func NewDataBlock(c *Context, offset, size uint64) (*DataBlock, error) {
	id := types.NewID()
	if err := c.claim(id, kindDataBlock); err != nil {
		return nil, err
	}
	db := &DataBlock{id: id, ctx: c, refs: 1, offset: offset, size: size}
	c.dataBlocks[id] = db
	return db, nil
}

func newDataBlockFromWire(c *Context, id types.ID) (*DataBlock, error) {
	if err := c.claim(id, kindDataBlock); err != nil {
		return nil, err
	}
	db := &DataBlock{id: id, ctx: c, refs: 1}
	c.dataBlocks[id] = db
	return db, nil
}

// ID returns the DataBlock's stable identifier.
func (db *DataBlock) ID() types.ID { return db.id }

// Context returns the owning Context.
func (db *DataBlock) Context() *Context { return db.ctx }

// Parent returns the owning ByteInterval, or nil if detached.
func (db *DataBlock) Parent() *ByteInterval { return db.parent }

// Offset returns the block's offset within its ByteInterval.
func (db *DataBlock) Offset() uint64 { return db.offset }

// SetOffset sets the block's offset within its ByteInterval.
func (db *DataBlock) SetOffset(off uint64) { db.offset = off }

// Size returns the block's size in bytes.
func (db *DataBlock) Size() uint64 { return db.size }

// SetSize sets the block's size in bytes.
func (db *DataBlock) SetSize(n uint64) { db.size = n }

// Retain increments the handle count.
func (db *DataBlock) Retain() *DataBlock { db.refs++; return db }

// Release drops one handle, destroying the block once unreferenced and detached.
func (db *DataBlock) Release() {
	db.refs--
	if db.refs <= 0 && db.parent == nil {
		db.destroy()
	}
}

// destroy removes this block from the registry. A DataBlock is a leaf: it
// owns no children of its own.
func (db *DataBlock) destroy() {
	delete(db.ctx.dataBlocks, db.id)
	db.ctx.unclaim(db.id)
}
