package ir

import (
	"io"

	"github.com/gtirbgo/gtirb/pkg/types"
)

// ByteInterval is a contiguous run of bytes within a Section, optionally
// anchored at an absolute address (§3).
type ByteInterval struct {
	id     types.ID
	ctx    *Context
	parent *Section
	refs   int

	size       uint64
	hasAddress bool
	address    types.Address
	contents   []byte // len(contents) <= size; trailing bytes are implicit zero

	codeBlocks childList[*CodeBlock]
	dataBlocks childList[*DataBlock]
	symExprs   map[uint64]SymbolicExpression
}

// NewByteInterval creates a fresh, detached ByteInterval registered in c.
func NewByteInterval(c *Context) (*ByteInterval, error) {
	id := types.NewID()
	if err := c.claim(id, kindByteInterval); err != nil {
		return nil, err
	}
	bi := &ByteInterval{id: id, ctx: c, refs: 1, symExprs: make(map[uint64]SymbolicExpression)}
	c.byteIntervals[id] = bi
	return bi, nil
}

func newByteIntervalFromWire(c *Context, id types.ID) (*ByteInterval, error) {
	if err := c.claim(id, kindByteInterval); err != nil {
		return nil, err
	}
	bi := &ByteInterval{id: id, ctx: c, refs: 1, symExprs: make(map[uint64]SymbolicExpression)}
	c.byteIntervals[id] = bi
	return bi, nil
}

// ID returns the ByteInterval's stable identifier.
func (bi *ByteInterval) ID() types.ID { return bi.id }

// Context returns the owning Context.
func (bi *ByteInterval) Context() *Context { return bi.ctx }

// Parent returns the owning Section, or nil if detached.
func (bi *ByteInterval) Parent() *Section { return bi.parent }

// Size returns the total declared size in bytes.
func (bi *ByteInterval) Size() uint64 { return bi.size }

// SetSize sets the total declared size. If it would make the size smaller
// than the current initialized-contents length, the contents are
// truncated to match (preserving the invariant len(contents) <= size).
func (bi *ByteInterval) SetSize(n uint64) {
	bi.size = n
	if uint64(len(bi.contents)) > n {
		bi.contents = bi.contents[:n]
	}
}

// Address returns the interval's absolute address, and whether one is set.
func (bi *ByteInterval) Address() (types.Address, bool) {
	if !bi.hasAddress {
		return 0, false
	}
	return bi.address, true
}

// SetAddress sets the interval's absolute address.
func (bi *ByteInterval) SetAddress(a types.Address) {
	bi.address = a
	bi.hasAddress = true
}

// ClearAddress unsets the interval's absolute address.
func (bi *ByteInterval) ClearAddress() {
	bi.hasAddress = false
	bi.address = 0
}

// Contents returns a borrowed view of the initialized bytes. Callers must
// not retain it past the next mutating call on this ByteInterval.
func (bi *ByteInterval) Contents() []byte { return bi.contents }

// SetContents bulk-replaces the initialized bytes. If the new contents are
// longer than the current size, size is raised to match (§4.6).
func (bi *ByteInterval) SetContents(data []byte) {
	bi.contents = append([]byte(nil), data...)
	if uint64(len(bi.contents)) > bi.size {
		bi.size = uint64(len(bi.contents))
	}
}

// SetInitializedSize truncates or zero-extends the initialized-contents
// buffer to exactly n bytes, raising the declared size to n if it was
// smaller (§4.6, §8 property 6).
func (bi *ByteInterval) SetInitializedSize(n uint64) {
	switch {
	case uint64(len(bi.contents)) == n:
		// no-op
	case uint64(len(bi.contents)) > n:
		bi.contents = bi.contents[:n]
	default:
		grown := make([]byte, n)
		copy(grown, bi.contents)
		bi.contents = grown
	}
	if bi.size < n {
		bi.size = n
	}
}

// Retain increments the handle count.
func (bi *ByteInterval) Retain() *ByteInterval { bi.refs++; return bi }

// Release drops one handle. If the count reaches zero and the interval is
// detached, it and every CodeBlock/DataBlock it owns are destroyed and
// forgotten (§3: "the node and its subtree are destroyed").
func (bi *ByteInterval) Release() {
	bi.refs--
	if bi.refs <= 0 && bi.parent == nil {
		bi.destroy()
	}
}

func (bi *ByteInterval) destroy() {
	for _, cb := range bi.codeBlocks.items {
		cb.destroy()
	}
	for _, db := range bi.dataBlocks.items {
		db.destroy()
	}
	delete(bi.ctx.byteIntervals, bi.id)
	bi.ctx.unclaim(bi.id)
}

// AddCodeBlock appends cb to this interval's code-block list.
func (bi *ByteInterval) AddCodeBlock(cb *CodeBlock) error {
	if cb.parent != nil {
		return types.Wrapf(types.ErrKindDetachedNode, nil, "code block %s is already attached", cb.id)
	}
	if err := bi.codeBlocks.add(cb); err != nil {
		return err
	}
	cb.parent = bi
	return nil
}

// RemoveCodeBlock detaches the code block identified by id.
func (bi *ByteInterval) RemoveCodeBlock(id types.ID) (*CodeBlock, error) {
	cb, err := bi.codeBlocks.removeByID(id)
	if err != nil {
		return nil, err
	}
	cb.parent = nil
	return cb, nil
}

// IterCodeBlocks returns a restartable iterator over this interval's code blocks.
func (bi *ByteInterval) IterCodeBlocks() *ChildIter[*CodeBlock] { return bi.codeBlocks.iter() }

// CodeBlockCount returns the number of code blocks in this interval.
func (bi *ByteInterval) CodeBlockCount() int { return bi.codeBlocks.len() }

// AddDataBlock appends db to this interval's data-block list.
func (bi *ByteInterval) AddDataBlock(db *DataBlock) error {
	if db.parent != nil {
		return types.Wrapf(types.ErrKindDetachedNode, nil, "data block %s is already attached", db.id)
	}
	if err := bi.dataBlocks.add(db); err != nil {
		return err
	}
	db.parent = bi
	return nil
}

// RemoveDataBlock detaches the data block identified by id.
func (bi *ByteInterval) RemoveDataBlock(id types.ID) (*DataBlock, error) {
	db, err := bi.dataBlocks.removeByID(id)
	if err != nil {
		return nil, err
	}
	db.parent = nil
	return db, nil
}

// IterDataBlocks returns a restartable iterator over this interval's data blocks.
func (bi *ByteInterval) IterDataBlocks() *ChildIter[*DataBlock] { return bi.dataBlocks.iter() }

// DataBlockCount returns the number of data blocks in this interval.
func (bi *ByteInterval) DataBlockCount() int { return bi.dataBlocks.len() }

// SetSymbolicExpression associates expr with the given byte offset. Fails
// with InvalidSizes if offset >= the interval's declared size (§3).
func (bi *ByteInterval) SetSymbolicExpression(offset uint64, expr SymbolicExpression) error {
	if offset >= bi.size {
		return types.Wrapf(types.ErrKindInvalidSizes, nil,
			"symbolic expression offset %d >= interval size %d", offset, bi.size)
	}
	bi.symExprs[offset] = expr
	return nil
}

// SymbolicExpression returns the expression at offset, if any.
func (bi *ByteInterval) SymbolicExpression(offset uint64) (SymbolicExpression, bool) {
	e, ok := bi.symExprs[offset]
	return e, ok
}

// RemoveSymbolicExpression removes any expression at offset.
func (bi *ByteInterval) RemoveSymbolicExpression(offset uint64) {
	delete(bi.symExprs, offset)
}

// SymbolicExpressions returns the full offset -> expression map. Callers
// must not mutate the returned map directly; use SetSymbolicExpression /
// RemoveSymbolicExpression instead.
func (bi *ByteInterval) SymbolicExpressions() map[uint64]SymbolicExpression { return bi.symExprs }

// Block is the merged view element returned by Blocks: either a CodeBlock
// or a DataBlock, tagged by IsCode.
type Block struct {
	Offset uint64
	IsCode bool
	Code   *CodeBlock
	Data   *DataBlock
}

// BlockIter is a read-only, offset-ordered merge of a ByteInterval's code
// and data blocks (§9 "Heterogeneous children"). It does not itself hold a
// borrow on either backing list; it snapshots both at creation time via
// their own iterators.
type BlockIter struct {
	items []Block
	idx   int
}

// Next advances the merged iterator, returning io.EOF once exhausted.
func (it *BlockIter) Next() (Block, error) {
	it.idx++
	if it.idx >= len(it.items) {
		return Block{}, io.EOF
	}
	return it.items[it.idx], nil
}

// Blocks returns a merged, offset-ordered view over this interval's code
// and data blocks without re-sorting either backing list in place.
func (bi *ByteInterval) Blocks() *BlockIter {
	var items []Block

	cit := bi.IterCodeBlocks()
	for {
		cb, err := cit.Next()
		if err != nil {
			break
		}
		items = append(items, Block{Offset: cb.Offset(), IsCode: true, Code: cb})
	}
	cit.Close()

	dit := bi.IterDataBlocks()
	for {
		db, err := dit.Next()
		if err != nil {
			break
		}
		items = append(items, Block{Offset: db.Offset(), IsCode: false, Data: db})
	}
	dit.Close()

	// stable sort by offset; code/data blocks at the same offset keep
	// insertion order (code before data, matching the merge order above).
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].Offset < items[j-1].Offset; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}

	return &BlockIter{items: items, idx: -1}
}
