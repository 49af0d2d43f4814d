package ir

import (
	"io"

	"github.com/gtirbgo/gtirb/pkg/types"
)

// identified is implemented by every node handle stored in a childList.
type identified interface {
	ID() types.ID
}

// childList is an ordered, borrow-tracked collection of child handles,
// shared by every parent/child pair in the tree (Top-Module,
// Module-Section, Section-ByteInterval, ByteInterval-CodeBlock/DataBlock).
// Module's Symbols and ProxyBlocks sets use the same type: the spec
// distinguishes "ordered list" from "set" only in that sets have no
// re-ordering operations, which childList never offers anyway.
type childList[T identified] struct {
	items   []T
	borrows int
}

// add appends v in insertion order. Callers are responsible for checking
// the DetachedNode precondition first. It reports ErrBorrowConflict if an
// iterator is currently open over this list, matching removeByID.
func (c *childList[T]) add(v T) error {
	if c.borrows > 0 {
		return types.Wrapf(types.ErrKindBorrowConflict, nil,
			"cannot add %s: collection has an open iterator", v.ID())
	}
	c.items = append(c.items, v)
	return nil
}

// removeByID looks up a child by identifier and, if present, removes it
// while preserving the relative order of the remaining children. It
// reports ErrBorrowConflict if an iterator is currently open over this
// list, and ErrNotFound if no child with id is present, keeping the two
// §7 failure kinds distinguishable rather than collapsing them into a
// single boolean.
func (c *childList[T]) removeByID(id types.ID) (T, error) {
	var zero T
	if c.borrows > 0 {
		return zero, types.Wrapf(types.ErrKindBorrowConflict, nil,
			"cannot remove %s: collection has an open iterator", id)
	}
	for i, v := range c.items {
		if v.ID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return v, nil
		}
	}
	return zero, types.Wrapf(types.ErrKindNotFound, nil, "no child with id %s", id)
}

func (c *childList[T]) len() int { return len(c.items) }

// iter returns a restartable, lazy iterator over the current snapshot of
// items in insertion order. While any iterator returned by iter is open
// (Close not yet called), structural modification of this list fails.
func (c *childList[T]) iter() *ChildIter[T] {
	c.borrows++
	items := make([]T, len(c.items))
	copy(items, c.items)
	return &ChildIter[T]{owner: c, items: items, idx: -1}
}

// ChildIter is a lazy, restartable sequence of child handles in insertion
// order. The underlying collection is considered borrowed until Close is
// called; Close must be called exactly once per iterator obtained.
type ChildIter[T identified] struct {
	owner *childList[T]
	items []T
	idx   int
}

// Next advances the iterator and returns io.EOF once exhausted.
func (it *ChildIter[T]) Next() (T, error) {
	var zero T
	if it.owner == nil {
		return zero, io.EOF
	}
	it.idx++
	if it.idx >= len(it.items) {
		return zero, io.EOF
	}
	return it.items[it.idx], nil
}

// Close releases this iterator's borrow on the parent collection. Safe to
// call more than once.
func (it *ChildIter[T]) Close() {
	if it.owner == nil {
		return
	}
	it.owner.borrows--
	it.owner = nil
}
