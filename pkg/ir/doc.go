// Package ir implements the GTIRB node graph: the typed parent/child tree of
// Top, Module, Section, ByteInterval, CodeBlock, DataBlock, ProxyBlock, and
// Symbol entities, plus the Context that indexes them by stable identifier.
//
// Design goals:
//   - Typed containment: a child always knows its concrete parent type, and
//     a Context.FindXxx never returns a node of the wrong kind.
//   - Explicit handle lifetime: nodes are reference-counted (Retain/Release)
//     rather than relying on garbage collection timing, so "last handle to a
//     detached node is dropped" is an observable, testable event.
//   - Single-threaded: no internal locking. Structural mutation while an
//     iterator is live on the same collection fails with a BorrowConflict
//     error instead of corrupting state.
//
// This package has no dependency beyond pkg/types, internal/wire and the
// standard library.
package ir
