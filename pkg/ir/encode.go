package ir

import (
	"github.com/gtirbgo/gtirb/internal/wire"
	"github.com/gtirbgo/gtirb/pkg/types"
)

// Encode serializes t and everything it owns into a GTIRB-Go wire message,
// the pre-order dual of Decode: each parent emits its own scalar fields
// before recursing into its child collections in their defined order.
func Encode(t *Top) ([]byte, error) {
	w := wire.NewWriter()
	encodeTop(w, t)
	return w.Bytes(), nil
}

func encodeTop(w *wire.Writer, t *Top) {
	w.PutID(t.id)
	w.PutUint32(t.version)

	it := t.IterModules()
	defer it.Close()
	var modules []*Module
	for {
		m, err := it.Next()
		if err != nil {
			break
		}
		modules = append(modules, m)
	}
	w.PutCount(len(modules))
	for _, m := range modules {
		encodeModule(w, m)
	}

	encodeAuxData(w, t.auxData)
}

func encodeModule(w *wire.Writer, m *Module) {
	w.PutID(m.id)
	w.PutString(m.name)
	w.PutString(m.binaryPath)
	w.PutAddress(uint64(m.preferredAddr))
	w.PutInt64(m.rebaseDelta)
	w.PutUint32(uint32(m.fileFormat))
	w.PutUint32(uint32(m.isa))
	w.PutUint32(uint32(m.byteOrder))
	w.PutID(m.entryPoint)

	symIt := m.IterSymbols()
	var syms []*Symbol
	for {
		s, err := symIt.Next()
		if err != nil {
			break
		}
		syms = append(syms, s)
	}
	symIt.Close()
	w.PutCount(len(syms))
	for _, s := range syms {
		encodeSymbol(w, s)
	}

	proxIt := m.IterProxyBlocks()
	var proxies []*ProxyBlock
	for {
		p, err := proxIt.Next()
		if err != nil {
			break
		}
		proxies = append(proxies, p)
	}
	proxIt.Close()
	w.PutCount(len(proxies))
	for _, p := range proxies {
		w.PutID(p.id)
	}

	secIt := m.IterSections()
	var sections []*Section
	for {
		s, err := secIt.Next()
		if err != nil {
			break
		}
		sections = append(sections, s)
	}
	secIt.Close()
	w.PutCount(len(sections))
	for _, s := range sections {
		encodeSection(w, s)
	}

	encodeAuxData(w, m.auxData)
}

func encodeSection(w *wire.Writer, s *Section) {
	w.PutID(s.id)
	w.PutString(s.name)

	biIt := s.IterByteIntervals()
	var intervals []*ByteInterval
	for {
		bi, err := biIt.Next()
		if err != nil {
			break
		}
		intervals = append(intervals, bi)
	}
	biIt.Close()
	w.PutCount(len(intervals))
	for _, bi := range intervals {
		encodeByteInterval(w, bi)
	}

	var flags []uint32
	for f := uint32(0); f <= uint32(types.SectionFlagThreadLocal); f++ {
		if s.HasFlag(types.SectionFlag(f)) {
			flags = append(flags, f)
		}
	}
	w.PutCount(len(flags))
	for _, f := range flags {
		w.PutUint32(f)
	}
}

func encodeByteInterval(w *wire.Writer, bi *ByteInterval) {
	w.PutID(bi.id)

	// Blocks are written as all code blocks (in their list order) followed
	// by all data blocks (in their list order), not merged by offset: on
	// decode each record is appended to the child list of its own type in
	// wire order, so each list's order is reproduced. ByteInterval.Blocks'
	// offset-sorted merge is a read-only query view (§9), not the wire order.
	cit := bi.IterCodeBlocks()
	var codeBlocks []*CodeBlock
	for {
		cb, err := cit.Next()
		if err != nil {
			break
		}
		codeBlocks = append(codeBlocks, cb)
	}
	cit.Close()

	dit := bi.IterDataBlocks()
	var dataBlocks []*DataBlock
	for {
		db, err := dit.Next()
		if err != nil {
			break
		}
		dataBlocks = append(dataBlocks, db)
	}
	dit.Close()

	w.PutCount(len(codeBlocks) + len(dataBlocks))
	for _, cb := range codeBlocks {
		w.PutUint64(cb.offset)
		w.PutUint8(0)
		w.PutID(cb.id)
		w.PutUint64(cb.size)
		w.PutUint32(uint32(cb.decodeMode))
	}
	for _, db := range dataBlocks {
		w.PutUint64(db.offset)
		w.PutUint8(1)
		w.PutID(db.id)
		w.PutUint64(db.size)
	}

	w.PutBool(bi.hasAddress)
	w.PutAddress(uint64(bi.address))
	w.PutUint64(bi.size)
	w.PutBytes(bi.contents)

	w.PutCount(len(bi.symExprs))
	for offset, expr := range bi.symExprs {
		w.PutUint64(offset)
		encodeSymbolicExpression(w, expr)
	}
}

func encodeSymbolicExpression(w *wire.Writer, e SymbolicExpression) {
	switch e.Kind {
	case SymAddrAddr:
		w.PutUint8(0)
		w.PutInt64(e.Scale)
		w.PutInt64(e.Offset)
		w.PutID(e.Sym1)
		w.PutID(e.Sym2)
	case SymAddrConst:
		w.PutUint8(1)
		w.PutInt64(e.Offset)
		w.PutID(e.Sym1)
	case SymStackConst:
		w.PutUint8(2)
		w.PutInt64(e.Offset)
		w.PutID(e.Sym1)
	}
}

func encodeSymbol(w *wire.Writer, s *Symbol) {
	w.PutID(s.id)
	w.PutString(s.name)
	switch s.payloadKind {
	case symbolPayloadNone:
		w.PutUint8(0)
	case symbolPayloadValue:
		w.PutUint8(1)
		w.PutAddress(uint64(s.value))
	case symbolPayloadReferent:
		w.PutUint8(2)
		w.PutID(s.referent)
	}
}

func encodeAuxData(w *wire.Writer, aux map[string][]byte) {
	w.PutCount(len(aux))
	for k, v := range aux {
		w.PutString(k)
		w.PutBytes(v)
	}
}
