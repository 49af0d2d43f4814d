package ir

import (
	"github.com/gtirbgo/gtirb/internal/wire"
	"github.com/gtirbgo/gtirb/pkg/types"
)

// Decode parses a single GTIRB-Go wire message into a fresh Context,
// following the post-order algorithm of §4.7: the Top record is parsed
// first, then each Module recursively, then its Sections, ByteIntervals,
// and Blocks, attaching each child as soon as it is constructed. Symbol
// referents are not resolved against the registry at decode time; dangling
// references are preserved losslessly and only surface via Context.Verify
// or Symbol.Resolve.
func Decode(data []byte) (*Context, error) {
	r := wire.NewReader(data)
	c := NewContext()
	if _, err := decodeTop(r, c); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeTop(r *wire.Reader, c *Context) (*Top, error) {
	id, err := r.ID()
	if err != nil {
		return nil, err
	}
	version, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	t, err := newTopFromWire(c, id, version)
	if err != nil {
		return nil, err
	}

	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < n; i++ {
		m, err := decodeModule(r, c)
		if err != nil {
			return nil, err
		}
		if err := t.AddModule(m); err != nil {
			return nil, err
		}
	}

	aux, err := decodeAuxData(r)
	if err != nil {
		return nil, err
	}
	t.auxData = aux
	return t, nil
}

func decodeModule(r *wire.Reader, c *Context) (*Module, error) {
	id, err := r.ID()
	if err != nil {
		return nil, err
	}
	m, err := newModuleFromWire(c, id)
	if err != nil {
		return nil, err
	}

	if m.name, err = r.String(); err != nil {
		return nil, err
	}
	if m.binaryPath, err = r.String(); err != nil {
		return nil, err
	}
	if m.preferredAddr, err = r.Address(); err != nil {
		return nil, err
	}
	if m.rebaseDelta, err = r.Int64(); err != nil {
		return nil, err
	}

	ff, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if !types.ValidFileFormat(types.FileFormat(ff)) {
		return nil, types.Wrapf(types.ErrKindUnknownEnum, nil, "unrecognized file_format tag %d", ff)
	}
	m.fileFormat = types.FileFormat(ff)

	isa, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if !types.ValidISA(types.ISA(isa)) {
		return nil, types.Wrapf(types.ErrKindUnknownEnum, nil, "unrecognized isa tag %d", isa)
	}
	m.isa = types.ISA(isa)

	bo, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if !types.ValidByteOrder(types.ByteOrder(bo)) {
		return nil, types.Wrapf(types.ErrKindUnknownEnum, nil, "unrecognized byte_order tag %d", bo)
	}
	m.byteOrder = types.ByteOrder(bo)

	if m.entryPoint, err = r.ID(); err != nil {
		return nil, err
	}

	nsym, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < nsym; i++ {
		sym, err := decodeSymbol(r, c)
		if err != nil {
			return nil, err
		}
		if err := m.AddSymbol(sym); err != nil {
			return nil, err
		}
	}

	nprox, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < nprox; i++ {
		p, err := decodeProxyBlock(r, c)
		if err != nil {
			return nil, err
		}
		if err := m.AddProxyBlock(p); err != nil {
			return nil, err
		}
	}

	nsec, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < nsec; i++ {
		s, err := decodeSection(r, c)
		if err != nil {
			return nil, err
		}
		if err := m.AddSection(s); err != nil {
			return nil, err
		}
	}

	aux, err := decodeAuxData(r)
	if err != nil {
		return nil, err
	}
	m.auxData = aux
	return m, nil
}

func decodeSection(r *wire.Reader, c *Context) (*Section, error) {
	id, err := r.ID()
	if err != nil {
		return nil, err
	}
	s, err := newSectionFromWire(c, id)
	if err != nil {
		return nil, err
	}
	if s.name, err = r.String(); err != nil {
		return nil, err
	}

	nbi, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < nbi; i++ {
		bi, err := decodeByteInterval(r, c)
		if err != nil {
			return nil, err
		}
		if err := s.AddByteInterval(bi); err != nil {
			return nil, err
		}
	}

	nflags, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < nflags; i++ {
		tag, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		if !types.ValidSectionFlag(types.SectionFlag(tag)) {
			return nil, types.Wrapf(types.ErrKindUnknownEnum, nil, "unrecognized section_flag tag %d", tag)
		}
		s.AddFlags(types.SectionFlag(tag))
	}
	return s, nil
}

func decodeByteInterval(r *wire.Reader, c *Context) (*ByteInterval, error) {
	id, err := r.ID()
	if err != nil {
		return nil, err
	}
	bi, err := newByteIntervalFromWire(c, id)
	if err != nil {
		return nil, err
	}

	nblocks, err := r.Count()
	if err != nil {
		return nil, err
	}
	type pendingBlock struct {
		code *CodeBlock
		data *DataBlock
	}
	pending := make([]pendingBlock, 0, nblocks)
	for i := uint32(0); i < nblocks; i++ {
		offset, err := r.Uint64()
		if err != nil {
			return nil, err
		}
		tag, err := r.Uint8()
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			bid, err := r.ID()
			if err != nil {
				return nil, err
			}
			size, err := r.Uint64()
			if err != nil {
				return nil, err
			}
			mode, err := r.Uint32()
			if err != nil {
				return nil, err
			}
			cb, err := newCodeBlockFromWire(c, bid)
			if err != nil {
				return nil, err
			}
			cb.offset, cb.size, cb.decodeMode = offset, size, types.DecodeMode(mode)
			pending = append(pending, pendingBlock{code: cb})
		case 1:
			bid, err := r.ID()
			if err != nil {
				return nil, err
			}
			size, err := r.Uint64()
			if err != nil {
				return nil, err
			}
			db, err := newDataBlockFromWire(c, bid)
			if err != nil {
				return nil, err
			}
			db.offset, db.size = offset, size
			pending = append(pending, pendingBlock{data: db})
		default:
			return nil, types.Wrapf(types.ErrKindInvalidBlockRecord, nil,
				"block record at offset %d has neither a code nor a data body", offset)
		}
	}

	if bi.hasAddress, err = r.Bool(); err != nil {
		return nil, err
	}
	if bi.address, err = r.Address(); err != nil {
		return nil, err
	}
	size, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	bi.size = size

	contents, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	if uint64(len(contents)) > bi.size {
		return nil, types.Wrapf(types.ErrKindInvalidSizes, nil,
			"initialized contents length %d exceeds declared size %d", len(contents), bi.size)
	}
	bi.contents = contents

	for _, p := range pending {
		if p.code != nil {
			if err := bi.AddCodeBlock(p.code); err != nil {
				return nil, err
			}
		} else {
			if err := bi.AddDataBlock(p.data); err != nil {
				return nil, err
			}
		}
	}

	nexpr, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < nexpr; i++ {
		offset, err := r.Uint64()
		if err != nil {
			return nil, err
		}
		expr, err := decodeSymbolicExpression(r)
		if err != nil {
			return nil, err
		}
		if offset >= bi.size {
			return nil, types.Wrapf(types.ErrKindInvalidSizes, nil,
				"symbolic expression offset %d >= interval size %d", offset, bi.size)
		}
		bi.symExprs[offset] = expr
	}

	return bi, nil
}

func decodeSymbolicExpression(r *wire.Reader) (SymbolicExpression, error) {
	var e SymbolicExpression
	tag, err := r.Uint8()
	if err != nil {
		return e, err
	}
	switch tag {
	case 0:
		e.Kind = SymAddrAddr
		if e.Scale, err = r.Int64(); err != nil {
			return e, err
		}
		if e.Offset, err = r.Int64(); err != nil {
			return e, err
		}
		if e.Sym1, err = r.ID(); err != nil {
			return e, err
		}
		if e.Sym2, err = r.ID(); err != nil {
			return e, err
		}
	case 1:
		e.Kind = SymAddrConst
		if e.Offset, err = r.Int64(); err != nil {
			return e, err
		}
		if e.Sym1, err = r.ID(); err != nil {
			return e, err
		}
	case 2:
		e.Kind = SymStackConst
		if e.Offset, err = r.Int64(); err != nil {
			return e, err
		}
		if e.Sym1, err = r.ID(); err != nil {
			return e, err
		}
	default:
		return e, types.Wrapf(types.ErrKindUnknownEnum, nil, "unrecognized symbolic expression tag %d", tag)
	}
	return e, nil
}

func decodeSymbol(r *wire.Reader, c *Context) (*Symbol, error) {
	id, err := r.ID()
	if err != nil {
		return nil, err
	}
	s, err := newSymbolFromWire(c, id)
	if err != nil {
		return nil, err
	}
	if s.name, err = r.String(); err != nil {
		return nil, err
	}
	tag, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		// no payload
	case 1:
		v, err := r.Address()
		if err != nil {
			return nil, err
		}
		s.payloadKind, s.value = symbolPayloadValue, v
	case 2:
		ref, err := r.ID()
		if err != nil {
			return nil, err
		}
		s.payloadKind, s.referent = symbolPayloadReferent, ref
	default:
		return nil, types.Wrapf(types.ErrKindUnknownEnum, nil, "unrecognized symbol payload tag %d", tag)
	}
	return s, nil
}

func decodeProxyBlock(r *wire.Reader, c *Context) (*ProxyBlock, error) {
	id, err := r.ID()
	if err != nil {
		return nil, err
	}
	return newProxyBlockFromWire(c, id)
}

func decodeAuxData(r *wire.Reader) (map[string][]byte, error) {
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, n)
	for i := uint32(0); i < n; i++ {
		key, err := r.String()
		if err != nil {
			return nil, err
		}
		val, err := r.Bytes()
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}
