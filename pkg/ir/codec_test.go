package ir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtirbgo/gtirb/pkg/ir"
	"github.com/gtirbgo/gtirb/pkg/types"
)

func buildSampleTop(t *testing.T) *ir.Top {
	t.Helper()
	c := ir.NewContext()
	top, err := ir.NewTop(c)
	require.NoError(t, err)
	top.SetVersion(3)
	top.AuxData()["schema"] = []byte("gtirb-go")

	m, err := ir.NewModule(c, "sample.exe")
	require.NoError(t, err)
	m.SetBinaryPath("/bin/sample.exe")
	m.SetPreferredAddr(0x400000)
	m.SetRebaseDelta(0x1000)
	m.SetFileFormat(types.FileFormatPE)
	m.SetISA(types.ISAX64)
	m.SetByteOrder(types.ByteOrderLittle)
	require.NoError(t, top.AddModule(m))

	sec, err := ir.NewSection(c, ".text")
	require.NoError(t, err)
	sec.AddFlags(types.SectionFlagReadable, types.SectionFlagExecutable)
	require.NoError(t, m.AddSection(sec))

	bi, err := ir.NewByteInterval(c)
	require.NoError(t, err)
	bi.SetAddress(0x401000)
	bi.SetContents([]byte{0x90, 0x90, 0xc3, 0x00, 0x00, 0x00, 0x00, 0x00})
	require.NoError(t, sec.AddByteInterval(bi))

	cb, err := ir.NewCodeBlock(c, 0, 3)
	require.NoError(t, err)
	require.NoError(t, bi.AddCodeBlock(cb))
	m.SetEntryPoint(cb.ID())

	db, err := ir.NewDataBlock(c, 3, 5)
	require.NoError(t, err)
	require.NoError(t, bi.AddDataBlock(db))

	entrySym, err := ir.NewSymbol(c, "entry")
	require.NoError(t, err)
	entrySym.SetReferent(cb.ID())
	require.NoError(t, m.AddSymbol(entrySym))

	constSym, err := ir.NewSymbol(c, "base")
	require.NoError(t, err)
	constSym.SetValue(0x500000)
	require.NoError(t, m.AddSymbol(constSym))

	require.NoError(t, bi.SetSymbolicExpression(0, ir.SymbolicExpression{
		Kind: ir.SymAddrConst, Offset: 4, Sym1: entrySym.ID(),
	}))

	px, err := ir.NewProxyBlock(c)
	require.NoError(t, err)
	require.NoError(t, m.AddProxyBlock(px))

	m.AuxData()["comment"] = []byte("generated for tests")

	return top
}

func TestEncodeDecode_RoundTripsStructure(t *testing.T) {
	top := buildSampleTop(t)

	data, err := ir.Encode(top)
	require.NoError(t, err)

	c2, err := ir.Decode(data)
	require.NoError(t, err)
	top2 := c2.Top()
	require.NotNil(t, top2)

	require.Equal(t, top.ID(), top2.ID())
	require.Equal(t, top.Version(), top2.Version())
	require.Equal(t, top.AuxData(), top2.AuxData())
	require.Equal(t, top.ModuleCount(), top2.ModuleCount())

	mit := top.IterModules()
	defer mit.Close()
	m1, err := mit.Next()
	require.NoError(t, err)

	m2, ok := c2.FindModule(m1.ID())
	require.True(t, ok)

	require.Equal(t, m1.Name(), m2.Name())
	require.Equal(t, m1.BinaryPath(), m2.BinaryPath())
	require.Equal(t, m1.PreferredAddr(), m2.PreferredAddr())
	require.Equal(t, m1.RebaseDelta(), m2.RebaseDelta())
	require.Equal(t, m1.FileFormat(), m2.FileFormat())
	require.Equal(t, m1.ISA(), m2.ISA())
	require.Equal(t, m1.ByteOrder(), m2.ByteOrder())
	require.Equal(t, m1.AuxData(), m2.AuxData())
	require.Equal(t, m1.SectionCount(), m2.SectionCount())
	require.Equal(t, m1.SymbolCount(), m2.SymbolCount())
	require.Equal(t, m1.ProxyBlockCount(), m2.ProxyBlockCount())

	entry1, ok := m1.EntryPoint()
	require.True(t, ok)
	entry2, ok := m2.EntryPoint()
	require.True(t, ok)
	require.Equal(t, entry1, entry2)

	sit := m1.IterSections()
	defer sit.Close()
	s1, err := sit.Next()
	require.NoError(t, err)

	s2, ok := c2.FindSection(s1.ID())
	require.True(t, ok)
	require.Equal(t, s1.Name(), s2.Name())
	require.True(t, s2.HasFlag(types.SectionFlagReadable))
	require.True(t, s2.HasFlag(types.SectionFlagExecutable))
	require.False(t, s2.HasFlag(types.SectionFlagWritable))

	biit := s1.IterByteIntervals()
	defer biit.Close()
	bi1, err := biit.Next()
	require.NoError(t, err)

	bi2, ok := c2.FindByteInterval(bi1.ID())
	require.True(t, ok)
	addr1, _ := bi1.Address()
	addr2, _ := bi2.Address()
	require.Equal(t, addr1, addr2)
	require.Equal(t, bi1.Size(), bi2.Size())
	require.Equal(t, bi1.Contents(), bi2.Contents())
	require.Equal(t, bi1.CodeBlockCount(), bi2.CodeBlockCount())
	require.Equal(t, bi1.DataBlockCount(), bi2.DataBlockCount())

	expr1, ok := bi1.SymbolicExpression(0)
	require.True(t, ok)
	expr2, ok := bi2.SymbolicExpression(0)
	require.True(t, ok)
	require.Equal(t, expr1, expr2)
}

func TestEncodeDecode_PreservesCodeAndDataBlockOrderSeparately(t *testing.T) {
	c := ir.NewContext()
	top, err := ir.NewTop(c)
	require.NoError(t, err)
	m, err := ir.NewModule(c, "m")
	require.NoError(t, err)
	require.NoError(t, top.AddModule(m))
	sec, err := ir.NewSection(c, ".text")
	require.NoError(t, err)
	require.NoError(t, m.AddSection(sec))
	bi, err := ir.NewByteInterval(c)
	require.NoError(t, err)
	bi.SetSize(0x100)
	require.NoError(t, sec.AddByteInterval(bi))

	var codeIDs, dataIDs []types.ID
	for i := 0; i < 3; i++ {
		cb, err := ir.NewCodeBlock(c, uint64(i*4), 4)
		require.NoError(t, err)
		require.NoError(t, bi.AddCodeBlock(cb))
		codeIDs = append(codeIDs, cb.ID())

		db, err := ir.NewDataBlock(c, uint64(i*4), 4)
		require.NoError(t, err)
		require.NoError(t, bi.AddDataBlock(db))
		dataIDs = append(dataIDs, db.ID())
	}

	data, err := ir.Encode(top)
	require.NoError(t, err)
	c2, err := ir.Decode(data)
	require.NoError(t, err)

	bi2, ok := c2.FindByteInterval(bi.ID())
	require.True(t, ok)

	it := bi2.IterCodeBlocks()
	var gotCode []types.ID
	for {
		cb, err := it.Next()
		if err != nil {
			break
		}
		gotCode = append(gotCode, cb.ID())
	}
	it.Close()
	require.Equal(t, codeIDs, gotCode)

	dit := bi2.IterDataBlocks()
	var gotData []types.ID
	for {
		db, err := dit.Next()
		if err != nil {
			break
		}
		gotData = append(gotData, db.ID())
	}
	dit.Close()
	require.Equal(t, dataIDs, gotData)
}

func TestDecode_TruncatedInputIsTruncatedError(t *testing.T) {
	top := buildSampleTop(t)
	data, err := ir.Encode(top)
	require.NoError(t, err)

	_, err = ir.Decode(data[:len(data)/2])
	require.Error(t, err)
	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, types.ErrKindTruncated, typed.Kind)
}
