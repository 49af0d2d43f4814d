package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gtirbgo/gtirb/internal/loader"
	"github.com/gtirbgo/gtirb/pkg/ir"
	"github.com/gtirbgo/gtirb/pkg/types"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "roundtrip <file>...",
		Short: "Decode, re-encode, and decode again, reporting drift in top, module, section and byte-interval fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(args)
		},
	})
}

func runRoundtrip(paths []string) error {
	failed := false
	for _, path := range paths {
		if err := roundtripOne(path); err != nil {
			printError(path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

func roundtripOne(path string) error {
	data, cleanup, err := loader.Map(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer cleanup()

	c1, err := ir.Decode(data)
	if err != nil {
		return fmt.Errorf("initial decode: %w", err)
	}

	encoded, err := ir.Encode(c1.Top())
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	c2, err := ir.Decode(encoded)
	if err != nil {
		return fmt.Errorf("re-decode: %w", err)
	}

	diffs := diffTops(c1.Top(), c2.Top())
	if len(diffs) == 0 {
		printInfo("%s: round-trip ok (%d bytes)\n", path, len(encoded))
		return nil
	}
	for _, d := range diffs {
		printInfo("%s: %s\n", path, d)
	}
	return fmt.Errorf("%d structural difference(s) after round-trip", len(diffs))
}

func diffTops(a, b *ir.Top) []string {
	var out []string
	if a.ID() != b.ID() {
		out = append(out, fmt.Sprintf("top id %s != %s", a.ID(), b.ID()))
	}
	if a.Version() != b.Version() {
		out = append(out, fmt.Sprintf("top version %d != %d", a.Version(), b.Version()))
	}
	if a.ModuleCount() != b.ModuleCount() {
		out = append(out, fmt.Sprintf("module count %d != %d", a.ModuleCount(), b.ModuleCount()))
		return out
	}

	ait, bit := a.IterModules(), b.IterModules()
	defer ait.Close()
	defer bit.Close()
	for {
		am, aerr := ait.Next()
		bm, berr := bit.Next()
		if aerr != nil || berr != nil {
			break
		}
		out = append(out, diffModules(am, bm)...)
	}
	return out
}

func diffModules(a, b *ir.Module) []string {
	var out []string
	prefix := fmt.Sprintf("module %s", a.ID())
	if a.ID() != b.ID() {
		out = append(out, fmt.Sprintf("%s: id != %s", prefix, b.ID()))
	}
	if a.Name() != b.Name() {
		out = append(out, fmt.Sprintf("%s: name %q != %q", prefix, a.Name(), b.Name()))
	}
	if a.BinaryPath() != b.BinaryPath() {
		out = append(out, fmt.Sprintf("%s: binary_path %q != %q", prefix, a.BinaryPath(), b.BinaryPath()))
	}
	if a.PreferredAddr() != b.PreferredAddr() {
		out = append(out, fmt.Sprintf("%s: preferred_addr %s != %s", prefix, a.PreferredAddr(), b.PreferredAddr()))
	}
	if a.RebaseDelta() != b.RebaseDelta() {
		out = append(out, fmt.Sprintf("%s: rebase_delta %d != %d", prefix, a.RebaseDelta(), b.RebaseDelta()))
	}
	if a.FileFormat() != b.FileFormat() {
		out = append(out, fmt.Sprintf("%s: file_format %s != %s", prefix, a.FileFormat(), b.FileFormat()))
	}
	if a.ISA() != b.ISA() {
		out = append(out, fmt.Sprintf("%s: isa %s != %s", prefix, a.ISA(), b.ISA()))
	}
	if a.ByteOrder() != b.ByteOrder() {
		out = append(out, fmt.Sprintf("%s: byte_order %s != %s", prefix, a.ByteOrder(), b.ByteOrder()))
	}
	aep, aok := a.EntryPoint()
	bep, bok := b.EntryPoint()
	if aok != bok || aep != bep {
		out = append(out, fmt.Sprintf("%s: entry_point mismatch", prefix))
	}
	if a.SectionCount() != b.SectionCount() {
		out = append(out, fmt.Sprintf("%s: section count %d != %d", prefix, a.SectionCount(), b.SectionCount()))
		return out
	}

	ait, bit := a.IterSections(), b.IterSections()
	defer ait.Close()
	defer bit.Close()
	for {
		as, aerr := ait.Next()
		bs, berr := bit.Next()
		if aerr != nil || berr != nil {
			break
		}
		out = append(out, diffSections(as, bs)...)
	}
	return out
}

func diffSections(a, b *ir.Section) []string {
	var out []string
	prefix := fmt.Sprintf("section %s", a.ID())
	if a.Name() != b.Name() {
		out = append(out, fmt.Sprintf("%s: name %q != %q", prefix, a.Name(), b.Name()))
	}
	for f := types.SectionFlag(0); f <= types.SectionFlagThreadLocal; f++ {
		if a.HasFlag(f) != b.HasFlag(f) {
			out = append(out, fmt.Sprintf("%s: flag %s mismatch", prefix, f))
		}
	}
	if a.ByteIntervalCount() != b.ByteIntervalCount() {
		out = append(out, fmt.Sprintf("%s: byte interval count %d != %d", prefix, a.ByteIntervalCount(), b.ByteIntervalCount()))
		return out
	}

	ait, bit := a.IterByteIntervals(), b.IterByteIntervals()
	defer ait.Close()
	defer bit.Close()
	for {
		abi, aerr := ait.Next()
		bbi, berr := bit.Next()
		if aerr != nil || berr != nil {
			break
		}
		out = append(out, diffByteIntervals(abi, bbi)...)
	}
	return out
}

func diffByteIntervals(a, b *ir.ByteInterval) []string {
	var out []string
	prefix := fmt.Sprintf("byte interval %s", a.ID())
	if a.Size() != b.Size() {
		out = append(out, fmt.Sprintf("%s: size %d != %d", prefix, a.Size(), b.Size()))
	}
	aaddr, aok := a.Address()
	baddr, bok := b.Address()
	if aok != bok || aaddr != baddr {
		out = append(out, fmt.Sprintf("%s: address mismatch", prefix))
	}
	if !bytes.Equal(a.Contents(), b.Contents()) {
		out = append(out, fmt.Sprintf("%s: contents mismatch", prefix))
	}
	if a.CodeBlockCount() != b.CodeBlockCount() || a.DataBlockCount() != b.DataBlockCount() {
		out = append(out, fmt.Sprintf("%s: block counts differ", prefix))
	}
	return out
}
