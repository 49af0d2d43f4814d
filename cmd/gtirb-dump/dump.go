package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gtirbgo/gtirb/internal/loader"
	"github.com/gtirbgo/gtirb/pkg/ir"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "dump <file>...",
		Short: "Decode and print the structure of one or more GTIRB files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	})
}

func runDump(paths []string) error {
	failed := false
	for _, path := range paths {
		if err := dumpOne(path); err != nil {
			printError(path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

func dumpOne(path string) error {
	data, cleanup, err := loader.Map(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer cleanup()

	c, err := ir.Decode(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if jsonOut {
		return printJSON(summarize(c))
	}
	printTree(path, c)
	return nil
}

type moduleSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FileFormat string `json:"file_format"`
	ISA        string `json:"isa"`
	ByteOrder  string `json:"byte_order"`
	Sections   int    `json:"sections"`
	Symbols    int    `json:"symbols"`
	Proxies    int    `json:"proxy_blocks"`
}

type topSummary struct {
	ID      string          `json:"id"`
	Version uint32          `json:"version"`
	Modules []moduleSummary `json:"modules"`
}

func summarize(c *ir.Context) topSummary {
	top := c.Top()
	out := topSummary{ID: top.ID().String(), Version: top.Version()}
	it := top.IterModules()
	defer it.Close()
	for {
		m, err := it.Next()
		if err != nil {
			break
		}
		out.Modules = append(out.Modules, moduleSummary{
			ID:         m.ID().String(),
			Name:       m.Name(),
			FileFormat: m.FileFormat().String(),
			ISA:        m.ISA().String(),
			ByteOrder:  m.ByteOrder().String(),
			Sections:   m.SectionCount(),
			Symbols:    m.SymbolCount(),
			Proxies:    m.ProxyBlockCount(),
		})
	}
	return out
}

func printTree(path string, c *ir.Context) {
	top := c.Top()
	printInfo("%s: Top %s (version %d)\n", path, top.ID(), top.Version())

	mit := top.IterModules()
	defer mit.Close()
	for {
		m, err := mit.Next()
		if err != nil {
			break
		}
		printInfo("  Module %s %q %s/%s/%s\n", m.ID(), m.Name(), m.FileFormat(), m.ISA(), m.ByteOrder())

		sit := m.IterSections()
		for {
			s, err := sit.Next()
			if err != nil {
				break
			}
			printInfo("    Section %s %q\n", s.ID(), s.Name())
			bit := s.IterByteIntervals()
			for {
				bi, err := bit.Next()
				if err != nil {
					break
				}
				addr, ok := bi.Address()
				if ok {
					printInfo("      ByteInterval %s @0x%x size=%d\n", bi.ID(), uint64(addr), bi.Size())
				} else {
					printInfo("      ByteInterval %s (unaddressed) size=%d\n", bi.ID(), bi.Size())
				}
				blocks := bi.Blocks()
				for {
					b, err := blocks.Next()
					if err != nil {
						break
					}
					if b.IsCode {
						printInfo("        +0x%x CodeBlock %s size=%d\n", b.Offset, b.Code.ID(), b.Code.Size())
					} else {
						printInfo("        +0x%x DataBlock %s size=%d\n", b.Offset, b.Data.ID(), b.Data.Size())
					}
				}
			}
			bit.Close()
		}
		sit.Close()

		symit := m.IterSymbols()
		for {
			sym, err := symit.Next()
			if err != nil {
				break
			}
			printInfo("    Symbol %s %q\n", sym.ID(), sym.Name())
		}
		symit.Close()

		pit := m.IterProxyBlocks()
		for {
			p, err := pit.Next()
			if err != nil {
				break
			}
			printInfo("    ProxyBlock %s\n", p.ID())
		}
		pit.Close()
	}
}
