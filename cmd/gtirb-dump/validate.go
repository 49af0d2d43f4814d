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
		Use:   "validate <file>...",
		Short: "Decode and report dangling symbol referents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	})
}

func runValidate(paths []string) error {
	failed := false
	for _, path := range paths {
		if err := validateOne(path); err != nil {
			printError(path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

func validateOne(path string) error {
	data, cleanup, err := loader.Map(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer cleanup()

	c, err := ir.Decode(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	dangling := c.Verify()
	if len(dangling) == 0 {
		printInfo("%s: ok, no dangling referents\n", path)
		return nil
	}
	for _, d := range dangling {
		printInfo("%s: symbol %s has dangling referent %s\n", path, d.Symbol, d.Referent)
	}
	return fmt.Errorf("%d dangling referent(s)", len(dangling))
}
