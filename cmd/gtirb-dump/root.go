// Command gtirb-dump is a read-only CLI collaborator for the gtirb-go core:
// it decodes one or more GTIRB files and prints a structured dump, checks
// referential integrity, or exercises the round-trip guarantee.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	jsonOut bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "gtirb-dump",
	Short: "Inspect GTIRB intermediate-representation files",
	Long: `gtirb-dump decodes GTIRB files and prints their structure: modules,
sections, byte intervals, code and data blocks, symbols, and proxy blocks.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printError(path string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
