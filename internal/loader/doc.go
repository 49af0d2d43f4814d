// Package loader memory-maps a GTIRB file read-only for the CLI, with a
// plain-read fallback on platforms where mmap isn't worth the complexity.
package loader
