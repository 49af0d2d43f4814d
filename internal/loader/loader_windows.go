//go:build windows

package loader

import "os"

// Map reads path into memory whole. Windows file mapping is not worth the
// syscall surface for a read-only CLI tool; a plain read is simpler and the
// files this package loads are small analysis artifacts, not multi-gigabyte
// binaries.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
