//go:build !unix && !windows

package loader

import "os"

// Map reads path into memory whole, for platforms with neither a unix-style
// nor a windows mmap path.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
