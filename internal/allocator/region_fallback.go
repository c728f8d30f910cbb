//go:build !unix

package allocator

import "fmt"

// acquireRegion obtains the arena's backing bytes from Go's own allocator.
// This is the non-unix half of the platform split described in
// region_unix.go: without a portable anonymous-mmap syscall, the backing
// region comes from a plain make([]byte, n).
func acquireRegion(size int) ([]byte, func(), error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("allocator: region size must be positive, got %d", size)
	}

	region := make([]byte, size)

	return region, func() {}, nil
}
