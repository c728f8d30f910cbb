//go:build unix

package allocator

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// acquireRegion obtains the arena's backing bytes directly from the OS via
// an anonymous, private mmap, rather than a GC-managed make([]byte, n).
// This is the unix half of the two-platform split the original C source
// drew between CRITICAL_SECTION and pthread mutexes: here the mutex itself
// is already platform-neutral (sync.Mutex), so the split that actually
// matters in Go is how the raw region is obtained. See region_fallback.go
// for the non-unix path.
func acquireRegion(size int) ([]byte, func(), error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("allocator: region size must be positive, got %d", size)
	}

	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("allocator: mmap %d bytes: %w", size, err)
	}

	release := func() {
		_ = unix.Munmap(region)
	}

	return region, release, nil
}
