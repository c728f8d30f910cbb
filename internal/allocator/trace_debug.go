//go:build debug

package allocator

import (
	"fmt"
	"os"

	"github.com/timandy/routine"
)

// traceEnabled is true when this package is built with -tags debug. It
// mirrors flier-goutil/internal/debug.Enabled, which gates the same kind
// of build-tag-only tracing.
const traceEnabled = true

// trace logs an allocator operation to stderr, tagged with the calling
// goroutine's id. It is compiled out entirely in normal builds; see
// trace_stub.go.
func trace(op string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "allocator [g%04d] %s: %s\n", routine.Goid(), op, msg)
}
