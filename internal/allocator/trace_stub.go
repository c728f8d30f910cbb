//go:build !debug

package allocator

// traceEnabled mirrors flier-goutil/internal/debug.Enabled's build-tag
// gate: tracing only exists in debug builds.
const traceEnabled = false

// trace is a no-op outside of debug builds; the compiler inlines it away.
func trace(op string, format string, args ...any) {}
