package allocator

import "unsafe"

// global is the package-level convenience instance, playing the role the
// C source's g_pools[0] played behind its process-wide API. Design Note 2
// asks for an explicit allocator value with the singleton as an optional
// wrapper around it; this is that wrapper. Callers that want independent,
// separately-torn-down arenas should use New/Init/Teardown on their own
// *Pool instead of these package functions.
var global = New()

// Init starts the package-level Pool. Idempotent; see Pool.Init.
func Init() Status { return global.Init() }

// Alloc allocates from the package-level Pool. See Pool.Alloc.
func Alloc(size int) unsafe.Pointer { return global.Alloc(size) }

// Free releases a pointer back to the package-level Pool. See Pool.Free.
func Free(payload unsafe.Pointer) Status { return global.Free(payload) }

// Teardown tears down the package-level Pool. See Pool.Teardown.
func Teardown() { global.Teardown() }

// GetStats snapshots the package-level Pool's statistics. See Pool.Stats.
func GetStats() Stats { return global.Stats() }

// HasLeaks reports whether the package-level Pool has outstanding leaks.
// See Pool.HasLeaks.
func HasLeaks() bool { return global.HasLeaks() }
