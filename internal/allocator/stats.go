package allocator

import "fmt"

// Stats is a point-in-time snapshot of a Pool's allocation counters,
// mirroring the original mm_stats_t. All fields are read under the Pool's
// single lock, so a snapshot is always consistent with some linearized
// prefix of completed operations (spec §5).
type Stats struct {
	// TotalAllocated is the sum of requested (post-alignment) sizes over
	// every successful Alloc. It never decreases.
	TotalAllocated uint64

	// CurrentUsed is the sum of requested sizes over currently live
	// allocations.
	CurrentUsed uint64

	// PeakUsed is the maximum value CurrentUsed has ever taken.
	PeakUsed uint64

	// TotalAllocations and TotalFrees are monotonic operation counts.
	TotalAllocations uint64
	TotalFrees       uint64

	// Fragmentation is reserved for a future metric. Spec Open Question 1:
	// the source that this package is modeled on declares this field but
	// never populates it, so this package leaves it at 0 rather than
	// inventing a formula the original never specified.
	Fragmentation float64
}

// String renders Stats the way the original mm_print_stats did, as a
// value the caller can log or print — not a CLI of its own.
func (s Stats) String() string {
	return fmt.Sprintf(
		"allocator stats: allocated=%d used=%d peak=%d allocations=%d frees=%d active=%d",
		s.TotalAllocated, s.CurrentUsed, s.PeakUsed,
		s.TotalAllocations, s.TotalFrees, s.TotalAllocations-s.TotalFrees,
	)
}

// Stats returns a consistent snapshot of the Pool's counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stats
}

// HasLeaks reports whether the allocation/free counts disagree or whether
// memory is still outstanding. The two checks are logically equivalent
// under the Pool's invariants but both are made defensively, as spec §4.4
// prescribes.
func (p *Pool) HasLeaks() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stats.TotalAllocations != p.stats.TotalFrees || p.stats.CurrentUsed != 0
}
