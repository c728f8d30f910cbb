package allocator

import "testing"

// BenchmarkAllocFree exercises the allocate/free fast path from many
// goroutines at once, mirroring the teacher's BenchmarkSystemAllocator
// (config, b.ResetTimer, b.RunParallel over a fixed request size).
func BenchmarkAllocFree(b *testing.B) {
	p := New(WithInitialSize(16 << 20))
	if status := p.Init(); status != StatusSuccess {
		b.Fatalf("Init() = %v", status)
	}
	defer p.Teardown()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			ptr := p.Alloc(256)
			if ptr != nil {
				p.Free(ptr)
			}
		}
	})
}

// BenchmarkAllocNoFree allocates without freeing, re-initializing the pool
// periodically to avoid exhaustion — the arena analogue of the teacher's
// BenchmarkArenaAllocator, which resets its bump arena every 1000 iterations
// instead of freeing individually.
func BenchmarkAllocNoFree(b *testing.B) {
	p := New(WithInitialSize(16 << 20))
	if status := p.Init(); status != StatusSuccess {
		b.Fatalf("Init() = %v", status)
	}
	defer p.Teardown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%1000 == 0 {
			p.Teardown()
			if status := p.Init(); status != StatusSuccess {
				b.Fatalf("re-Init() = %v", status)
			}
		}
		p.Alloc(256)
	}
}

// BenchmarkSplitAndCoalesce drives alternating-size requests so most
// allocations force a split and most frees force a coalesce, exercising the
// engine's more expensive paths rather than the uniform-size fast path above.
func BenchmarkSplitAndCoalesce(b *testing.B) {
	p := New(WithInitialSize(16 << 20))
	if status := p.Init(); status != StatusSuccess {
		b.Fatalf("Init() = %v", status)
	}
	defer p.Teardown()

	sizes := []int{32, 96, 256, 512}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		size := sizes[i%len(sizes)]
		if i%1000 == 0 {
			p.Teardown()
			if status := p.Init(); status != StatusSuccess {
				b.Fatalf("re-Init() = %v", status)
			}
		}
		if ptr := p.Alloc(size); ptr != nil {
			p.Free(ptr)
		}
	}
}
