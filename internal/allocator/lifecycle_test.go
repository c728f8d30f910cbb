package allocator

import (
	"errors"
	"testing"
)

func TestInitIsIdempotent(t *testing.T) {
	p := New(WithInitialSize(1 << 16))
	defer p.Teardown()

	if status := p.Init(); status != StatusSuccess {
		t.Fatalf("first Init() = %v", status)
	}

	arena := p.arena

	if status := p.Init(); status != StatusSuccess {
		t.Fatalf("second Init() = %v, want success", status)
	}

	if &arena[0] != &p.arena[0] {
		t.Error("second Init() replaced the arena of an already-initialized Pool")
	}
}

func TestTeardownIsIdempotentAndNoopBeforeInit(t *testing.T) {
	p := New()
	p.Teardown() // must not panic on an uninitialized Pool.

	p2 := New(WithInitialSize(1 << 16))
	if status := p2.Init(); status != StatusSuccess {
		t.Fatalf("Init() = %v", status)
	}

	p2.Teardown()
	p2.Teardown() // second call must also be safe.

	if p2.initialized {
		t.Error("Pool still reports initialized after Teardown")
	}
	if ptr := p2.Alloc(16); ptr != nil {
		t.Error("Alloc should fail on a torn-down Pool")
	}
}

func TestInitFailsWhenRegionFuncErrors(t *testing.T) {
	wantErr := errors.New("region unavailable")

	p := New(WithInitialSize(1<<16), WithRegionFunc(func(int) ([]byte, func(), error) {
		return nil, nil, wantErr
	}))

	if status := p.Init(); status != StatusInitFailed {
		t.Errorf("Init() = %v, want init-failed", status)
	}
	if p.initialized {
		t.Error("Pool reports initialized after a failed Init")
	}
}

func TestInitFailsWhenArenaTooSmallForOneHeader(t *testing.T) {
	p := New(WithInitialSize(1))

	if status := p.Init(); status != StatusInitFailed {
		t.Errorf("Init() = %v, want init-failed for an arena smaller than one header", status)
	}
}

func TestReinitAfterTeardownStartsFresh(t *testing.T) {
	p := New(WithInitialSize(1 << 16))

	if status := p.Init(); status != StatusSuccess {
		t.Fatalf("Init() = %v", status)
	}

	ptr := p.Alloc(64)
	if ptr == nil {
		t.Fatal("allocation failed")
	}

	p.Teardown()

	if status := p.Init(); status != StatusSuccess {
		t.Fatalf("re-Init() = %v", status)
	}
	defer p.Teardown()

	if p.HasLeaks() {
		t.Error("a freshly re-initialized Pool should report no leaks")
	}
	if stats := p.Stats(); stats.TotalAllocations != 0 {
		t.Errorf("TotalAllocations = %d on a freshly re-initialized Pool, want 0", stats.TotalAllocations)
	}
}

func TestPackageLevelSingleton(t *testing.T) {
	if status := Init(); status != StatusSuccess {
		t.Fatalf("Init() = %v", status)
	}
	defer Teardown()

	ptr := Alloc(64)
	if ptr == nil {
		t.Fatal("package-level Alloc failed")
	}

	if status := Free(ptr); status != StatusSuccess {
		t.Fatalf("package-level Free() = %v, want success", status)
	}

	if HasLeaks() {
		t.Error("package-level HasLeaks() = true after a matched alloc/free")
	}

	_ = GetStats()
}
