package allocator

import (
	"sync"
	"unsafe"
)

// Pool is a single fixed-size arena subdivided into a free list of
// physically adjacent blocks. It is the explicit allocator value the
// design note calls for: an arena, a free-list head, a lock and a
// statistics block, all reachable from one struct instead of a process-wide
// global. A package-level singleton built on top of Pool lives in
// lifecycle.go for callers that want the old-style global API.
//
// The zero Pool is not ready to use; construct one with New and call Init.
type Pool struct {
	mu sync.Mutex

	cfg   Config
	magic uint32

	arena   []byte
	release func()
	first   int64 // offset of the first block; 0 once initialized.

	initialized bool
	stats       Stats
}

// New builds a Pool with the given options applied over the defaults. The
// returned Pool is not yet initialized; call Init before Alloc/Free.
func New(opts ...Option) *Pool {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Pool{cfg: *cfg, magic: cfg.Magic}
}

// Init acquires the backing region and writes the single spanning free
// block that starts the arena. Init is idempotent: calling it again on an
// already-initialized Pool is a no-op that returns StatusSuccess.
//
// The "initialized" flag is the last thing Init sets, under the lock, so a
// concurrent Alloc/Free sees either a fully constructed arena or none at
// all — never a half-built one (spec §4.5).
func (p *Pool) Init() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return StatusSuccess
	}

	if p.cfg.InitialSize <= 0 {
		p.cfg.InitialSize = DefaultInitialSize
	}

	if headerSize > p.cfg.InitialSize {
		return StatusInitFailed
	}

	region, release, err := p.cfg.region(p.cfg.InitialSize)
	if err != nil {
		return StatusInitFailed
	}

	p.arena = region
	p.release = release
	p.first = 0
	p.stats = Stats{}

	firstBlock := headerAt(p.arena, 0)
	firstBlock.size = int64(len(p.arena) - headerSize)
	firstBlock.isFree = true
	firstBlock.next = noOffset
	firstBlock.prev = noOffset
	firstBlock.refresh(0, p.magic)

	p.initialized = true
	if traceEnabled {
		trace("init", "arena=%d bytes", len(p.arena))
	}

	return StatusSuccess
}

// Teardown releases the backing region and resets all statistics. It is a
// no-op if the Pool was never initialized, and idempotent after the first
// call. The caller must guarantee no other Alloc/Free/Stats call is in
// flight: Teardown does not drain outstanding callers, it only releases
// state out from under them (spec §4.5, §9 Open Question 5).
func (p *Pool) Teardown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	if p.release != nil {
		p.release()
	}

	p.arena = nil
	p.release = nil
	p.stats = Stats{}
	p.initialized = false

	if traceEnabled {
		trace("teardown", "released")
	}
}

// Alloc rounds size up to the alignment quantum (raising it to the
// minimum payload if needed), finds the first free block large enough via
// first-fit search, splits it if the residue would still meet the minimum
// payload, and returns the payload address. It returns nil on a zero-size
// request, on an uninitialized pool, on exhaustion, or if header
// corruption is discovered while walking the free list.
func (p *Pool) Alloc(size int) unsafe.Pointer {
	if size <= 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil
	}

	aligned := alignUp(size, p.cfg.Alignment)
	if aligned < p.cfg.MinPayload {
		aligned = p.cfg.MinPayload
	}
	want := int64(aligned)

	cur := p.first
	for cur != noOffset {
		h := headerAt(p.arena, cur)
		if !validate(h, cur, p.magic) {
			if traceEnabled {
				trace("alloc", "corrupt header at %d", cur)
			}
			return nil
		}

		if h.isFree && h.size >= want {
			p.splitAndCommit(cur, h, want)

			p.stats.TotalAllocated += uint64(aligned)
			p.stats.CurrentUsed += uint64(aligned)
			p.stats.TotalAllocations++
			if p.stats.CurrentUsed > p.stats.PeakUsed {
				p.stats.PeakUsed = p.stats.CurrentUsed
			}

			payload := unsafe.Pointer(&p.arena[cur+int64(headerSize)])
			if traceEnabled {
				trace("alloc", "off=%d size=%d -> %p", cur, aligned, payload)
			}

			return payload
		}

		cur = h.next
	}

	if traceEnabled {
		trace("alloc", "out of memory for size=%d", aligned)
	}

	return nil
}

// splitAndCommit splits the block at offset co (header ch) if its residue
// would still satisfy the minimum payload once want bytes and a new header
// are carved off, then marks the (possibly shrunk) block used. want is also
// recorded on ch.requested regardless of whether a split happens, since
// spec §4.2 requires statistics accounting to use the requested size on
// both Alloc and Free, not the block's physical capacity. The caller must
// hold p.mu.
func (p *Pool) splitAndCommit(co int64, ch *header, want int64) {
	if ch.size >= want+int64(headerSize)+int64(p.cfg.MinPayload) {
		newOff := co + int64(headerSize) + want

		residue := headerAt(p.arena, newOff)
		residue.size = ch.size - want - int64(headerSize)
		residue.isFree = true
		residue.prev = co
		residue.next = ch.next
		residue.refresh(newOff, p.magic)

		oldNext := ch.next
		ch.size = want
		ch.next = newOff
		ch.refresh(co, p.magic)

		if oldNext != noOffset {
			next := headerAt(p.arena, oldNext)
			next.prev = newOff
			// next's size/isFree are unchanged, so its checksum still
			// validates; only size/isFree changes require refresh.
		}
	}

	ch.requested = want
	ch.isFree = false
	ch.refresh(co, p.magic)
}

// Free recovers the header HEADER_SIZE bytes before payload, validates it,
// marks it free, and coalesces with the forward neighbor before the
// backward one so that a free-freed-free triple merges into a single block
// in one call (spec §4.2). It returns StatusInvalidPointer for a nil
// pointer, an uninitialized pool, a header that fails validation, or a
// double free (a block that is already free cannot be the target of a
// second free, even though its header still validates).
func (p *Pool) Free(payload unsafe.Pointer) Status {
	if payload == nil {
		return StatusInvalidPointer
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return StatusInvalidPointer
	}

	offset, ok := p.offsetOf(payload)
	if !ok {
		return StatusInvalidPointer
	}

	self := headerAt(p.arena, offset)
	if !validate(self, offset, p.magic) {
		if traceEnabled {
			trace("free", "corrupt header at %d", offset)
		}
		return StatusInvalidPointer
	}

	if self.isFree {
		if traceEnabled {
			trace("free", "double free at %d", offset)
		}
		return StatusInvalidPointer
	}

	// requestedSize is what Alloc credited to statistics (the post-alignment
	// size the caller asked for); it must also be what Free debits, per
	// spec §4.2. capacitySize is the block's physical payload capacity,
	// which can be larger than requestedSize when no split occurred, and is
	// what the coalescing arithmetic below must use since that tracks real
	// arena bytes, not the caller's original request.
	requestedSize := self.requested
	capacitySize := self.size
	self.isFree = true
	total := capacitySize

	if self.next != noOffset {
		next := headerAt(p.arena, self.next)
		if next.isFree {
			total += int64(headerSize) + next.size
			self.size = total
			self.next = next.next

			if self.next != noOffset {
				headerAt(p.arena, self.next).prev = offset
			}
		}
	}

	finalOffset, final := offset, self
	if final.prev != noOffset {
		prev := headerAt(p.arena, final.prev)
		if prev.isFree {
			total += int64(headerSize) + prev.size
			prev.size = total
			prev.next = final.next

			if final.next != noOffset {
				headerAt(p.arena, final.next).prev = final.prev
			}

			finalOffset, final = final.prev, prev
		} else {
			final.size = total
		}
	} else {
		final.size = total
	}

	final.refresh(finalOffset, p.magic)

	p.stats.CurrentUsed -= uint64(requestedSize)
	p.stats.TotalFrees++

	if traceEnabled {
		trace("free", "off=%d requested=%d capacity=%d merged-into=%d", offset, requestedSize, capacitySize, finalOffset)
	}

	return StatusSuccess
}

// offsetOf recovers the header offset for a payload address previously
// returned by Alloc, checking only that the implied header lies wholly
// inside the arena. Whether a valid header actually sits there is left to
// validate.
func (p *Pool) offsetOf(payload unsafe.Pointer) (int64, bool) {
	if len(p.arena) == 0 {
		return 0, false
	}

	base := uintptr(unsafe.Pointer(&p.arena[0]))
	target := uintptr(payload)

	if target < base {
		return 0, false
	}

	delta := int64(target - base)
	offset := delta - int64(headerSize)

	if offset < 0 || offset+int64(headerSize) > int64(len(p.arena)) {
		return 0, false
	}

	return offset, true
}
