package allocator

import "unsafe"

// header is the in-band per-block metadata embedded at the start of every
// block inside the arena, followed immediately by the block's payload
// bytes. It is the Go rendering of the C source's block_header_t, with
// next/prev modeled as byte offsets from the arena base rather than raw
// pointers — per the design note, this keeps the free list self-contained
// inside the arena's own byte slice and avoids any cross-allocation
// pointer the garbage collector would need to reason about.
type header struct {
	size     int64
	isFree   bool
	next     int64 // byte offset of the next block's header, or noOffset.
	prev     int64 // byte offset of the previous block's header, or noOffset.
	magic    uint32
	checksum uint32

	// requested is the post-alignment size the caller asked Alloc for,
	// recorded separately from size (the block's physical capacity)
	// because the two diverge whenever a block is allocated without a
	// split: size keeps the larger pre-existing capacity, but spec §4.2
	// requires statistics accounting to use the requested size s on both
	// Alloc and Free. Meaningless while isFree is true.
	requested int64
}

// headerSize is the number of bytes a header occupies in the arena.
var headerSize = int(unsafe.Sizeof(header{}))

// noOffset marks an absent next/prev link (the arena's first byte, offset
// 0, is always a valid header offset, so 0 cannot double as "absent").
const noOffset int64 = -1

// headerAt returns the header embedded at the given byte offset in arena.
// The caller must already hold the Pool's lock.
func headerAt(arena []byte, offset int64) *header {
	return (*header)(unsafe.Pointer(&arena[offset]))
}

// checksumFor derives a tamper-evidence value from the header's own offset,
// its size, and its free flag. This is deliberately a cheap XOR combination
// — spec.md is explicit that the goal is corruption detection, not
// cryptographic integrity — so no hashing library from the example pack
// belongs here (see DESIGN.md).
func checksumFor(offset int64, size int64, isFree bool) uint32 {
	freeBit := uint64(0)
	if isFree {
		freeBit = 1
	}

	return uint32(uint64(offset) ^ uint64(size) ^ freeBit)
}

// refresh recomputes magic and checksum for h, which is assumed to live at
// offset within its arena. Call this after writing size or isFree.
func (h *header) refresh(offset int64, magic uint32) {
	h.magic = magic
	h.checksum = checksumFor(offset, h.size, h.isFree)
}

// validate reports whether the header at offset is non-corrupt: the magic
// sentinel matches and the stored checksum matches the recomputed one.
func validate(h *header, offset int64, magic uint32) bool {
	if h == nil {
		return false
	}

	if h.magic != magic {
		return false
	}

	return h.checksum == checksumFor(offset, h.size, h.isFree)
}
