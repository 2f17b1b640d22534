package heap

import (
	"testing"
	"unsafe"
)

// backing returns a page-aligned byte buffer large enough to back the
// allocator in these tests, along with its start address.
func backing(t *testing.T, size int) uintptr {
	t.Helper()
	buf := make([]byte, size+4096)
	start := uintptr(unsafe.Pointer(&buf[0]))
	aligned := (start + 4095) &^ 4095
	return aligned
}

func TestAllocBasic(t *testing.T) {
	h := New(3)
	start := backing(t, 4096)
	h.AddSpace(start, start+4096)

	p1, err := h.Alloc(16, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := h.Alloc(16, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1 == p2 {
		t.Fatal("expected distinct blocks")
	}

	h.Dealloc(p1, 16, 8)
	h.Dealloc(p2, 16, 8)
}

func TestOutOfMemory(t *testing.T) {
	h := New(3)
	start := backing(t, 4096)
	h.AddSpace(start, start+4096)

	if _, err := h.Alloc(1<<20, 8); err == nil {
		t.Fatal("expected out-of-memory error for an oversized request")
	}
}

func TestSplitAndMergeRoundTrip(t *testing.T) {
	h := New(3)
	start := backing(t, 4096)
	h.AddSpace(start, start+4096)

	// Allocate every 64-byte block the page can hold, forcing splits all
	// the way down, then free them all in the same order, which forces
	// every buddy pair to coalesce back into the original page-sized
	// block.
	const blockSize = 64
	n := 4096 / blockSize
	blocks := make([]uintptr, n)
	for i := range blocks {
		p, err := h.Alloc(blockSize, 8)
		if err != nil {
			t.Fatalf("alloc %d failed: %v", i, err)
		}
		blocks[i] = p
	}

	for _, p := range blocks {
		h.Dealloc(p, blockSize, 8)
	}

	// The whole page should have recombined into one free block of order
	// log2(4096)=12, allocatable as a single request.
	whole, err := h.Alloc(4096, 8)
	if err != nil {
		t.Fatalf("expected full page to be allocatable after merge, got: %v", err)
	}
	if whole != start {
		t.Fatalf("expected merged block to start at %x, got %x", start, whole)
	}
}

func TestUnitClampedToMinimum(t *testing.T) {
	h := New(0)
	if h.inner.unit != minUnit {
		t.Fatalf("expected unit clamped to %d, got %d", minUnit, h.inner.unit)
	}
}
