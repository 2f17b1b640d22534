package pmm

import (
	"rvcore/kernel/mem/addr"
	"testing"
	"unsafe"
)

func TestAllocBumpsCurrent(t *testing.T) {
	var a Allocator
	a.Init(10, 20)

	p1, err := a.Alloc()
	if err != nil || p1 != 10 {
		t.Fatalf("expected frame 10, got %v err=%v", p1, err)
	}
	p2, err := a.Alloc()
	if err != nil || p2 != 11 {
		t.Fatalf("expected frame 11, got %v err=%v", p2, err)
	}
}

func TestAllocExhaustion(t *testing.T) {
	var a Allocator
	a.Init(0, 2)

	if _, err := a.Alloc(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Alloc(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Alloc(); err == nil {
		t.Fatal("expected out-of-memory error")
	}
}

func TestAllocDeallocPreservesCurrent(t *testing.T) {
	var a Allocator
	a.Init(0, 100)

	var got []addr.PhysPageNum
	for i := 0; i < 5; i++ {
		p, err := a.Alloc()
		if err != nil {
			t.Fatalf("alloc %d: %v", i, err)
		}
		got = append(got, p)
	}
	for _, p := range got {
		a.Dealloc(p)
	}

	if a.current != 5 {
		t.Fatalf("expected current to remain at 5, got %d", a.current)
	}
	if len(a.recycled) != 5 {
		t.Fatalf("expected 5 recycled frames, got %d", len(a.recycled))
	}

	// A subsequent alloc should come from the recycled stack (LIFO), not
	// bump current further.
	p, err := a.Alloc()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != got[4] {
		t.Fatalf("expected LIFO reuse of %d, got %d", got[4], p)
	}
	if a.current != 5 {
		t.Fatalf("current should not have moved, got %d", a.current)
	}
}

func TestDeallocOutOfRangePanics(t *testing.T) {
	var a Allocator
	a.Init(0, 10)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range dealloc")
		}
	}()
	a.Dealloc(50)
}

func TestDeallocDoubleFreePanics(t *testing.T) {
	var a Allocator
	a.Init(0, 10)
	p, _ := a.Alloc()
	a.Dealloc(p)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double free")
		}
	}()
	a.Dealloc(p)
}

func TestAllocTrackedZeroesFrame(t *testing.T) {
	var a Allocator
	// Use a real heap-backed region so the frame address is valid to write to.
	buf := make([]byte, 3*4096+4096)
	base := (uintptr(unsafe.Pointer(&buf[0])) + 4095) &^ 4095
	a.Init(addr.PhysAddr(uint64(base)).Floor(), addr.PhysAddr(uint64(base)).Floor()+3)

	for i := range buf {
		buf[i] = 0xff
	}

	ft, err := a.AllocTracked()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, b := range ft.Bytes() {
		if b != 0 {
			t.Fatalf("expected zeroed frame, byte %d = %x", i, b)
			break
		}
	}
	ft.Free()
}
