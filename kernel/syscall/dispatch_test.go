package syscall

import "testing"

// Dispatch's per-id handlers (sysWrite, sysFork, sysGettime, ...) all reach
// into proc/vmm/platform, which assume a real task and real MMIO behind
// them — not something a hosted unit test can stand up. The one branch
// that's pure is the unknown-id case, exercised here.

func TestDispatchUnknownIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Dispatch to panic on an unrecognized syscall id")
		}
	}()
	Dispatch(0xffff, [4]uint64{})
}

func TestNegativeSentinelsAreDistinctTwosComplementValues(t *testing.T) {
	if negOne == negTwo {
		t.Fatal("negOne and negTwo must be distinct sentinels")
	}
	one, two := negOne, negTwo
	if int64(one) != -1 {
		t.Fatalf("expected negOne to reinterpret as -1, got %d", int64(one))
	}
	if int64(two) != -2 {
		t.Fatalf("expected negTwo to reinterpret as -2, got %d", int64(two))
	}
}
