package task

import "testing"

func TestNewContextSeedsRAAndSPOnly(t *testing.T) {
	cx := NewContext(0xdead, 0xbeef)
	if cx.RA != 0xdead {
		t.Fatalf("expected RA 0xdead, got %#x", cx.RA)
	}
	if cx.SP != 0xbeef {
		t.Fatalf("expected SP 0xbeef, got %#x", cx.SP)
	}
	for i, s := range cx.S {
		if s != 0 {
			t.Fatalf("expected S[%d] to be zeroed, got %#x", i, s)
		}
	}
}
