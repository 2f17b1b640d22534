package list

import (
	"testing"
	"unsafe"
)

// block allocates a pointer-sized, pointer-aligned word to use as list
// storage, mimicking the free memory the buddy heap would hand in.
func block() uintptr {
	v := new(uintptr)
	return uintptr(unsafe.Pointer(v))
}

func TestPushPopOrder(t *testing.T) {
	var l List
	a, b, c := block(), block(), block()

	l.Push(a)
	l.Push(b)
	l.Push(c)

	for _, want := range []uintptr{c, b, a} {
		got, ok := l.Pop()
		if !ok || got != want {
			t.Fatalf("expected %x, got %x (ok=%v)", want, got, ok)
		}
	}

	if !l.Empty() {
		t.Fatal("expected list to be empty after draining")
	}
	if _, ok := l.Pop(); ok {
		t.Fatal("expected Pop on empty list to fail")
	}
}

func TestRemoveMiddle(t *testing.T) {
	var l List
	a, b, c := block(), block(), block()
	l.Push(a)
	l.Push(b)
	l.Push(c)

	if !l.Remove(b) {
		t.Fatal("expected to find and remove b")
	}
	if l.Remove(b) {
		t.Fatal("b should no longer be present")
	}

	var got []uintptr
	for {
		v, ok := l.Pop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 2 || got[0] != c || got[1] != a {
		t.Fatalf("expected [c a], got %v", got)
	}
}

func TestRemoveHead(t *testing.T) {
	var l List
	a, b := block(), block()
	l.Push(a)
	l.Push(b)

	if !l.Remove(b) {
		t.Fatal("expected to remove head")
	}
	got, ok := l.Pop()
	if !ok || got != a {
		t.Fatalf("expected a, got %x (ok=%v)", got, ok)
	}
}

func TestRemoveMissing(t *testing.T) {
	var l List
	a := block()
	l.Push(a)

	if l.Remove(block()) {
		t.Fatal("expected Remove of an absent address to report false")
	}
}
