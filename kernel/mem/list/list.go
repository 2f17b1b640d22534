// Package list implements an intrusive singly-linked free list: the list
// carries no nodes of its own, it only ever stores addresses of blocks the
// caller already owns. Pushing a block writes the current head into the
// first machine word of that block and makes the block the new head; no
// memory is ever allocated to track the list itself. This is what lets the
// buddy heap (package heap) bootstrap free-space bookkeeping before a heap
// exists to allocate bookkeeping structures from.
package list

import "unsafe"

// List is a free list of same-size blocks. The zero value is an empty list.
type List struct {
	head uintptr
}

// node reinterprets the machine word at addr as the next-pointer slot.
func node(addr uintptr) *uintptr {
	return (*uintptr)(unsafe.Pointer(addr))
}

// Push adds the block at addr to the front of the list. addr must be at
// least pointer-sized and not currently part of any list.
func (l *List) Push(addr uintptr) {
	*node(addr) = l.head
	l.head = addr
}

// Empty returns true if the list holds no blocks.
func (l *List) Empty() bool {
	return l.head == 0
}

// Pop removes and returns the block at the front of the list.
func (l *List) Pop() (uintptr, bool) {
	if l.head == 0 {
		return 0, false
	}
	addr := l.head
	l.head = *node(addr)
	return addr, true
}

// Remove scans the list for a block at address target and unlinks it,
// reporting whether one was found. Used by the buddy heap's merge step to
// pull a specific buddy address out of the middle of a free list in O(n).
func (l *List) Remove(target uintptr) bool {
	prev := &l.head
	cur := l.head
	for cur != 0 {
		if cur == target {
			*prev = *node(cur)
			return true
		}
		prev = node(cur)
		cur = *prev
	}
	return false
}
