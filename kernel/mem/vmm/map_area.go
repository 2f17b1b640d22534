package vmm

import (
	"rvcore/kernel/mem/addr"
	"rvcore/kernel/mem/pmm"
)

// MapType selects how a MapArea's virtual pages back onto physical frames.
type MapType int

const (
	// Identical maps VPN n to PPN n directly; used for the kernel's own
	// image and the physical memory window, which never move.
	Identical MapType = iota
	// Framed allocates one tracked frame per VPN; used for anything that
	// must be isolated per address space (user segments, stacks,
	// per-task kernel stacks, the TrapContext page).
	Framed
)

// MapArea is a half-open range of virtual pages mapped under one policy and
// one set of permission flags.
type MapArea struct {
	start, end addr.VirtPageNum
	mapType    MapType
	perm       PTEFlags
	frames     map[addr.VirtPageNum]*pmm.FrameTracker
}

// NewMapArea describes the page range covering [start, end) with the given
// policy and permission flags.
func NewMapArea(start, end addr.VirtAddr, mapType MapType, perm PTEFlags) *MapArea {
	return &MapArea{
		start:   start.Floor(),
		end:     end.Ceil(),
		mapType: mapType,
		perm:    perm,
		frames:  make(map[addr.VirtPageNum]*pmm.FrameTracker),
	}
}

func (m *MapArea) mapOne(table *PageTable, vpn addr.VirtPageNum) *pmm.FrameTracker {
	var ppn addr.PhysPageNum
	var tracker *pmm.FrameTracker
	switch m.mapType {
	case Identical:
		ppn = addr.PhysPageNum(vpn)
	case Framed:
		frame, err := frameAllocator()
		if err != nil {
			panic(err)
		}
		ppn = frame.PPN
		tracker = frame
		m.frames[vpn] = frame
	}
	if err := table.Map(vpn, ppn, m.perm); err != nil {
		panic(err)
	}
	return tracker
}

// Map installs a PTE for every VPN in the area, allocating frames for Framed
// areas as it goes.
func (m *MapArea) Map(table *PageTable) {
	for vpn := m.start; vpn < m.end; vpn = vpn.Step() {
		m.mapOne(table, vpn)
	}
}

// Unmap clears every PTE the area installed and frees any frames it owned.
func (m *MapArea) Unmap(table *PageTable) {
	for vpn := m.start; vpn < m.end; vpn = vpn.Step() {
		if m.mapType == Framed {
			if f, ok := m.frames[vpn]; ok {
				f.Free()
				delete(m.frames, vpn)
			}
		}
		if err := table.Unmap(vpn); err != nil {
			panic(err)
		}
	}
}

// CopyFromBytes writes up to one page of data into each page of the area, in
// VPN order, stopping once data is exhausted. Used to load ELF segment
// contents.
func (m *MapArea) CopyFromBytes(data []byte) {
	const pageSize = 4096
	head := 0
	length := len(data)

	writePage := func(dst []byte) bool {
		end := head + pageSize
		if end > length {
			end = length
		}
		n := copy(dst, data[head:end])
		_ = n
		head += pageSize
		return head >= length
	}

	if m.mapType == Identical {
		for vpn := m.start; vpn < m.end; vpn = vpn.Step() {
			ppn := addr.PhysPageNum(vpn)
			if writePage(ppn.Bytes()) {
				break
			}
		}
		return
	}

	for vpn := m.start; vpn < m.end; vpn = vpn.Step() {
		f, ok := m.frames[vpn]
		if !ok {
			continue
		}
		if writePage(f.Bytes()) {
			break
		}
	}
}

// Contains reports whether vpn falls within this area's range.
func (m *MapArea) Contains(vpn addr.VirtPageNum) bool {
	return vpn >= m.start && vpn < m.end
}

// cloneInto creates an equivalent area in table (same range, type and
// permissions) and, for Framed areas, byte-copies every backing frame
// into the new one. Physical frames are never shared between a forked
// address space and its parent.
func (m *MapArea) cloneInto(table *PageTable) *MapArea {
	clone := &MapArea{
		start:   m.start,
		end:     m.end,
		mapType: m.mapType,
		perm:    m.perm,
		frames:  make(map[addr.VirtPageNum]*pmm.FrameTracker),
	}
	for vpn := clone.start; vpn < clone.end; vpn = vpn.Step() {
		tracker := clone.mapOne(table, vpn)
		if clone.mapType == Framed {
			src := m.frames[vpn]
			copy(tracker.Bytes(), src.Bytes())
		}
	}
	return clone
}
