package vmm

import "rvcore/kernel/mem/addr"

const pageSize = 1 << 12

// GetUserByteBuffer returns a slice of byte slices, each backing one page
// of the len bytes starting at ptr in the address space identified by
// satp. Page boundaries are clipped so that every returned slice stays
// within a single physical frame; callers needing a contiguous view copy
// the pieces into their own buffer.
func GetUserByteBuffer(satp uint64, ptr uint64, length uint64) [][]byte {
	table := FromSATP(satp)
	var out [][]byte

	start := addr.VirtAddr(ptr)
	end := addr.VirtAddr(ptr + length)
	for start < end {
		vpn := start.Floor()
		pte, ok := table.Translate(vpn)
		if !ok {
			panic("user pointer not mapped")
		}
		pageEnd := vpn.Addr() + addr.VirtAddr(pageSize)
		clipEnd := pageEnd
		if end < clipEnd {
			clipEnd = end
		}
		page := pte.PPN().Bytes()
		off := uint64(start) - uint64(vpn.Addr())
		n := uint64(clipEnd) - uint64(start)
		out = append(out, page[off:off+n])
		start = clipEnd
	}
	return out
}

// CopyBytesToUser copies src into the len-byte region at dst in the
// address space identified by satp, page by page.
func CopyBytesToUser(satp uint64, src []byte, dst uint64) {
	chunks := GetUserByteBuffer(satp, dst, uint64(len(src)))
	head := 0
	for _, c := range chunks {
		copy(c, src[head:head+len(c)])
		head += len(c)
	}
}

// CopyBytesFromUser copies length bytes out of the region at ptr in the
// address space identified by satp and returns them as one contiguous
// slice.
func CopyBytesFromUser(satp uint64, ptr uint64, length uint64) []byte {
	chunks := GetUserByteBuffer(satp, ptr, length)
	out := make([]byte, 0, length)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}
