package syscall

import "encoding/binary"

// wordsToBytes/bytesToWords convert between the []uint64 the RPC channel
// carries and the little-endian byte buffers user memory actually holds,
// matching the target's native endianness.

func wordsToBytes(words []uint64) []byte {
	out := make([]byte, len(words)*8)
	for i, w := range words {
		binary.LittleEndian.PutUint64(out[i*8:], w)
	}
	return out
}

func bytesToWords(b []byte) []uint64 {
	out := make([]uint64, len(b)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return out
}
