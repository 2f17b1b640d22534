package syscall

import (
	"reflect"
	"testing"
)

func TestWordsBytesRoundTrip(t *testing.T) {
	words := []uint64{0, 1, 0xdeadbeefcafef00d, ^uint64(0)}
	b := wordsToBytes(words)
	if len(b) != len(words)*8 {
		t.Fatalf("expected %d bytes, got %d", len(words)*8, len(b))
	}
	got := bytesToWords(b)
	if !reflect.DeepEqual(got, words) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, words)
	}
}

func TestWordsToBytesLittleEndian(t *testing.T) {
	b := wordsToBytes([]uint64{0x0102030405060708})
	want := []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if !reflect.DeepEqual(b, want) {
		t.Fatalf("expected little-endian encoding %x, got %x", want, b)
	}
}
