package trap

import (
	"strings"
	"testing"
)

func TestDecodeFaultingInstructionUnwired(t *testing.T) {
	readFaultingWordFn = nil
	got := decodeFaultingInstruction(0x1000)
	if !strings.Contains(got, "no fault reader wired") {
		t.Fatalf("expected placeholder for unwired reader, got %q", got)
	}
}

func TestDecodeFaultingInstructionUnmapped(t *testing.T) {
	readFaultingWordFn = func(uint64) ([4]byte, bool) { return [4]byte{}, false }
	defer func() { readFaultingWordFn = nil }()

	got := decodeFaultingInstruction(0x1000)
	if !strings.Contains(got, "unmapped") {
		t.Fatalf("expected placeholder for unmapped address, got %q", got)
	}
}

func TestDecodeFaultingInstructionRendersRawWord(t *testing.T) {
	readFaultingWordFn = func(uint64) ([4]byte, bool) { return [4]byte{0xef, 0xbe, 0xad, 0xde}, true }
	defer func() { readFaultingWordFn = nil }()

	got := decodeFaultingInstruction(0x1000)
	if !strings.Contains(got, "0xdeadbeef") {
		t.Fatalf("expected little-endian raw word 0xdeadbeef, got %q", got)
	}
}
