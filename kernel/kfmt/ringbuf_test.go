package kfmt

import (
	"bytes"
	"io"
	"testing"
)

func TestRingBuffer(t *testing.T) {
	var (
		buf    bytes.Buffer
		expStr = "the big brown fox jumped over the lazy dog"
		rb     ringBuffer
	)

	t.Run("read/write", func(t *testing.T) {
		rb.writeAt = 0
		rb.readAt = 0
		n, err := rb.Write([]byte(expStr))
		if err != nil {
			t.Fatal(err)
		}
		if n != len(expStr) {
			t.Fatalf("expected to write %d bytes; wrote %d", len(expStr), n)
		}
		if got := drain(&buf, &rb); got != expStr {
			t.Fatalf("expected to read %q; got %q", expStr, got)
		}
	})

	t.Run("write past capacity drags read cursor forward", func(t *testing.T) {
		rb.writeAt = capacity - 1
		rb.readAt = 0
		_, err := rb.Write([]byte{'!'})
		if err != nil {
			t.Fatal(err)
		}
		if exp := 1; rb.readAt != exp {
			t.Fatalf("expected write to push readAt to %d; got %d", exp, rb.readAt)
		}
	})

	t.Run("writeAt < readAt", func(t *testing.T) {
		rb.writeAt = capacity - 2
		rb.readAt = capacity - 2
		n, err := rb.Write([]byte(expStr))
		if err != nil {
			t.Fatal(err)
		}
		if n != len(expStr) {
			t.Fatalf("expected to write %d bytes; wrote %d", len(expStr), n)
		}
		if got := drain(&buf, &rb); got != expStr {
			t.Fatalf("expected to read %q; got %q", expStr, got)
		}
	})

	t.Run("drained via io.Copy", func(t *testing.T) {
		rb.writeAt = capacity - 2
		rb.readAt = capacity - 2
		n, err := rb.Write([]byte(expStr))
		if err != nil {
			t.Fatal(err)
		}
		if n != len(expStr) {
			t.Fatalf("expected to write %d bytes; wrote %d", len(expStr), n)
		}

		var dst bytes.Buffer
		io.Copy(&dst, &rb)

		if got := dst.String(); got != expStr {
			t.Fatalf("expected to read %q; got %q", expStr, got)
		}
	})
}

// drain reads r one byte at a time into buf until io.EOF and returns what
// was accumulated, exercising Read's short-read paths explicitly.
func drain(buf *bytes.Buffer, r io.Reader) string {
	buf.Reset()
	b := make([]byte, 1)
	for {
		_, err := r.Read(b)
		if err == io.EOF {
			break
		}
		buf.Write(b)
	}
	return buf.String()
}
