package kfmt

import (
	"bytes"
	"io"
)

// PrefixWriter decorates every line written to Sink with Prefix, the way a
// multiplexed subsystem tags its log output with the subsystem's name.
type PrefixWriter struct {
	Sink   io.Writer
	Prefix []byte

	// bytesAfterPrefix counts bytes emitted since the last prefix; zero
	// means the next Write starts a fresh line and must emit one first.
	bytesAfterPrefix int
}

// Write splits p on line boundaries and re-emits a Prefix at the start of
// every line, forwarding each chunk to Sink in turn. The byte count it
// returns covers only p's own bytes, not the injected prefixes.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if w.bytesAfterPrefix == 0 {
		if _, err := w.Sink.Write(w.Prefix); err != nil {
			return 0, err
		}
	}

	var written int
	for len(p) > 0 {
		nl := bytes.IndexByte(p, '\n')
		if nl < 0 {
			n, err := w.Sink.Write(p)
			written += n
			w.bytesAfterPrefix = n
			return written, err
		}

		n, err := w.Sink.Write(p[:nl+1])
		written += n
		if err != nil {
			return written, err
		}
		w.bytesAfterPrefix = 0

		p = p[nl+1:]
		if len(p) > 0 {
			if _, err := w.Sink.Write(w.Prefix); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}
