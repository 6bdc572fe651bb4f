package textio

import (
	"io"
	"os"

	"github.com/mehditeymorian/textkit/internal/codec"
)

// Writer encodes runes through the policy's codec onto a byte stream.
// Write calls chain; the first error sticks and is reported by Err or Close.
// Streams opened by the writer itself (from a path) are flushed and released
// by Close; externally supplied streams are borrowed.
type Writer struct {
	dst    io.Writer
	policy Policy
	state  codec.State
	outBuf []byte
	err    error
	closer io.Closer
}

// NewWriter wraps a byte stream with the given policy.
func NewWriter(w io.Writer, policy Policy) *Writer {
	return &Writer{dst: w, policy: policy}
}

// NewWriterToFile creates the named file and writes through the policy. The
// file is owned by the writer and closed by Close.
func NewWriterToFile(path string, policy Policy) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := NewWriter(f, policy)
	w.closer = f
	return w, nil
}

// Write encodes and writes a string.
func (w *Writer) Write(s string) *Writer {
	return w.WriteRunes([]rune(s))
}

// WriteRunes encodes and writes a rune sequence.
func (w *Writer) WriteRunes(ws []rune) *Writer {
	if w.err != nil {
		return w
	}
	if w.outBuf == nil {
		w.outBuf = make([]byte, w.policy.MaxBufSize()*4)
	}
	for len(ws) > 0 {
		res, nSrc, nDst := w.policy.encode(&w.state, ws, w.outBuf)
		if nDst > 0 {
			if _, err := w.dst.Write(w.outBuf[:nDst]); err != nil {
				w.err = err
				return w
			}
		}
		ws = ws[nSrc:]
		switch res {
		case codec.ResError:
			w.err = ErrDecode
			return w
		case codec.ResPartial:
			if nSrc == 0 && nDst == 0 {
				w.err = ErrDecode
				return w
			}
		default:
			return w
		}
	}
	return w
}

// WriteEndl writes a line break.
func (w *Writer) WriteEndl() *Writer {
	return w.Write("\n")
}

// Err returns the first write or encode error observed, if any.
func (w *Writer) Err() error { return w.err }

// Close releases a stream owned by the writer; it is a no-op for borrowed
// streams. The first sticky error, if any, is returned.
func (w *Writer) Close() error {
	if w.closer != nil {
		c := w.closer
		w.closer = nil
		if err := c.Close(); err != nil && w.err == nil {
			w.err = err
		}
	}
	return w.err
}
