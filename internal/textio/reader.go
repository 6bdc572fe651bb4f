package textio

import (
	"errors"
	"io"
	"os"

	"github.com/mehditeymorian/textkit/internal/codec"
)

// ErrDecode is recorded when the policy's codec rejects the byte stream.
var ErrDecode = errors.New("textio: invalid byte sequence")

// Reader yields runes from a byte or rune stream, applying the policy's
// codec and buffering decoded characters for lookahead. It owns exactly one
// conversion state. Streams opened by the reader itself (from a path) are
// released by Close; externally supplied streams are borrowed.
type Reader struct {
	src    io.Reader
	runes  []rune
	runeAt int
	isWide bool

	policy Policy
	state  codec.State
	carry  []byte
	inBuf  []byte

	chars  []rune
	charAt int

	sourceName string
	count      int64
	srcEOF     bool
	err        error
	closer     io.Closer
}

// NewReader wraps a byte stream with the given policy.
func NewReader(r io.Reader, policy Policy, sourceName string) *Reader {
	return &Reader{src: r, policy: policy, sourceName: sourceName}
}

// NewReaderFromRunes wraps an in-memory rune sequence; the policy codec is
// bypassed, as for any wide stream.
func NewReaderFromRunes(ws []rune, sourceName string) *Reader {
	return &Reader{runes: ws, isWide: true, policy: PlainPolicy{}, sourceName: sourceName}
}

// NewReaderFromString wraps an in-memory string.
func NewReaderFromString(s string, sourceName string) *Reader {
	return NewReaderFromRunes([]rune(s), sourceName)
}

// NewReaderFromFile opens the named file in binary mode and reads it through
// the policy. The file is owned by the reader and closed by Close.
func NewReaderFromFile(path string, policy Policy) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f, policy, path)
	r.closer = f
	return r, nil
}

// NextChar yields the next character; false at end of stream or on error.
func (r *Reader) NextChar() (rune, bool) {
	if !r.ensure(1) {
		return 0, false
	}
	c := r.chars[r.charAt]
	r.charAt++
	r.count++
	return c, true
}

// Peek returns the next character without consuming it.
func (r *Reader) Peek() (rune, bool) {
	if !r.ensure(1) {
		return 0, false
	}
	return r.chars[r.charAt], true
}

// IsNextChar reports whether the next character equals c, without consuming.
func (r *Reader) IsNextChar(c rune) bool {
	next, ok := r.Peek()
	return ok && next == c
}

// IsNextCharOf reports whether the next character is one of chars, without
// consuming.
func (r *Reader) IsNextCharOf(chars ...rune) bool {
	next, ok := r.Peek()
	if !ok {
		return false
	}
	for _, c := range chars {
		if next == c {
			return true
		}
	}
	return false
}

// ReadAll drains the stream into a rune slice.
func (r *Reader) ReadAll() []rune {
	var out []rune
	for {
		c, ok := r.NextChar()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

// Count returns the number of characters delivered so far.
func (r *Reader) Count() int64 { return r.count }

// EOF reports whether the stream is exhausted and the buffer drained. A
// stream stopped by a decode or I/O error is not at EOF.
func (r *Reader) EOF() bool {
	if r.ensure(1) {
		return false
	}
	return r.err == nil
}

// Err returns the first decode or I/O error observed, if any.
func (r *Reader) Err() error { return r.err }

// SourceName returns the reader's source label, usually a file path.
func (r *Reader) SourceName() string { return r.sourceName }

// SetSourceName overrides the source label used in diagnostics.
func (r *Reader) SetSourceName(name string) { r.sourceName = name }

// Close releases a stream owned by the reader; it is a no-op for borrowed
// streams.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// ensure refills the character buffer until at least n characters are
// available or the stream ends.
func (r *Reader) ensure(n int) bool {
	for len(r.chars)-r.charAt < n {
		if !r.fill() {
			return false
		}
	}
	return true
}

func (r *Reader) fill() bool {
	if r.err != nil {
		return false
	}
	if r.charAt > 0 {
		r.chars = r.chars[r.charAt:]
		r.charAt = 0
	}
	max := r.policy.MaxBufSize()
	if r.isWide {
		if r.runeAt >= len(r.runes) {
			return false
		}
		end := r.runeAt + max
		if end > len(r.runes) {
			end = len(r.runes)
		}
		r.chars = append(r.chars, r.runes[r.runeAt:end]...)
		r.runeAt = end
		return true
	}
	if r.inBuf == nil {
		r.inBuf = make([]byte, max)
	}
	dst := make([]rune, max)
	for {
		if !r.srcEOF {
			n, err := r.src.Read(r.inBuf)
			if n > 0 {
				r.carry = append(r.carry, r.inBuf[:n]...)
			}
			if err == io.EOF {
				r.srcEOF = true
			} else if err != nil {
				r.err = err
				return false
			}
		}
		if len(r.carry) == 0 {
			return false
		}
		res, nSrc, nDst := r.policy.decode(&r.state, r.carry, dst)
		r.carry = r.carry[nSrc:]
		r.chars = append(r.chars, dst[:nDst]...)
		switch res {
		case codec.ResError:
			r.err = ErrDecode
			return nDst > 0
		case codec.ResPartial:
			if nDst > 0 {
				return true
			}
			if r.srcEOF {
				// incomplete trailing sequence
				r.err = ErrDecode
				return false
			}
			// need more bytes
		default:
			if nDst > 0 {
				return true
			}
			if r.srcEOF {
				return false
			}
		}
	}
}
