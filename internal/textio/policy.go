// Package textio glues a codec choice to a byte or rune stream and buffers
// decoded characters for parser lookahead.
package textio

import (
	"unicode/utf8"

	"github.com/mehditeymorian/textkit/internal/codec"
)

// DefaultBufSize is the default size of the decoded character buffer.
const DefaultBufSize = 1024

// Policy fixes the encoding applied between bytes and runes plus the refill
// buffer size. Policies are immutable configuration; the conversion state
// lives in the reader or writer that applies them.
type Policy interface {
	MaxBufSize() int
	decode(st *codec.State, src []byte, dst []rune) (codec.Result, int, int)
	encode(st *codec.State, src []rune, dst []byte) (codec.Result, int, int)
}

// PlainPolicy passes characters through with no transformation and no BOM
// handling. On byte streams the bytes are taken as the platform text
// encoding, UTF-8.
type PlainPolicy struct {
	BufSize int
}

func (p PlainPolicy) MaxBufSize() int { return bufSize(p.BufSize) }

func (p PlainPolicy) decode(_ *codec.State, src []byte, dst []rune) (codec.Result, int, int) {
	nSrc, nDst := 0, 0
	for nSrc < len(src) {
		if nDst >= len(dst) {
			return codec.ResPartial, nSrc, nDst
		}
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && size == 1 && !utf8.FullRune(src[nSrc:]) {
			return codec.ResPartial, nSrc, nDst
		}
		dst[nDst] = c
		nSrc += size
		nDst++
	}
	return codec.ResOK, nSrc, nDst
}

func (p PlainPolicy) encode(_ *codec.State, src []rune, dst []byte) (codec.Result, int, int) {
	nSrc, nDst := 0, 0
	for nSrc < len(src) {
		c := src[nSrc]
		n := utf8.RuneLen(c)
		if n < 0 {
			n = utf8.RuneLen(utf8.RuneError)
			c = utf8.RuneError
		}
		if len(dst)-nDst < n {
			return codec.ResPartial, nSrc, nDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], c)
		nSrc++
	}
	return codec.ResOK, nSrc, nDst
}

// UTF8Policy decodes and encodes through the UTF-8 codec.
type UTF8Policy struct {
	BufSize int
	Mode    codec.UTF8Mode
}

func (p UTF8Policy) MaxBufSize() int { return bufSize(p.BufSize) }

func (p UTF8Policy) decode(st *codec.State, src []byte, dst []rune) (codec.Result, int, int) {
	return codec.NewUTF8(p.Mode).Decode(st, src, dst)
}

func (p UTF8Policy) encode(st *codec.State, src []rune, dst []byte) (codec.Result, int, int) {
	return codec.NewUTF8(p.Mode).Encode(st, src, dst)
}

// UTF16Policy decodes and encodes through the UTF-16 codec.
type UTF16Policy struct {
	BufSize int
	Mode    codec.UTF16Mode
}

func (p UTF16Policy) MaxBufSize() int { return bufSize(p.BufSize) }

func (p UTF16Policy) decode(st *codec.State, src []byte, dst []rune) (codec.Result, int, int) {
	return codec.NewUTF16(p.Mode).Decode(st, src, dst)
}

func (p UTF16Policy) encode(st *codec.State, src []rune, dst []byte) (codec.Result, int, int) {
	return codec.NewUTF16(p.Mode).Encode(st, src, dst)
}

// ANSIPolicy decodes and encodes through a single-byte codepage codec.
type ANSIPolicy struct {
	BufSize int
	Mode    codec.ANSIMode
}

func (p ANSIPolicy) MaxBufSize() int { return bufSize(p.BufSize) }

func (p ANSIPolicy) decode(st *codec.State, src []byte, dst []rune) (codec.Result, int, int) {
	return codec.NewANSI(p.Mode).Decode(st, src, dst)
}

func (p ANSIPolicy) encode(st *codec.State, src []rune, dst []byte) (codec.Result, int, int) {
	return codec.NewANSI(p.Mode).Encode(st, src, dst)
}

func bufSize(v int) int {
	if v <= 0 {
		return DefaultBufSize
	}
	return v
}
