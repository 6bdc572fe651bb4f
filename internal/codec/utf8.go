package codec

import "github.com/mehditeymorian/textkit/internal/unicodex"

// UTF8Mode is the policy of a UTF-8 codec.
type UTF8Mode struct {
	Headers Headers
}

// UTF8 converts between UTF-8 byte sequences and runes.
//
// Sequence lengths of 1 to 6 bytes are recognised from the lead byte
// following the classic ranges; RFC 3629 narrows the legal set to 1-4 but the
// decoder keeps the accept-and-decode behaviour and rejects only code points
// above U+10FFFF. Surrogate code units found in the source pass through
// unchanged so that malformed input survives a decode/encode round trip.
type UTF8 struct {
	Mode UTF8Mode
}

// NewUTF8 returns a UTF-8 codec with the given mode.
func NewUTF8(mode UTF8Mode) *UTF8 { return &UTF8{Mode: mode} }

// Decode converts src bytes into dst runes. It returns the result along with
// the number of bytes consumed and runes produced. An incomplete trailing
// sequence yields ResPartial with the tail left unconsumed.
func (c *UTF8) Decode(state *State, src []byte, dst []rune) (Result, int, int) {
	nSrc, nDst := 0, 0
	for nSrc < len(src) {
		if nDst >= len(dst) {
			return ResPartial, nSrc, nDst
		}
		b := src[nSrc]
		var cp rune
		n := 1
		switch {
		case b < 0x80:
			cp = rune(b)
		case b < 0xC0:
			// continuation byte in lead position
			return ResError, nSrc, nDst
		case b < 0xE0:
			n, cp = 2, rune(b&0x1F)
		case b < 0xF0:
			n, cp = 3, rune(b&0x0F)
		case b < 0xF8:
			n, cp = 4, rune(b&0x07)
		case b < 0xFC:
			n, cp = 5, rune(b&0x03)
		default:
			n, cp = 6, rune(b&0x03)
		}
		if len(src)-nSrc < n {
			return ResPartial, nSrc, nDst
		}
		for i := 1; i < n; i++ {
			cb := src[nSrc+i]
			if cb < 0x80 || cb >= 0xC0 {
				return ResError, nSrc, nDst
			}
			cp = cp<<6 | rune(cb&0x3F)
		}
		if cp > unicodex.MaxChar {
			return ResError, nSrc, nDst
		}
		if state.Phase == PhaseInitial {
			if unicodex.IsBOM(cp) {
				state.Phase = PhasePassed
				nSrc += n
				if c.Mode.Headers == GenerateHeader {
					dst[nDst] = unicodex.BOM
					nDst++
				}
				continue
			}
			if c.Mode.Headers == GenerateHeader {
				if nDst+1 >= len(dst) {
					return ResPartial, nSrc, nDst
				}
				state.Phase = PhasePassed
				dst[nDst] = unicodex.BOM
				nDst++
			} else {
				state.Phase = PhasePassed
			}
		}
		nSrc += n
		dst[nDst] = cp
		nDst++
	}
	return ResOK, nSrc, nDst
}

// Encode converts src runes into dst bytes. Adjacent surrogate halves are
// recombined; a leading BOM rune is dropped from the input, and a BOM is
// written before the first character in generate mode.
func (c *UTF8) Encode(state *State, src []rune, dst []byte) (Result, int, int) {
	nSrc, nDst := 0, 0
	for nSrc < len(src) {
		cp := src[nSrc]
		consumed := 1
		if unicodex.IsHighSurrogate(cp) && nSrc+1 < len(src) {
			if full, ok := unicodex.FromSurrogatePair(cp, src[nSrc+1]); ok {
				cp = full
				consumed = 2
			}
		}
		if cp > unicodex.MaxChar || cp < 0 {
			return ResError, nSrc, nDst
		}
		bomBytes := 0
		if state.Phase == PhaseInitial && c.Mode.Headers == GenerateHeader {
			bomBytes = 3
		}
		var n int
		switch {
		case cp < 0x80:
			n = 1
		case cp < 0x800:
			n = 2
		case cp < 0x10000:
			n = 3
		default:
			n = 4
		}
		if len(dst)-nDst < bomBytes+n {
			return ResPartial, nSrc, nDst
		}
		if state.Phase == PhaseInitial {
			state.Phase = PhasePassed
			if bomBytes > 0 {
				dst[nDst] = unicodex.BOMBytesUTF8[0]
				dst[nDst+1] = unicodex.BOMBytesUTF8[1]
				dst[nDst+2] = unicodex.BOMBytesUTF8[2]
				nDst += 3
			}
			if unicodex.IsBOM(cp) {
				nSrc += consumed
				continue
			}
		}
		switch n {
		case 1:
			dst[nDst] = byte(cp)
		case 2:
			dst[nDst] = byte(0xC0 | cp>>6)
			dst[nDst+1] = byte(0x80 | cp&0x3F)
		case 3:
			dst[nDst] = byte(0xE0 | cp>>12)
			dst[nDst+1] = byte(0x80 | cp>>6&0x3F)
			dst[nDst+2] = byte(0x80 | cp&0x3F)
		default:
			dst[nDst] = byte(0xF0 | cp>>18)
			dst[nDst+1] = byte(0x80 | cp>>12&0x3F)
			dst[nDst+2] = byte(0x80 | cp>>6&0x3F)
			dst[nDst+3] = byte(0x80 | cp&0x3F)
		}
		nDst += n
		nSrc += consumed
	}
	return ResOK, nSrc, nDst
}

// DecodeAll converts the whole input with a fresh state, growing the output
// as needed.
func (c *UTF8) DecodeAll(src []byte) ([]rune, Result) {
	var state State
	return decodeAll(src, func(s []byte, d []rune) (Result, int, int) {
		return c.Decode(&state, s, d)
	})
}

// EncodeAll converts the whole input with a fresh state, growing the output
// as needed.
func (c *UTF8) EncodeAll(src []rune) ([]byte, Result) {
	var state State
	return encodeAll(src, func(s []rune, d []byte) (Result, int, int) {
		return c.Encode(&state, s, d)
	})
}

func decodeAll(src []byte, step func([]byte, []rune) (Result, int, int)) ([]rune, Result) {
	out := make([]rune, 0, len(src)+1)
	buf := make([]rune, 256)
	for {
		res, n, m := step(src, buf)
		out = append(out, buf[:m]...)
		src = src[n:]
		switch res {
		case ResOK, ResNoconv:
			return out, ResOK
		case ResPartial:
			if n == 0 && m == 0 {
				return out, ResPartial
			}
		default:
			return out, res
		}
	}
}

func encodeAll(src []rune, step func([]rune, []byte) (Result, int, int)) ([]byte, Result) {
	out := make([]byte, 0, len(src)*2+4)
	buf := make([]byte, 512)
	for {
		res, n, m := step(src, buf)
		out = append(out, buf[:m]...)
		src = src[n:]
		switch res {
		case ResOK, ResNoconv:
			return out, ResOK
		case ResPartial:
			if n == 0 && m == 0 {
				return out, ResPartial
			}
		default:
			return out, res
		}
	}
}
