package codec

import "github.com/mehditeymorian/textkit/internal/unicodex"

// UTF16Mode is the policy of a UTF-16 codec. When no byte order was assigned
// and headers are consumed, the order is detected from the first input chunk.
type UTF16Mode struct {
	Headers           Headers
	ByteOrder         unicodex.ByteOrder
	ByteOrderAssigned bool
}

// UTF16 converts between UTF-16 byte sequences and runes.
type UTF16 struct {
	Mode UTF16Mode
}

// NewUTF16 returns a UTF-16 codec with the given mode.
func NewUTF16(mode UTF16Mode) *UTF16 { return &UTF16{Mode: mode} }

// decodeOrder resolves the byte order for decoding, detecting it from the
// first chunk when the mode leaves it open.
func (c *UTF16) decodeOrder(state *State, src []byte) unicodex.ByteOrder {
	if c.Mode.ByteOrderAssigned {
		return c.Mode.ByteOrder
	}
	if state.ByteOrderKnown {
		return state.ByteOrder
	}
	order := unicodex.PlatformByteOrder
	if c.Mode.Headers == ConsumeHeader {
		if detected, ok := unicodex.TryDetectByteOrder(src); ok {
			order = detected
		}
	}
	state.ByteOrder = order
	state.ByteOrderKnown = true
	return order
}

func (c *UTF16) encodeOrder() unicodex.ByteOrder {
	if c.Mode.ByteOrderAssigned {
		return c.Mode.ByteOrder
	}
	return unicodex.PlatformByteOrder
}

// Decode converts src bytes into dst runes. Byte pairs are read in the
// resolved order; a high surrogate unit followed by a low one combines into a
// single rune, and a lone half passes through. An odd trailing byte, or a
// high surrogate unit at the end of the chunk, yields ResPartial.
func (c *UTF16) Decode(state *State, src []byte, dst []rune) (Result, int, int) {
	order := c.decodeOrder(state, src)
	nSrc, nDst := 0, 0
	unit := func(at int) rune {
		if order == unicodex.BigEndian {
			return rune(src[at])<<8 | rune(src[at+1])
		}
		return rune(src[at+1])<<8 | rune(src[at])
	}
	for nSrc < len(src) {
		if nDst >= len(dst) {
			return ResPartial, nSrc, nDst
		}
		if len(src)-nSrc < 2 {
			return ResPartial, nSrc, nDst
		}
		cp := unit(nSrc)
		consumed := 2
		if unicodex.IsHighSurrogate(cp) {
			if len(src)-nSrc < 4 {
				// wait for the low half
				return ResPartial, nSrc, nDst
			}
			low := unit(nSrc + 2)
			if full, ok := unicodex.FromSurrogatePair(cp, low); ok {
				cp = full
				consumed = 4
			}
		}
		if state.Phase == PhaseInitial {
			if unicodex.IsBOM(cp) {
				state.Phase = PhasePassed
				nSrc += consumed
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
		nSrc += consumed
		dst[nDst] = cp
		nDst++
	}
	return ResOK, nSrc, nDst
}

// Encode converts src runes into dst bytes in the configured order. A code
// point above U+FFFF is written as a surrogate pair; a leading BOM rune is
// dropped from the input, and a BOM pair is written first in generate mode.
func (c *UTF16) Encode(state *State, src []rune, dst []byte) (Result, int, int) {
	order := c.encodeOrder()
	nSrc, nDst := 0, 0
	put := func(u uint16) {
		if order == unicodex.BigEndian {
			dst[nDst] = byte(u >> 8)
			dst[nDst+1] = byte(u)
		} else {
			dst[nDst] = byte(u)
			dst[nDst+1] = byte(u >> 8)
		}
		nDst += 2
	}
	for nSrc < len(src) {
		cp := src[nSrc]
		if cp > unicodex.MaxChar || cp < 0 {
			return ResError, nSrc, nDst
		}
		units := 1
		if unicodex.NeedsSurrogatePair(cp) {
			units = 2
		}
		bomBytes := 0
		if state.Phase == PhaseInitial && c.Mode.Headers == GenerateHeader {
			bomBytes = 2
		}
		if len(dst)-nDst < bomBytes+units*2 {
			return ResPartial, nSrc, nDst
		}
		if state.Phase == PhaseInitial {
			state.Phase = PhasePassed
			if bomBytes > 0 {
				put(uint16(unicodex.BOM))
			}
			if unicodex.IsBOM(cp) {
				nSrc++
				continue
			}
		}
		if units == 2 {
			high, low, _ := unicodex.ToSurrogatePair(cp)
			put(uint16(high))
			put(uint16(low))
		} else {
			put(uint16(cp))
		}
		nSrc++
	}
	return ResOK, nSrc, nDst
}

// DecodeAll converts the whole input with a fresh state.
func (c *UTF16) DecodeAll(src []byte) ([]rune, Result) {
	var state State
	return decodeAll(src, func(s []byte, d []rune) (Result, int, int) {
		return c.Decode(&state, s, d)
	})
}

// EncodeAll converts the whole input with a fresh state.
func (c *UTF16) EncodeAll(src []rune) ([]byte, Result) {
	var state State
	return encodeAll(src, func(s []rune, d []byte) (Result, int, int) {
		return c.Encode(&state, s, d)
	})
}
