package codec

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/mehditeymorian/textkit/internal/unicodex"
)

// ANSIEncoding enumerates the supported single-byte codepages.
type ANSIEncoding int

const (
	ByName ANSIEncoding = iota
	CP1250
	CP1251
	CP1252
)

func (e ANSIEncoding) String() string {
	switch e {
	case CP1250:
		return "cp1250"
	case CP1251:
		return "cp1251"
	case CP1252:
		return "cp1252"
	default:
		return "by-name"
	}
}

// ANSIMode is the policy of a single-byte codepage codec. BOM handling
// applies only on the rune side: a leading BOM rune is dropped when encoding,
// and one is prepended when decoding in generate mode.
type ANSIMode struct {
	Headers  Headers
	Encoding ANSIEncoding
	// Name selects the codepage when Encoding is ByName.
	Name string
}

// charmaps known by name, following the usual iconv and Windows spellings.
var charmapsByName = map[string]*charmap.Charmap{
	"cp1250":       charmap.Windows1250,
	"windows-1250": charmap.Windows1250,
	"cp1251":       charmap.Windows1251,
	"windows-1251": charmap.Windows1251,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-5":   charmap.ISO8859_5,
	"iso-8859-7":   charmap.ISO8859_7,
	"iso-8859-9":   charmap.ISO8859_9,
	"koi8-r":       charmap.KOI8R,
	"koi8-u":       charmap.KOI8U,
}

// ANSI converts between a single-byte codepage and runes through a
// golang.org/x/text charmap table.
type ANSI struct {
	Mode ANSIMode
	cm   *charmap.Charmap
}

// NewANSI returns an ANSI codec for the codepage selected by mode. An
// unknown by-name codepage falls back to cp1252.
func NewANSI(mode ANSIMode) *ANSI {
	var cm *charmap.Charmap
	switch mode.Encoding {
	case CP1250:
		cm = charmap.Windows1250
	case CP1251:
		cm = charmap.Windows1251
	case CP1252:
		cm = charmap.Windows1252
	default:
		cm = charmapsByName[strings.ToLower(mode.Name)]
		if cm == nil {
			cm = charmap.Windows1252
		}
	}
	return &ANSI{Mode: mode, cm: cm}
}

// Charmap exposes the resolved translation table.
func (c *ANSI) Charmap() *charmap.Charmap { return c.cm }

// Decode maps each byte to a rune. In generate mode a BOM rune is prepended
// before the first character.
func (c *ANSI) Decode(state *State, src []byte, dst []rune) (Result, int, int) {
	nSrc, nDst := 0, 0
	for nSrc < len(src) {
		if nDst >= len(dst) {
			return ResPartial, nSrc, nDst
		}
		if state.Phase == PhaseInitial {
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
		dst[nDst] = c.cm.DecodeByte(src[nSrc])
		nSrc++
		nDst++
	}
	return ResOK, nSrc, nDst
}

// Encode maps each rune to a byte. A leading BOM rune in the input is
// dropped once; a rune without a mapping in the codepage is written as '?'.
func (c *ANSI) Encode(state *State, src []rune, dst []byte) (Result, int, int) {
	nSrc, nDst := 0, 0
	for nSrc < len(src) {
		if nDst >= len(dst) {
			return ResPartial, nSrc, nDst
		}
		cp := src[nSrc]
		if state.Phase == PhaseInitial {
			state.Phase = PhasePassed
			if unicodex.IsBOM(cp) {
				nSrc++
				continue
			}
		}
		b, ok := c.cm.EncodeRune(cp)
		if !ok {
			b = '?'
		}
		dst[nDst] = b
		nSrc++
		nDst++
	}
	return ResOK, nSrc, nDst
}

// DecodeAll converts the whole input with a fresh state.
func (c *ANSI) DecodeAll(src []byte) ([]rune, Result) {
	var state State
	return decodeAll(src, func(s []byte, d []rune) (Result, int, int) {
		return c.Decode(&state, s, d)
	})
}

// EncodeAll converts the whole input with a fresh state.
func (c *ANSI) EncodeAll(src []rune) ([]byte, Result) {
	var state State
	return encodeAll(src, func(s []rune, d []byte) (Result, int, int) {
		return c.Encode(&state, s, d)
	})
}
