// Package codec implements stateful stream converters between the internal
// rune representation and external byte sequences: UTF-8, UTF-16 (LE/BE/auto)
// and single-byte ANSI codepages. Conversions may suspend mid-input when the
// output fills or the input ends inside a multi-byte sequence; the caller
// threads a State value through successive calls on the same logical stream.
package codec

import "github.com/mehditeymorian/textkit/internal/unicodex"

// Result is the outcome of one conversion call.
type Result int

const (
	// ResOK means the whole input was converted.
	ResOK Result = iota
	// ResPartial means the conversion stopped before consuming the whole
	// input: the output filled up, or the input tail is an incomplete
	// sequence. Progress up to that point is kept.
	ResPartial
	// ResError means an invalid sequence was found at the consumed position.
	ResError
	// ResNoconv means no conversion was needed.
	ResNoconv
)

func (r Result) String() string {
	switch r {
	case ResOK:
		return "ok"
	case ResPartial:
		return "partial"
	case ResError:
		return "error"
	default:
		return "noconv"
	}
}

// Headers fixes the BOM policy of a codec.
type Headers int

const (
	// ConsumeHeader drops a leading BOM on decode and never writes one on
	// encode.
	ConsumeHeader Headers = iota
	// GenerateHeader keeps or synthesises a single leading BOM on decode and
	// writes one before the first encoded character.
	GenerateHeader
)

// Phase is the two-phase indicator carried across calls on one stream.
type Phase int

const (
	PhaseInitial Phase = iota
	PhasePassed
)

// State is the conversion state for one logical stream. It records whether
// the first character has been processed and, for UTF-16, the byte order
// discovered on the first input chunk.
type State struct {
	Phase          Phase
	ByteOrder      unicodex.ByteOrder
	ByteOrderKnown bool
}

// Reset returns the state to its initial phase.
func (s *State) Reset() { *s = State{} }
