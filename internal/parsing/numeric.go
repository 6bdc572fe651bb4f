package parsing

// NumericType classifies a recognised numeric literal.
type NumericType int

const (
	NumUnknown NumericType = iota
	NumInteger
	NumDecimal
	NumFloat
)

func (t NumericType) String() string {
	switch t {
	case NumInteger:
		return "integer"
	case NumDecimal:
		return "decimal"
	case NumFloat:
		return "float"
	default:
		return "unknown"
	}
}

// NumericParser is a finite state machine recognising numbers per the JSON
// grammar: optional leading '-', no leading zero, optional fractional part
// with at least one digit, optional exponent with at least one digit. It is
// fed one character at a time and can be queried at any point for the type
// accepted so far.
type NumericParser struct {
	accepting  NumericType
	typ        NumericType
	charCount  int
	digitCount int
	value      []rune
}

// NewNumericParser returns a parser in its initial state, accepting an
// integer.
func NewNumericParser() *NumericParser {
	return &NumericParser{accepting: NumInteger}
}

// ReadString feeds every character of s and reports whether s is a valid
// number.
func (p *NumericParser) ReadString(s string) bool {
	for _, c := range s {
		if !p.ReadChar(c) {
			p.typ = NumUnknown
			break
		}
	}
	return p.IsValidNumber()
}

// ReadChar feeds one character. It returns false when the character cannot
// extend a valid number; the parser is then stuck in the unknown type.
func (p *NumericParser) ReadChar(c rune) bool {
	switch c {
	case '-':
		if p.charCount != 0 {
			p.typ = NumUnknown
			return false
		}
		p.accept(c)
	case '+':
		// only at the start of the exponent
		if p.accepting != NumFloat || p.charCount != 0 {
			p.typ = NumUnknown
			return false
		}
		p.accept(c)
	case '.':
		if p.accepting != NumInteger || p.digitCount == 0 {
			p.typ = NumUnknown
			return false
		}
		p.accept(c)
		p.accepting = NumDecimal
		p.digitCount = 0
		p.typ = NumUnknown
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if p.accepting == NumInteger && p.digitCount == 1 && p.lastDigitsAre("0") {
			p.typ = NumUnknown
			return false
		}
		p.accept(c)
		p.digitCount++
		p.typ = p.accepting
	case 'e', 'E':
		if p.accepting != NumInteger && p.accepting != NumDecimal {
			p.typ = NumUnknown
			return false
		}
		if p.digitCount == 0 {
			p.typ = NumUnknown
			return false
		}
		p.accept(c)
		p.charCount = 0
		p.digitCount = 0
		p.typ = NumUnknown
		p.accepting = NumFloat
	default:
		p.typ = NumUnknown
		return false
	}
	return true
}

func (p *NumericParser) accept(c rune) {
	p.charCount++
	p.value = append(p.value, c)
}

// lastDigitsAre reports whether the accepted text, ignoring a leading sign,
// equals s.
func (p *NumericParser) lastDigitsAre(s string) bool {
	v := p.value
	if len(v) > 0 && v[0] == '-' {
		v = v[1:]
	}
	return string(v) == s
}

// Type returns the type accepted so far; NumUnknown while the text is not
// yet (or no longer) a complete number.
func (p *NumericParser) Type() NumericType { return p.typ }

// IsValidNumber reports whether the characters fed so far form a complete
// number.
func (p *NumericParser) IsValidNumber() bool { return p.typ != NumUnknown }

// Value returns the accepted text.
func (p *NumericParser) Value() string { return string(p.value) }

// IsNumber reports whether s is a valid JSON number.
func IsNumber(s string) bool {
	return NewNumericParser().ReadString(s)
}
