// Package jsoncommon holds what the JSON lexer, parser and DOM all share:
// the parser message kinds with their texts, and the string escape rules of
// RFC 8259.
package jsoncommon

import (
	"fmt"
	"strings"

	"github.com/mehditeymorian/textkit/internal/unicodex"
)

// MsgKind enumerates every diagnostic the JSON lexer and parser can emit.
// The String form is the stable exported identifier.
type MsgKind int

const (
	// lexer
	ErrInvalidLiteralFmt MsgKind = iota + 100
	ErrInvalidNumber
	ErrReaderIO
	ErrUnallowedCharFmt
	ErrUnallowedEscapeSeq
	ErrUnclosedString
	ErrUnexpectedCharFmt
	ErrUnrecognizedEscapeSeqFmt
	// parser
	ErrExpectedArray
	ErrExpectedArrayItem
	ErrExpectedLiteral
	ErrExpectedMemberName
	ErrExpectedNameSeparator
	ErrExpectedNumber
	ErrExpectedObject
	ErrExpectedString
	ErrExpectedValue
	ErrExpectedValueButFoundFmt
	ErrMemberNameDuplicateFmt
	ErrMemberNameIsEmpty
	ErrParentIsNotContainer
	ErrUnclosedArray
	ErrUnclosedObject
	ErrUnexpectedLexemeFmt
	ErrUnexpectedTextEnd
	ErrUnsupportedDomValueTypeFmt
)

var msgKindNames = map[MsgKind]string{
	ErrInvalidLiteralFmt:          "err_invalid_literal_fmt",
	ErrInvalidNumber:              "err_invalid_number",
	ErrReaderIO:                   "err_reader_io",
	ErrUnallowedCharFmt:           "err_unallowed_char_fmt",
	ErrUnallowedEscapeSeq:         "err_unallowed_escape_seq",
	ErrUnclosedString:             "err_unclosed_string",
	ErrUnexpectedCharFmt:          "err_unexpected_char_fmt",
	ErrUnrecognizedEscapeSeqFmt:   "err_unrecognized_escape_seq_fmt",
	ErrExpectedArray:              "err_expected_array",
	ErrExpectedArrayItem:          "err_expected_array_item",
	ErrExpectedLiteral:            "err_expected_literal",
	ErrExpectedMemberName:         "err_expected_member_name",
	ErrExpectedNameSeparator:      "err_expected_name_separator",
	ErrExpectedNumber:             "err_expected_number",
	ErrExpectedObject:             "err_expected_object",
	ErrExpectedString:             "err_expected_string",
	ErrExpectedValue:              "err_expected_value",
	ErrExpectedValueButFoundFmt:   "err_expected_value_but_found_fmt",
	ErrMemberNameDuplicateFmt:     "err_member_name_duplicate_fmt",
	ErrMemberNameIsEmpty:          "err_member_name_is_empty",
	ErrParentIsNotContainer:       "err_parent_is_not_container",
	ErrUnclosedArray:              "err_unclosed_array",
	ErrUnclosedObject:             "err_unclosed_object",
	ErrUnexpectedLexemeFmt:        "err_unexpected_lexeme_fmt",
	ErrUnexpectedTextEnd:          "err_unexpected_text_end",
	ErrUnsupportedDomValueTypeFmt: "err_unsupported_dom_value_type_fmt",
}

func (k MsgKind) String() string {
	if name, ok := msgKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("msg_kind(%d)", int(k))
}

// MsgText returns the English text of a message kind. Kinds suffixed _fmt
// take arguments through fmt verbs.
func MsgText(kind MsgKind) string {
	switch kind {
	case ErrInvalidLiteralFmt:
		return "Invalid literal '%s'. Expected 'false', 'true' or 'null'"
	case ErrInvalidNumber:
		return "Invalid number"
	case ErrReaderIO:
		return "Text reader I/O error"
	case ErrUnallowedCharFmt:
		return "Unallowed character: %c (0x%X)"
	case ErrUnallowedEscapeSeq:
		return "Invalid escape sequence. Expected '\\u' terminated with 4 hexadecimal digits '\\uXXXX'"
	case ErrUnclosedString:
		return "Unclosed string"
	case ErrUnexpectedCharFmt:
		return "Unexpected character: %c (0x%X)"
	case ErrUnrecognizedEscapeSeqFmt:
		return "Unrecognized character escape sequence: %s"
	case ErrExpectedArray:
		return "Array expected"
	case ErrExpectedArrayItem:
		return "Array item expected"
	case ErrExpectedLiteral:
		return "Literal expected"
	case ErrExpectedMemberName:
		return "Object member name expected"
	case ErrExpectedNameSeparator:
		return "Name separator ':' expected"
	case ErrExpectedNumber:
		return "Number expected"
	case ErrExpectedObject:
		return "Object expected"
	case ErrExpectedString:
		return "String expected"
	case ErrExpectedValue:
		return "Expected value"
	case ErrExpectedValueButFoundFmt:
		return "Expected value but '%s' found"
	case ErrMemberNameDuplicateFmt:
		return "Duplicate member name '%s'"
	case ErrMemberNameIsEmpty:
		return "Member name is empty"
	case ErrParentIsNotContainer:
		return "Parent DOM value is not container"
	case ErrUnclosedArray:
		return "Unclosed array"
	case ErrUnclosedObject:
		return "Unclosed object"
	case ErrUnexpectedLexemeFmt:
		return "Unexpected '%s'"
	case ErrUnexpectedTextEnd:
		return "Unexpected end of text"
	case ErrUnsupportedDomValueTypeFmt:
		return "Unsupported DOM value type: %s"
	default:
		return fmt.Sprintf("Unsupported message %d", int(kind))
	}
}

// IsUnescaped reports whether c may appear in a JSON string without
// escaping: U+0020, U+0021, U+0023..U+005B, U+005D and above, excluding the
// UTF-16 noncharacters.
func IsUnescaped(c rune) bool {
	return !unicodex.IsNoncharacter(c) &&
		(c == 0x20 || c == 0x21 ||
			(c >= 0x23 && c <= 0x5B) ||
			c >= 0x5D)
}

// EscapeChar renders one character in its escaped form: the canonical short
// escapes where they exist, \uXXXX otherwise. A code point above U+FFFF is
// written as an escaped surrogate pair.
func EscapeChar(c rune) string {
	switch c {
	case '"':
		return `\"`
	case '\\':
		return `\\`
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	}
	if high, low, ok := unicodex.ToSurrogatePair(c); ok {
		return fmt.Sprintf(`\u%04X\u%04X`, high, low)
	}
	return fmt.Sprintf(`\u%04X`, c)
}

// ToEscaped renders s with every character that is not unescaped replaced by
// its escape. With forceNumeric every character is escaped, which is used
// for unambiguous diff reporting.
func ToEscaped(s string, forceNumeric bool) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, c := range s {
		if forceNumeric || !IsUnescaped(c) {
			b.WriteString(EscapeChar(c))
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ToUnescaped decodes the escape sequences of s: the backslash-decodable set
// and \uXXXX, combining adjacent escaped surrogate halves. Unknown sequences
// are left literal.
func ToUnescaped(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		if c != '\\' || i+1 >= len(rs) {
			b.WriteRune(c)
			continue
		}
		switch rs[i+1] {
		case '"', '\\', '/':
			b.WriteRune(rs[i+1])
			i++
		case 'b':
			b.WriteRune('\b')
			i++
		case 'f':
			b.WriteRune('\f')
			i++
		case 'n':
			b.WriteRune('\n')
			i++
		case 'r':
			b.WriteRune('\r')
			i++
		case 't':
			b.WriteRune('\t')
			i++
		case 'u':
			u, ok := hex4(rs, i+2)
			if !ok {
				b.WriteRune(c)
				continue
			}
			i += 5
			if unicodex.IsHighSurrogate(u) && i+6 < len(rs) && rs[i+1] == '\\' && rs[i+2] == 'u' {
				if low, ok := hex4(rs, i+3); ok {
					if full, ok := unicodex.FromSurrogatePair(u, low); ok {
						u = full
						i += 6
					}
				}
			}
			b.WriteRune(u)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// RunesToString builds a string from UTF-16-style runes: adjacent surrogate
// halves combine into one code point; a lone half degrades to U+FFFD, which
// is as close as a Go string can carry it.
func RunesToString(rs []rune) string {
	return unicodex.ToUTF8String(rs)
}

func hex4(rs []rune, at int) (rune, bool) {
	if at+4 > len(rs) {
		return 0, false
	}
	var v rune
	for i := 0; i < 4; i++ {
		d := rs[at+i]
		switch {
		case d >= '0' && d <= '9':
			v = v<<4 | (d - '0')
		case d >= 'a' && d <= 'f':
			v = v<<4 | (d - 'a' + 10)
		case d >= 'A' && d <= 'F':
			v = v<<4 | (d - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
