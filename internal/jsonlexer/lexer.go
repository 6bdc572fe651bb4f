package jsonlexer

import (
	"fmt"

	"github.com/mehditeymorian/textkit/internal/diagnostics"
	"github.com/mehditeymorian/textkit/internal/jsoncommon"
	"github.com/mehditeymorian/textkit/internal/parsing"
	"github.com/mehditeymorian/textkit/internal/textio"
)

// Lexer reads characters from a text reader and produces JSON lexemes.
// Errors are recorded in the collector; NextLexeme then returns false.
type Lexer struct {
	reader    *textio.Reader
	messages  *diagnostics.Collector
	c         rune
	lookAhead bool
	pos       parsing.TextPos
}

// NewLexer returns a lexer over the reader, reporting into msgs.
func NewLexer(reader *textio.Reader, msgs *diagnostics.Collector) *Lexer {
	return &Lexer{reader: reader, messages: msgs, pos: parsing.TextPos{Line: 1, Col: 0}}
}

// EOF reports whether the underlying reader is exhausted.
func (l *Lexer) EOF() bool { return l.reader.EOF() }

// HasErrors reports whether any error was collected.
func (l *Lexer) HasErrors() bool { return l.messages.HasErrors() }

// Messages returns the collector.
func (l *Lexer) Messages() *diagnostics.Collector { return l.messages }

// Pos returns the position of the character read last.
func (l *Lexer) Pos() parsing.TextPos { return l.pos }

// NextLexeme scans the next lexeme into lex. It returns false at end of
// input or after collecting an error.
func (l *Lexer) NextLexeme(lex *Lexeme) bool {
	if !l.lookAhead {
		if !l.nextChar() {
			return false
		}
	}
	l.lookAhead = false
	if !l.skipWhitespace() {
		return false
	}
	switch l.c {
	case '[':
		lex.Reset(l.pos, TokenBeginArray, "[")
		return true
	case '{':
		lex.Reset(l.pos, TokenBeginObject, "{")
		return true
	case ']':
		lex.Reset(l.pos, TokenEndArray, "]")
		return true
	case '}':
		lex.Reset(l.pos, TokenEndObject, "}")
		return true
	case '"':
		return l.handleString(lex)
	case 'f', 'n', 't':
		return l.handleLiteral(lex)
	case ':':
		lex.Reset(l.pos, TokenNameSeparator, ":")
		return true
	case ',':
		lex.Reset(l.pos, TokenValueSeparator, ",")
		return true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.handleNumber(lex)
	default:
		l.addError(jsoncommon.ErrUnexpectedCharFmt, l.pos,
			fmt.Sprintf(jsoncommon.MsgText(jsoncommon.ErrUnexpectedCharFmt), l.c, l.c))
		return false
	}
}

func (l *Lexer) handleLiteral(lex *Lexeme) bool {
	l.lookAhead = true
	pos := l.pos
	var value []rune
	for {
		value = append(value, l.c)
		if !l.nextChar() {
			if !l.reader.EOF() {
				return false
			}
			l.lookAhead = false
			break
		}
		if isWhitespace(l.c) || isStructural(l.c) {
			break
		}
	}
	text := string(value)
	switch text {
	case "false":
		lex.Reset(pos, TokenLiteralFalse, text)
	case "null":
		lex.Reset(pos, TokenLiteralNull, text)
	case "true":
		lex.Reset(pos, TokenLiteralTrue, text)
	default:
		l.addError(jsoncommon.ErrInvalidLiteralFmt, pos,
			fmt.Sprintf(jsoncommon.MsgText(jsoncommon.ErrInvalidLiteralFmt), text))
		return false
	}
	return true
}

func (l *Lexer) handleNumber(lex *Lexeme) bool {
	l.lookAhead = true
	pos := l.pos
	np := parsing.NewNumericParser()
	for {
		if !np.ReadChar(l.c) {
			l.addErrorKind(jsoncommon.ErrInvalidNumber, l.pos)
			return false
		}
		if !l.nextChar() {
			if !l.reader.EOF() {
				return false
			}
			l.lookAhead = false
			break
		}
		if isWhitespace(l.c) || isStructural(l.c) {
			break
		}
	}
	if !np.IsValidNumber() {
		l.addErrorKind(jsoncommon.ErrInvalidNumber, l.pos)
		return false
	}
	tok := TokenNumberInt
	switch np.Type() {
	case parsing.NumDecimal:
		tok = TokenNumberDecimal
	case parsing.NumFloat:
		tok = TokenNumberFloat
	}
	lex.Reset(pos, tok, np.Value())
	return true
}

func (l *Lexer) handleString(lex *Lexeme) bool {
	pos := l.pos
	var value []rune
loop:
	for !l.reader.EOF() {
		if !l.nextChar() {
			break
		}
		switch {
		case l.c == '"':
			lex.Reset(pos, TokenString, jsoncommon.RunesToString(value))
			return true
		case isEscape(l.c):
			escPos := l.pos
			if !l.nextChar() {
				break loop
			}
			switch l.c {
			case '"', '\\', '/':
				value = append(value, l.c)
			case 'b':
				value = append(value, '\b')
			case 'f':
				value = append(value, '\f')
			case 'n':
				value = append(value, '\n')
			case 'r':
				value = append(value, '\r')
			case 't':
				value = append(value, '\t')
			case 'u':
				c, ok := l.handleEscapedChar(escPos)
				if !ok {
					return false
				}
				value = append(value, c)
			default:
				l.addError(jsoncommon.ErrUnrecognizedEscapeSeqFmt, escPos,
					fmt.Sprintf(jsoncommon.MsgText(jsoncommon.ErrUnrecognizedEscapeSeqFmt), `\`+string(l.c)))
				return false
			}
		case jsoncommon.IsUnescaped(l.c):
			value = append(value, l.c)
		default:
			l.addError(jsoncommon.ErrUnallowedCharFmt, l.pos,
				fmt.Sprintf(jsoncommon.MsgText(jsoncommon.ErrUnallowedCharFmt), l.c, l.c))
		}
	}
	l.addErrorKind(jsoncommon.ErrUnclosedString, l.pos)
	return false
}

// handleEscapedChar reads the four hex digits of a \uXXXX escape. The
// decoded 16-bit unit may be a surrogate half; halves are combined when the
// string's characters are assembled.
func (l *Lexer) handleEscapedChar(start parsing.TextPos) (rune, bool) {
	var value rune
	for i := 0; i < 4; i++ {
		if !l.nextChar() || !isHexDigit(l.c) {
			l.addErrorKind(jsoncommon.ErrUnallowedEscapeSeq, start)
			return 0, false
		}
		value = value<<4 | hexValue(l.c)
	}
	return value, true
}

func (l *Lexer) nextChar() bool {
	prev := l.c
	c, ok := l.reader.NextChar()
	if !ok {
		l.c = 0
		if !l.reader.EOF() {
			l.addErrorKind(jsoncommon.ErrReaderIO, l.pos)
		}
		return false
	}
	l.c = c
	l.pos.Advance()
	if prev == '\n' {
		l.pos.Newline()
	}
	return true
}

// skipWhitespace consumes whitespace; false means the input ended (or an
// I/O error was collected) before a non-whitespace character.
func (l *Lexer) skipWhitespace() bool {
	for isWhitespace(l.c) {
		if !l.nextChar() {
			return false
		}
	}
	return true
}

func (l *Lexer) addErrorKind(kind jsoncommon.MsgKind, pos parsing.TextPos) {
	l.addError(kind, pos, jsoncommon.MsgText(kind))
}

func (l *Lexer) addError(kind jsoncommon.MsgKind, pos parsing.TextPos, text string) {
	l.messages.AddError(diagnostics.OriginLexer, kind, pos, l.reader.SourceName(), text)
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isStructural(c rune) bool {
	return c == '[' || c == '{' || c == ']' || c == '}' || c == ':' || c == ','
}

func isEscape(c rune) bool { return c == '\\' }

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c rune) rune {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
