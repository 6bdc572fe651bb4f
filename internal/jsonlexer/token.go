// Package jsonlexer tokenises a character stream into JSON lexemes with
// precise source positions.
package jsonlexer

import "github.com/mehditeymorian/textkit/internal/parsing"

// Token is a JSON lexeme kind per RFC 8259.
type Token int

const (
	TokenUnknown Token = iota
	TokenBeginArray
	TokenBeginObject
	TokenEndArray
	TokenEndObject
	TokenLiteralFalse
	TokenLiteralNull
	TokenLiteralTrue
	TokenNameSeparator
	TokenNumberDecimal
	TokenNumberFloat
	TokenNumberInt
	TokenString
	TokenValueSeparator
)

var tokenNames = [...]string{
	TokenUnknown:        "unknown",
	TokenBeginArray:     "begin_array",
	TokenBeginObject:    "begin_object",
	TokenEndArray:       "end_array",
	TokenEndObject:      "end_object",
	TokenLiteralFalse:   "literal_false",
	TokenLiteralNull:    "literal_null",
	TokenLiteralTrue:    "literal_true",
	TokenNameSeparator:  "name_separator",
	TokenNumberDecimal:  "number_decimal",
	TokenNumberFloat:    "number_float",
	TokenNumberInt:      "number_int",
	TokenString:         "string",
	TokenValueSeparator: "value_separator",
}

func (t Token) String() string {
	if int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return "unsupported"
}

// IsNumberToken reports whether t is one of the number tokens.
func IsNumberToken(t Token) bool {
	return t == TokenNumberDecimal || t == TokenNumberFloat || t == TokenNumberInt
}

// IsLiteralToken reports whether t is one of the literal tokens.
func IsLiteralToken(t Token) bool {
	return t == TokenLiteralFalse || t == TokenLiteralNull || t == TokenLiteralTrue
}

// IsValueToken reports whether t can start a JSON value.
func IsValueToken(t Token) bool {
	return t == TokenBeginArray || t == TokenBeginObject || t == TokenString ||
		IsNumberToken(t) || IsLiteralToken(t)
}

// Lexeme is a token together with its source position and text. For strings
// the text is the already unescaped value.
type Lexeme struct {
	Pos   parsing.TextPos
	Token Token
	Text  string
}

// Reset overwrites the lexeme in place.
func (l *Lexeme) Reset(pos parsing.TextPos, tok Token, text string) {
	l.Pos = pos
	l.Token = tok
	l.Text = text
}
