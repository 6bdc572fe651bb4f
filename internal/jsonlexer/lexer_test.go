package jsonlexer

import (
	"testing"

	"github.com/mehditeymorian/textkit/internal/diagnostics"
	"github.com/mehditeymorian/textkit/internal/jsoncommon"
	"github.com/mehditeymorian/textkit/internal/parsing"
	"github.com/mehditeymorian/textkit/internal/textio"
)

func lexAll(t *testing.T, input string) ([]Lexeme, *diagnostics.Collector) {
	t.Helper()
	msgs := diagnostics.NewCollector()
	lx := NewLexer(textio.NewReaderFromString(input, "test.json"), msgs)
	var out []Lexeme
	var lex Lexeme
	for lx.NextLexeme(&lex) {
		out = append(out, lex)
	}
	return out, msgs
}

func TestLexerWellFormedTokens(t *testing.T) {
	input := "[]\n{}\nfalse null true\n\"Name 1\":\"Value 1\","
	want := []struct {
		token Token
		line  int
		col   int
		text  string
	}{
		{TokenBeginArray, 1, 1, "["},
		{TokenEndArray, 1, 2, "]"},
		{TokenBeginObject, 2, 1, "{"},
		{TokenEndObject, 2, 2, "}"},
		{TokenLiteralFalse, 3, 1, "false"},
		{TokenLiteralNull, 3, 7, "null"},
		{TokenLiteralTrue, 3, 12, "true"},
		{TokenString, 4, 1, "Name 1"},
		{TokenNameSeparator, 4, 9, ":"},
		{TokenString, 4, 10, "Value 1"},
		{TokenValueSeparator, 4, 19, ","},
	}
	got, msgs := lexAll(t, input)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.Errors()[0])
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lexemes, want %d", len(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Token != w.token || g.Pos.Line != w.line || g.Pos.Col != w.col || g.Text != w.text {
			t.Fatalf("lexeme %d: got %s %v %q, want %s (%d,%d) %q",
				i, g.Token, g.Pos, g.Text, w.token, w.line, w.col, w.text)
		}
	}
}

func TestLexerNumberTokens(t *testing.T) {
	tests := []struct {
		input string
		token Token
	}{
		{"0", TokenNumberInt},
		{"-123", TokenNumberInt},
		{"9223372036854775807", TokenNumberInt},
		{"0.5", TokenNumberDecimal},
		{"-123.456", TokenNumberDecimal},
		{"1e5", TokenNumberFloat},
		{"1.5E-10", TokenNumberFloat},
	}
	for _, tt := range tests {
		got, msgs := lexAll(t, tt.input)
		if msgs.HasErrors() {
			t.Fatalf("%q: unexpected error %v", tt.input, msgs.Errors()[0])
		}
		if len(got) != 1 || got[0].Token != tt.token || got[0].Text != tt.input {
			t.Fatalf("%q: got %+v, want %s", tt.input, got, tt.token)
		}
	}
}

func TestLexerErrorsWithPositions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  jsoncommon.MsgKind
		pos   parsing.TextPos
	}{
		{"bad literal", "try", jsoncommon.ErrInvalidLiteralFmt, parsing.TextPos{Line: 1, Col: 1}},
		{"trailing dot", "123.", jsoncommon.ErrInvalidNumber, parsing.TextPos{Line: 1, Col: 4}},
		{"short unicode escape", "\"\\u123\"", jsoncommon.ErrUnallowedEscapeSeq, parsing.TextPos{Line: 1, Col: 2}},
		{"newline in string", "\"Hello\n", jsoncommon.ErrUnallowedCharFmt, parsing.TextPos{Line: 1, Col: 7}},
		{"lone quote", "\"", jsoncommon.ErrUnclosedString, parsing.TextPos{Line: 1, Col: 1}},
		{"stray character", "@", jsoncommon.ErrUnexpectedCharFmt, parsing.TextPos{Line: 1, Col: 1}},
		{"unknown escape", "\"a\\x\"", jsoncommon.ErrUnrecognizedEscapeSeqFmt, parsing.TextPos{Line: 1, Col: 3}},
	}
	for _, tt := range tests {
		_, msgs := lexAll(t, tt.input)
		if !msgs.HasErrors() {
			t.Fatalf("%s: expected an error", tt.name)
		}
		first := msgs.Errors()[0]
		if first.Kind() != tt.kind {
			t.Fatalf("%s: got kind %v, want %v", tt.name, first.Kind(), tt.kind)
		}
		if first.Pos() != tt.pos {
			t.Fatalf("%s: got pos %v, want %v", tt.name, first.Pos(), tt.pos)
		}
		if first.Source() != "test.json" {
			t.Fatalf("%s: source %q", tt.name, first.Source())
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"a\"b"`, `a"b`},
		{`"a\\b"`, `a\b`},
		{`"a\/b"`, "a/b"},
		{`"\b\f\n\r\t"`, "\b\f\n\r\t"},
		{`"\u0041"`, "A"},
		{`"\u0416"`, "Ж"},
		{`"\uD834\uDD1E"`, "\U0001D11E"},
	}
	for _, tt := range tests {
		got, msgs := lexAll(t, tt.input)
		if msgs.HasErrors() {
			t.Fatalf("%q: unexpected error %v", tt.input, msgs.Errors()[0])
		}
		if len(got) != 1 || got[0].Token != TokenString || got[0].Text != tt.want {
			t.Fatalf("%q: got %+v, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLexerEmptyInput(t *testing.T) {
	got, msgs := lexAll(t, "")
	if len(got) != 0 || msgs.HasMessages() {
		t.Fatalf("empty input produced lexemes or messages")
	}
	got, msgs = lexAll(t, "  \t\r\n ")
	if len(got) != 0 || msgs.HasMessages() {
		t.Fatalf("whitespace input produced lexemes or messages")
	}
}

func TestTokenPredicates(t *testing.T) {
	if !IsNumberToken(TokenNumberInt) || !IsNumberToken(TokenNumberFloat) || !IsNumberToken(TokenNumberDecimal) {
		t.Fatalf("IsNumberToken broken")
	}
	if !IsLiteralToken(TokenLiteralNull) || IsLiteralToken(TokenString) {
		t.Fatalf("IsLiteralToken broken")
	}
	if !IsValueToken(TokenBeginArray) || !IsValueToken(TokenString) || IsValueToken(TokenEndArray) {
		t.Fatalf("IsValueToken broken")
	}
	if TokenBeginArray.String() != "begin_array" || TokenNumberDecimal.String() != "number_decimal" {
		t.Fatalf("token names broken")
	}
}
