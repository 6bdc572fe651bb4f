// Package jsonparser is the grammar-level JSON recogniser. The push parser
// walks the token stream and drives a handler with begin/end and scalar
// events; the DOM handler in this package builds a jsondom tree from those
// events. Errors are collected, not returned.
package jsonparser

import (
	"fmt"

	"github.com/mehditeymorian/textkit/internal/diagnostics"
	"github.com/mehditeymorian/textkit/internal/jsoncommon"
	"github.com/mehditeymorian/textkit/internal/jsondom"
	"github.com/mehditeymorian/textkit/internal/jsonlexer"
	"github.com/mehditeymorian/textkit/internal/parsing"
	"github.com/mehditeymorian/textkit/internal/textio"
)

// Handler consumes push events. Counts passed to the end events are the
// number of child values or members produced in that container.
type Handler interface {
	OnBeginArray()
	OnEndArray(count int)
	OnBeginObject()
	OnEndObject(count int)
	OnMemberName(text string)
	OnLiteral(subtype jsondom.LiteralSubtype, text string)
	OnNumber(subtype jsondom.NumberSubtype, text string)
	OnString(text string)
	TextPosChanged(pos parsing.TextPos)
}

// PushParser recognises the RFC 8259 value grammar over a lexer stream and
// reports each production to the handler.
type PushParser struct {
	reader   *textio.Reader
	messages *diagnostics.Collector
	handler  Handler
	lexer    *jsonlexer.Lexer
	curr     jsonlexer.Lexeme
}

// NewPushParser wires a parser to the reader, collector and handler.
func NewPushParser(reader *textio.Reader, msgs *diagnostics.Collector, handler Handler) *PushParser {
	return &PushParser{
		reader:   reader,
		messages: msgs,
		handler:  handler,
		lexer:    jsonlexer.NewLexer(reader, msgs),
	}
}

// Run parses one document. Empty input is accepted. It returns false when
// any error was collected.
func (p *PushParser) Run() bool {
	return p.parseDoc() && !p.HasErrors()
}

// HasErrors reports whether any error was collected so far.
func (p *PushParser) HasErrors() bool { return p.messages.HasErrors() }

// Pos returns the position of the current lexeme.
func (p *PushParser) Pos() parsing.TextPos { return p.curr.Pos }

func (p *PushParser) nextLexeme() bool {
	if !p.lexer.NextLexeme(&p.curr) {
		return false
	}
	p.handler.TextPosChanged(p.curr.Pos)
	return true
}

func (p *PushParser) isCurrent(tok jsonlexer.Token) bool {
	return p.curr.Token == tok
}

func (p *PushParser) parseDoc() bool {
	result := false
	if p.nextLexeme() {
		result = p.parseValue()
	} else if p.lexer.EOF() && !p.HasErrors() {
		return true
	}
	if result && !p.lexer.EOF() {
		result = !p.nextLexeme()
		if !result {
			p.addError(jsoncommon.ErrUnexpectedLexemeFmt, p.curr.Pos,
				fmt.Sprintf(jsoncommon.MsgText(jsoncommon.ErrUnexpectedLexemeFmt), p.curr.Text))
		}
	}
	return result
}

func (p *PushParser) parseValue() bool {
	switch p.curr.Token {
	case jsonlexer.TokenBeginArray:
		return p.parseArray()
	case jsonlexer.TokenBeginObject:
		return p.parseObject()
	case jsonlexer.TokenLiteralFalse, jsonlexer.TokenLiteralNull, jsonlexer.TokenLiteralTrue:
		return p.parseLiteral()
	case jsonlexer.TokenNumberDecimal, jsonlexer.TokenNumberFloat, jsonlexer.TokenNumberInt:
		return p.parseNumber()
	case jsonlexer.TokenString:
		p.handler.OnString(p.curr.Text)
		return true
	default:
		p.addError(jsoncommon.ErrExpectedValueButFoundFmt, p.curr.Pos,
			fmt.Sprintf(jsoncommon.MsgText(jsoncommon.ErrExpectedValueButFoundFmt), p.curr.Text))
		return false
	}
}

func (p *PushParser) parseArray() bool {
	if !p.isCurrent(jsonlexer.TokenBeginArray) {
		p.addErrorKind(jsoncommon.ErrExpectedArray, p.curr.Pos)
		return false
	}
	p.handler.OnBeginArray()
	count := 0
	result := p.nextLexeme()
	if result {
		if !p.isCurrent(jsonlexer.TokenEndArray) {
			result = p.parseArrayItems(&count)
		}
		if result {
			result = p.isCurrent(jsonlexer.TokenEndArray)
		}
	}
	if !result {
		p.addErrorKind(jsoncommon.ErrUnclosedArray, p.lexer.Pos())
		return false
	}
	p.handler.OnEndArray(count)
	return true
}

func (p *PushParser) parseArrayItems(count *int) bool {
	result := true
	nextItem := true
	for result && nextItem {
		result = p.parseValue()
		if !result {
			p.addErrorKind(jsoncommon.ErrExpectedArrayItem, p.curr.Pos)
			continue
		}
		*count++
		nextItem = p.nextLexeme() && p.isCurrent(jsonlexer.TokenValueSeparator)
		if nextItem {
			result = p.nextLexeme()
			if !result {
				p.addErrorKind(jsoncommon.ErrExpectedArrayItem, p.lexer.Pos())
			}
		}
	}
	return result
}

func (p *PushParser) parseObject() bool {
	if !p.isCurrent(jsonlexer.TokenBeginObject) {
		p.addErrorKind(jsoncommon.ErrExpectedObject, p.curr.Pos)
		return false
	}
	p.handler.OnBeginObject()
	count := 0
	result := p.nextLexeme()
	if result {
		if !p.isCurrent(jsonlexer.TokenEndObject) {
			result = p.parseObjectMembers(&count)
		}
		if result {
			result = p.isCurrent(jsonlexer.TokenEndObject)
		}
	}
	if !result {
		p.addErrorKind(jsoncommon.ErrUnclosedObject, p.lexer.Pos())
		return false
	}
	p.handler.OnEndObject(count)
	return true
}

func (p *PushParser) parseObjectMembers(count *int) bool {
	result := true
	nextMember := true
	for result && nextMember {
		if !p.isCurrent(jsonlexer.TokenString) {
			p.addErrorKind(jsoncommon.ErrExpectedMemberName, p.curr.Pos)
			return false
		}
		p.handler.OnMemberName(p.curr.Text)
		*count++
		if !p.nextLexeme() {
			p.addErrorKind(jsoncommon.ErrExpectedNameSeparator, p.lexer.Pos())
			return false
		}
		if !p.isCurrent(jsonlexer.TokenNameSeparator) {
			p.addErrorKind(jsoncommon.ErrExpectedNameSeparator, p.curr.Pos)
			return false
		}
		if !p.nextLexeme() || !p.parseValue() {
			p.addErrorKind(jsoncommon.ErrExpectedValue, p.lexer.Pos())
			return false
		}
		nextMember = p.nextLexeme() && p.isCurrent(jsonlexer.TokenValueSeparator)
		if nextMember {
			result = p.nextLexeme()
			if !result {
				p.addErrorKind(jsoncommon.ErrExpectedMemberName, p.lexer.Pos())
			}
		}
	}
	return result
}

func (p *PushParser) parseLiteral() bool {
	if !jsonlexer.IsLiteralToken(p.curr.Token) {
		p.addErrorKind(jsoncommon.ErrExpectedLiteral, p.curr.Pos)
		return false
	}
	subtype, _ := jsondom.LiteralSubtypeOf(p.curr.Text)
	p.handler.OnLiteral(subtype, p.curr.Text)
	return true
}

func (p *PushParser) parseNumber() bool {
	switch p.curr.Token {
	case jsonlexer.TokenNumberDecimal, jsonlexer.TokenNumberFloat:
		p.handler.OnNumber(jsondom.NumberFloat, p.curr.Text)
		return true
	case jsonlexer.TokenNumberInt:
		p.handler.OnNumber(jsondom.NumberInt, p.curr.Text)
		return true
	default:
		p.addErrorKind(jsoncommon.ErrExpectedNumber, p.curr.Pos)
		return false
	}
}

func (p *PushParser) addErrorKind(kind jsoncommon.MsgKind, pos parsing.TextPos) {
	p.addError(kind, pos, jsoncommon.MsgText(kind))
}

func (p *PushParser) addError(kind jsoncommon.MsgKind, pos parsing.TextPos, text string) {
	p.messages.AddError(diagnostics.OriginParser, kind, pos, p.reader.SourceName(), text)
}
