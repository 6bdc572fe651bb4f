package jsonparser

import (
	"fmt"

	"github.com/mehditeymorian/textkit/internal/diagnostics"
	"github.com/mehditeymorian/textkit/internal/jsoncommon"
	"github.com/mehditeymorian/textkit/internal/jsondom"
	"github.com/mehditeymorian/textkit/internal/parsing"
	"github.com/mehditeymorian/textkit/internal/textio"
)

// DOMHandler consumes push events and builds a document. Values are created
// speculatively and attached on acceptance; a rejected value is simply
// dropped. Attachment failures are reported through the collector.
type DOMHandler struct {
	doc        *jsondom.Document
	messages   *diagnostics.Collector
	sourceName string
	pos        parsing.TextPos
	containers []*jsondom.Value
	names      []string
}

// NewDOMHandler returns a handler building into doc.
func NewDOMHandler(doc *jsondom.Document, msgs *diagnostics.Collector, sourceName string) *DOMHandler {
	return &DOMHandler{doc: doc, messages: msgs, sourceName: sourceName}
}

func (h *DOMHandler) OnLiteral(_ jsondom.LiteralSubtype, text string) {
	node, err := h.doc.CreateLiteral(text)
	if err != nil {
		h.addError(jsoncommon.ErrUnsupportedDomValueTypeFmt, err.Error())
		return
	}
	h.acceptValue(node)
}

func (h *DOMHandler) OnNumber(subtype jsondom.NumberSubtype, text string) {
	h.acceptValue(h.doc.CreateNumber(text, subtype))
}

func (h *DOMHandler) OnString(text string) {
	h.acceptValue(h.doc.CreateString(text))
}

func (h *DOMHandler) OnBeginArray() {
	node := h.doc.CreateArray()
	if h.acceptValue(node) {
		h.containers = append(h.containers, node)
	}
}

func (h *DOMHandler) OnEndArray(int) {
	h.popContainer()
}

func (h *DOMHandler) OnBeginObject() {
	node := h.doc.CreateObject()
	if h.acceptValue(node) {
		h.containers = append(h.containers, node)
	}
}

func (h *DOMHandler) OnEndObject(int) {
	h.popContainer()
}

func (h *DOMHandler) OnMemberName(text string) {
	h.names = append(h.names, text)
}

func (h *DOMHandler) TextPosChanged(pos parsing.TextPos) {
	h.pos = pos
}

func (h *DOMHandler) popContainer() {
	if len(h.containers) > 0 {
		h.containers = h.containers[:len(h.containers)-1]
	}
}

func (h *DOMHandler) popName() (string, bool) {
	if len(h.names) == 0 {
		return "", false
	}
	name := h.names[len(h.names)-1]
	h.names = h.names[:len(h.names)-1]
	return name, true
}

// acceptValue resolves the parent from the top of the container stack: the
// document root when empty, the open array, or the open object paired with
// the pending member name.
func (h *DOMHandler) acceptValue(node *jsondom.Value) bool {
	if len(h.containers) == 0 {
		if h.doc.Root() != nil {
			h.addErrorKind(jsoncommon.ErrParentIsNotContainer)
			return false
		}
		if err := h.doc.SetRoot(node); err != nil {
			h.addErrorKind(jsoncommon.ErrParentIsNotContainer)
			return false
		}
		return true
	}
	top := h.containers[len(h.containers)-1]
	switch top.Kind() {
	case jsondom.KindArray:
		if err := top.Append(node); err != nil {
			h.addErrorKind(jsoncommon.ErrParentIsNotContainer)
			return false
		}
		return true
	case jsondom.KindObject:
		name, ok := h.popName()
		if !ok || name == "" {
			h.addErrorKind(jsoncommon.ErrMemberNameIsEmpty)
			return false
		}
		if top.ContainsMember(name) {
			h.addError(jsoncommon.ErrMemberNameDuplicateFmt,
				fmt.Sprintf(jsoncommon.MsgText(jsoncommon.ErrMemberNameDuplicateFmt), name))
			return false
		}
		if err := top.AppendMember(name, node); err != nil {
			h.addErrorKind(jsoncommon.ErrParentIsNotContainer)
			return false
		}
		return true
	default:
		h.addErrorKind(jsoncommon.ErrParentIsNotContainer)
		return false
	}
}

func (h *DOMHandler) addErrorKind(kind jsoncommon.MsgKind) {
	h.addError(kind, jsoncommon.MsgText(kind))
}

func (h *DOMHandler) addError(kind jsoncommon.MsgKind, text string) {
	h.messages.AddError(diagnostics.OriginParser, kind, h.pos, h.sourceName, text)
}

// Parser is the parse-to-DOM entry: it instantiates a DOM handler on the
// user's document and drives the push parser.
type Parser struct {
	push *PushParser
}

// NewParser wires a DOM parser for the reader and document.
func NewParser(reader *textio.Reader, msgs *diagnostics.Collector, doc *jsondom.Document) *Parser {
	handler := NewDOMHandler(doc, msgs, reader.SourceName())
	return &Parser{push: NewPushParser(reader, msgs, handler)}
}

// Run parses the input into the document. False means at least one error
// was collected.
func (p *Parser) Run() bool {
	return p.push.Run() && !p.push.HasErrors()
}
