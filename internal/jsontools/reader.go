// Package jsontools bundles the document-level JSON operations built on the
// DOM: reading, writing with optional pretty printing, structural diff and
// random document generation.
package jsontools

import (
	"github.com/mehditeymorian/textkit/internal/diagnostics"
	"github.com/mehditeymorian/textkit/internal/jsoncommon"
	"github.com/mehditeymorian/textkit/internal/jsondom"
	"github.com/mehditeymorian/textkit/internal/jsonparser"
	"github.com/mehditeymorian/textkit/internal/parsing"
	"github.com/mehditeymorian/textkit/internal/textio"
)

// DocumentReader parses JSON text into a document. Each Read starts from a
// clean document and collector.
type DocumentReader struct {
	doc        *jsondom.Document
	messages   *diagnostics.Collector
	sourceName string
}

// NewDocumentReader returns a reader filling doc.
func NewDocumentReader(doc *jsondom.Document) *DocumentReader {
	return &DocumentReader{doc: doc, messages: diagnostics.NewCollector()}
}

// Messages returns the diagnostics of the last Read.
func (r *DocumentReader) Messages() *diagnostics.Collector { return r.messages }

// SourceName returns the label used in diagnostics.
func (r *DocumentReader) SourceName() string { return r.sourceName }

// SetSourceName overrides the label used in diagnostics.
func (r *DocumentReader) SetSourceName(name string) { r.sourceName = name }

// Read parses from the text reader. False means errors were collected.
func (r *DocumentReader) Read(reader *textio.Reader) bool {
	r.messages.Clear()
	r.doc.Clear()
	if r.sourceName != "" {
		reader.SetSourceName(r.sourceName)
	}
	parser := jsonparser.NewParser(reader, r.messages, r.doc)
	return parser.Run()
}

// ReadString parses an in-memory JSON text.
func (r *DocumentReader) ReadString(s string) bool {
	return r.Read(textio.NewReaderFromString(s, r.sourceName))
}

// ReadFile parses the named file through the policy's codec.
func (r *DocumentReader) ReadFile(path string, policy textio.Policy) bool {
	reader, err := textio.NewReaderFromFile(path, policy)
	if err != nil {
		r.messages.Clear()
		r.doc.Clear()
		r.addIOError(err)
		return false
	}
	defer reader.Close()
	return r.Read(reader)
}

func (r *DocumentReader) addIOError(err error) {
	r.messages.AddError(diagnostics.OriginOther, jsoncommon.ErrReaderIO, parsing.NewTextPos(), r.sourceName, err.Error())
}
