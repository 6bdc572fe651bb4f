package jsontools

import (
	"strings"

	"github.com/mehditeymorian/textkit/internal/jsoncommon"
	"github.com/mehditeymorian/textkit/internal/jsondom"
	"github.com/mehditeymorian/textkit/internal/textio"
)

// WriterConfig configures serialisation. In pretty mode every value starts
// on its own line, indented by one tab per depth level past the root, and
// member names are followed by ": " instead of ":".
type WriterConfig struct {
	PrettyPrint bool
}

// DocumentWriter serialises a document by driving the DOM iterator through a
// text writer.
type DocumentWriter struct {
	doc    *jsondom.Document
	Config WriterConfig
}

// NewDocumentWriter returns a writer for doc.
func NewDocumentWriter(doc *jsondom.Document) *DocumentWriter {
	return &DocumentWriter{doc: doc}
}

// Write streams the document through the text writer.
func (w *DocumentWriter) Write(tw *textio.Writer) error {
	pretty := w.Config.PrettyPrint
	indent := func(level int) string {
		if level > 1 {
			return strings.Repeat("\t", level-1)
		}
		return ""
	}
	nameSep := ":"
	if pretty {
		nameSep = ": "
	}
	var endings []string
	it := w.doc.Begin()
	first := true
	for !it.IsEnd() {
		if it.HasPrevSibling() {
			tw.Write(",")
		}
		if pretty && !first {
			tw.WriteEndl()
		}
		if pretty {
			tw.Write(indent(it.Level()))
		}
		v := it.Value()
		if m := v.Member(); m != nil {
			tw.Write(`"`).Write(jsoncommon.ToEscaped(m.Name(), false)).Write(`"`).Write(nameSep)
		}
		switch v.Kind() {
		case jsondom.KindLiteral, jsondom.KindNumber:
			tw.Write(v.Text())
		case jsondom.KindString:
			tw.Write(`"`).Write(jsoncommon.ToEscaped(v.Text(), false)).Write(`"`)
		case jsondom.KindArray:
			tw.Write("[")
			if v.Empty() {
				tw.Write("]")
			} else {
				endings = append(endings, "]")
			}
		case jsondom.KindObject:
			tw.Write("{")
			if v.Empty() {
				tw.Write("}")
			} else {
				endings = append(endings, "}")
			}
		}
		prevLevel := it.Level()
		it.Next()
		currLevel := it.Level()
		for i := prevLevel; i > currLevel; i-- {
			if len(endings) == 0 {
				break
			}
			if pretty {
				tw.WriteEndl().Write(indent(i - 1))
			}
			tw.Write(endings[len(endings)-1])
			endings = endings[:len(endings)-1]
		}
		first = false
	}
	return tw.Err()
}

// WriteString renders the document to a string.
func (w *DocumentWriter) WriteString() string {
	var sb strings.Builder
	tw := textio.NewWriter(&sb, textio.PlainPolicy{})
	_ = w.Write(tw)
	return sb.String()
}

// WriteToFile renders the document into the named file through the policy's
// codec.
func (w *DocumentWriter) WriteToFile(path string, policy textio.Policy) error {
	tw, err := textio.NewWriterToFile(path, policy)
	if err != nil {
		return err
	}
	if err := w.Write(tw); err != nil {
		tw.Close()
		return err
	}
	return tw.Close()
}
