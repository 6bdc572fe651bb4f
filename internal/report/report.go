// Package report turns collected diagnostics and document diffs into the
// models the CLI prints, as JSON or as pretty text.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mehditeymorian/textkit/internal/diagnostics"
	"github.com/mehditeymorian/textkit/internal/jsontools"
)

// Diagnostic is one rendered message.
type Diagnostic struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Origin   string `json:"origin"`
	Source   string `json:"source,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
}

// Summary counts messages per severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Hints    int `json:"hints"`
	Infos    int `json:"infos"`
}

// CheckModel is the output of a parse check.
type CheckModel struct {
	Source      string       `json:"source,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Summary     Summary      `json:"summary"`
}

// BuildCheck renders a collector into the check model, sorted for
// deterministic output.
func BuildCheck(source string, msgs *diagnostics.Collector) CheckModel {
	model := CheckModel{Source: source}
	for _, m := range diagnostics.Sorted(msgs.Messages()) {
		model.Diagnostics = append(model.Diagnostics, Diagnostic{
			Severity: m.Severity().String(),
			Kind:     m.Kind().String(),
			Origin:   m.Origin().String(),
			Source:   m.Source(),
			Line:     m.Pos().Line,
			Column:   m.Pos().Col,
			Message:  m.Text(),
		})
	}
	model.Summary = Summary{
		Errors:   len(msgs.Errors()),
		Warnings: len(msgs.Warnings()),
		Hints:    len(msgs.Hints()),
		Infos:    len(msgs.Infos()),
	}
	return model
}

// DiffEntry is one rendered document difference.
type DiffEntry struct {
	Kind      string `json:"kind"`
	LeftText  string `json:"left_text"`
	RightText string `json:"right_text"`
	LeftKind  string `json:"left_kind"`
	RightKind string `json:"right_kind"`
}

// DiffModel is the output of a document comparison.
type DiffModel struct {
	Left    string      `json:"left"`
	Right   string      `json:"right"`
	Equal   bool        `json:"equal"`
	Entries []DiffEntry `json:"differences"`
}

// BuildDiff renders a document diff into the diff model.
func BuildDiff(left, right string, diff *jsontools.DocumentDiff) DiffModel {
	model := DiffModel{Left: left, Right: right, Equal: !diff.HasDifferences()}
	for _, item := range diff.Items() {
		model.Entries = append(model.Entries, DiffEntry{
			Kind:      item.Kind.String(),
			LeftText:  item.Left.Text(),
			RightText: item.Right.Text(),
			LeftKind:  item.Left.Kind().String(),
			RightKind: item.Right.Kind().String(),
		})
	}
	return model
}

// WriteJSON writes any model as indented JSON.
func WriteJSON(w io.Writer, model any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(model)
}

// WriteCheckPretty writes the check model as human-readable lines.
func WriteCheckPretty(w io.Writer, model CheckModel) {
	for _, d := range model.Diagnostics {
		fmt.Fprintf(w, "%s(%d,%d): %s %s: %s\n", d.Source, d.Line, d.Column, d.Severity, d.Kind, d.Message)
	}
	if model.Summary.Errors == 0 {
		fmt.Fprintln(w, "ok")
		return
	}
	fmt.Fprintf(w, "%d error(s)\n", model.Summary.Errors)
}

// WriteDiffPretty writes the diff model as human-readable lines.
func WriteDiffPretty(w io.Writer, model DiffModel) {
	if model.Equal {
		fmt.Fprintln(w, "documents are equal")
		return
	}
	for _, e := range model.Entries {
		left := summarizeValue(e.LeftKind, e.LeftText)
		right := summarizeValue(e.RightKind, e.RightText)
		fmt.Fprintf(w, "%s: %s != %s\n", e.Kind, left, right)
	}
	fmt.Fprintf(w, "%d difference(s)\n", len(model.Entries))
}

func summarizeValue(kind, text string) string {
	if text == "" {
		return kind
	}
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return fmt.Sprintf("%s %q", kind, strings.ToValidUTF8(text, "?"))
}
