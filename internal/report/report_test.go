package report

import (
	"strings"
	"testing"

	"github.com/mehditeymorian/textkit/internal/diagnostics"
	"github.com/mehditeymorian/textkit/internal/jsoncommon"
	"github.com/mehditeymorian/textkit/internal/jsondom"
	"github.com/mehditeymorian/textkit/internal/jsontools"
	"github.com/mehditeymorian/textkit/internal/parsing"
)

func TestBuildCheck(t *testing.T) {
	msgs := diagnostics.NewCollector()
	msgs.AddError(diagnostics.OriginLexer, jsoncommon.ErrUnclosedString,
		parsing.TextPos{Line: 2, Col: 7}, "in.json", "Unclosed string")
	msgs.Add(diagnostics.OriginParser, diagnostics.SeverityWarning, jsoncommon.ErrExpectedValue,
		parsing.TextPos{Line: 1, Col: 1}, "in.json", "something odd")

	model := BuildCheck("in.json", msgs)
	if model.Summary.Errors != 1 || model.Summary.Warnings != 1 {
		t.Fatalf("summary %+v", model.Summary)
	}
	if len(model.Diagnostics) != 2 {
		t.Fatalf("diagnostics %d", len(model.Diagnostics))
	}
	// sorted by position, so the warning at (1,1) comes first
	if model.Diagnostics[0].Line != 1 || model.Diagnostics[1].Kind != "err_unclosed_string" {
		t.Fatalf("ordering wrong: %+v", model.Diagnostics)
	}
}

func TestWriteCheckPretty(t *testing.T) {
	msgs := diagnostics.NewCollector()
	msgs.AddError(diagnostics.OriginLexer, jsoncommon.ErrInvalidNumber,
		parsing.TextPos{Line: 1, Col: 4}, "in.json", "Invalid number")
	var sb strings.Builder
	WriteCheckPretty(&sb, BuildCheck("in.json", msgs))
	out := sb.String()
	if !strings.Contains(out, "in.json(1,4): error err_invalid_number: Invalid number") {
		t.Fatalf("missing diagnostic line: %q", out)
	}
	if !strings.Contains(out, "1 error(s)") {
		t.Fatalf("missing summary: %q", out)
	}
}

func TestWriteCheckPrettyOK(t *testing.T) {
	var sb strings.Builder
	WriteCheckPretty(&sb, BuildCheck("in.json", diagnostics.NewCollector()))
	if !strings.Contains(sb.String(), "ok") {
		t.Fatalf("expected ok, got %q", sb.String())
	}
}

func TestBuildDiffAndJSON(t *testing.T) {
	parse := func(text string) *jsondom.Document {
		doc := jsondom.NewDocument()
		if !jsontools.NewDocumentReader(doc).ReadString(text) {
			t.Fatalf("parse %q failed", text)
		}
		return doc
	}
	diff := jsontools.MakeDiffWith(parse(`"x"`), parse(`"y"`),
		jsontools.DiffOptions{CaseSensitive: true, CompareAll: true})
	model := BuildDiff("l.json", "r.json", diff)
	if model.Equal || len(model.Entries) != 1 || model.Entries[0].Kind != "value" {
		t.Fatalf("model %+v", model)
	}

	var sb strings.Builder
	if err := WriteJSON(&sb, model); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(sb.String(), `"differences"`) {
		t.Fatalf("JSON output %q", sb.String())
	}

	sb.Reset()
	WriteDiffPretty(&sb, model)
	if !strings.Contains(sb.String(), "1 difference(s)") {
		t.Fatalf("pretty output %q", sb.String())
	}
}

func TestWriteDiffPrettyEqual(t *testing.T) {
	var sb strings.Builder
	WriteDiffPretty(&sb, DiffModel{Equal: true})
	if !strings.Contains(sb.String(), "documents are equal") {
		t.Fatalf("got %q", sb.String())
	}
}
