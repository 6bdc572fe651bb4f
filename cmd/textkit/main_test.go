package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCheckSuccess(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.json", `{"a":[1,2],"b":"x"}`)
	var out, errOut strings.Builder
	exitCode := run([]string{"check", path}, &out, &errOut)
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%s", exitCode, errOut.String())
	}
	if !strings.Contains(out.String(), "ok") {
		t.Fatalf("expected ok output, got %q", out.String())
	}
}

func TestCheckReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", `[null,null`)
	var out, errOut strings.Builder
	exitCode := run([]string{"check", path}, &out, &errOut)
	if exitCode != 1 {
		t.Fatalf("expected exit 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "err_unclosed_array") {
		t.Fatalf("expected unclosed array diagnostic, got %q", out.String())
	}
}

func TestCheckJSONFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", `try`)
	var out, errOut strings.Builder
	exitCode := run([]string{"check", "--format", "json", path}, &out, &errOut)
	if exitCode != 1 {
		t.Fatalf("expected exit 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), `"err_invalid_literal_fmt"`) {
		t.Fatalf("expected JSON diagnostics, got %q", out.String())
	}
}

func TestFormatPretty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.json", `{"a":1}`)
	var out, errOut strings.Builder
	exitCode := run([]string{"format", "--pretty", path}, &out, &errOut)
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%s", exitCode, errOut.String())
	}
	want := "{\n\t\"a\": 1\n}\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestDiffExitCodes(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `{"a":1}`)
	rightSame := writeFile(t, dir, "same.json", `{"a":1}`)
	rightOther := writeFile(t, dir, "other.json", `{"a":2}`)

	var out, errOut strings.Builder
	if code := run([]string{"diff", left, rightSame}, &out, &errOut); code != 0 {
		t.Fatalf("equal documents: exit %d", code)
	}
	out.Reset()
	if code := run([]string{"diff", left, rightOther}, &out, &errOut); code != 1 {
		t.Fatalf("different documents: exit %d", code)
	}
	if !strings.Contains(out.String(), "value") {
		t.Fatalf("expected value difference, got %q", out.String())
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	var out1, out2, errOut strings.Builder
	if code := run([]string{"generate", "--depth", "3", "--seed", "42"}, &out1, &errOut); code != 0 {
		t.Fatalf("generate: exit %d stderr=%s", code, errOut.String())
	}
	if code := run([]string{"generate", "--depth", "3", "--seed", "42"}, &out2, &errOut); code != 0 {
		t.Fatalf("generate: exit %d", code)
	}
	if out1.String() != out2.String() {
		t.Fatalf("same seed produced different documents")
	}
	if len(strings.TrimSpace(out1.String())) == 0 {
		t.Fatalf("generate produced no output")
	}
}

func TestGenerateConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "gen.yaml", "depth: 2\navg_children: 2\nseed: 9\n")
	var out, errOut strings.Builder
	if code := run([]string{"generate", "--config", cfg}, &out, &errOut); code != 0 {
		t.Fatalf("generate with config: exit %d stderr=%s", code, errOut.String())
	}
	if len(strings.TrimSpace(out.String())) == 0 {
		t.Fatalf("no output")
	}
}

func TestConvertUTF8ToUTF16(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "AB")
	outPath := filepath.Join(dir, "out.txt")
	var out, errOut strings.Builder
	if code := run([]string{"convert", in, outPath, "--from", "utf8", "--to", "utf16le", "--bom"}, &out, &errOut); code != 0 {
		t.Fatalf("convert: exit %d stderr=%s", code, errOut.String())
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := []byte{0xFF, 0xFE, 0x41, 0x00, 0x42, 0x00}
	if string(data) != string(want) {
		t.Fatalf("got % X, want % X", data, want)
	}
}

func TestUsageOnNoArgs(t *testing.T) {
	var out, errOut strings.Builder
	if code := run(nil, &out, &errOut); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(errOut.String(), "usage:") {
		t.Fatalf("expected usage text, got %q", errOut.String())
	}
}
