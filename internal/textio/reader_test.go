package textio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mehditeymorian/textkit/internal/codec"
	"github.com/mehditeymorian/textkit/internal/unicodex"
)

func TestReaderNextAndPeek(t *testing.T) {
	r := NewReaderFromString("ab", "mem")
	if c, ok := r.Peek(); !ok || c != 'a' {
		t.Fatalf("peek: got %q,%v", c, ok)
	}
	if c, ok := r.NextChar(); !ok || c != 'a' {
		t.Fatalf("first: got %q,%v", c, ok)
	}
	if !r.IsNextChar('b') {
		t.Fatalf("IsNextChar failed")
	}
	if !r.IsNextCharOf('x', 'b') {
		t.Fatalf("IsNextCharOf failed")
	}
	if r.IsNextCharOf('x', 'y') {
		t.Fatalf("IsNextCharOf matched wrong char")
	}
	if c, ok := r.NextChar(); !ok || c != 'b' {
		t.Fatalf("second: got %q,%v", c, ok)
	}
	if _, ok := r.NextChar(); ok {
		t.Fatalf("expected end of stream")
	}
	if !r.EOF() {
		t.Fatalf("expected EOF")
	}
	if r.Count() != 2 {
		t.Fatalf("count %d, want 2", r.Count())
	}
	if r.SourceName() != "mem" {
		t.Fatalf("source name %q", r.SourceName())
	}
}

func TestReaderUTF8Stream(t *testing.T) {
	input := []byte{0xEF, 0xBB, 0xBF, 0x41, 0xD0, 0x96, 0x42}
	r := NewReader(bytes.NewReader(input), UTF8Policy{Mode: codec.UTF8Mode{Headers: codec.ConsumeHeader}}, "in")
	got := r.ReadAll()
	if string(got) != "AЖB" {
		t.Fatalf("got %q", string(got))
	}
	if r.Err() != nil {
		t.Fatalf("unexpected error: %v", r.Err())
	}
}

func TestReaderUTF16Stream(t *testing.T) {
	input := []byte{0xFF, 0xFE, 0x41, 0x00, 0x16, 0x04}
	r := NewReader(bytes.NewReader(input), UTF16Policy{Mode: codec.UTF16Mode{Headers: codec.ConsumeHeader}}, "in")
	if got := r.ReadAll(); string(got) != "AЖ" {
		t.Fatalf("got %q", string(got))
	}
}

func TestReaderSmallBufferRefills(t *testing.T) {
	text := strings.Repeat("x", 100) + "Ж"
	r := NewReader(strings.NewReader(text), UTF8Policy{BufSize: 8}, "in")
	got := r.ReadAll()
	if string(got) != text {
		t.Fatalf("refill lost data: %d chars", len(got))
	}
}

func TestReaderDecodeError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x41, 0x80}), UTF8Policy{}, "in")
	if c, ok := r.NextChar(); !ok || c != 'A' {
		t.Fatalf("first char: %q,%v", c, ok)
	}
	if _, ok := r.NextChar(); ok {
		t.Fatalf("expected decode failure")
	}
	if !errors.Is(r.Err(), ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", r.Err())
	}
	if r.EOF() {
		t.Fatalf("a failed stream must not report EOF")
	}
}

func TestReaderANSIStream(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xC6, 0x41}), ANSIPolicy{Mode: codec.ANSIMode{Encoding: codec.CP1251}}, "in")
	if got := r.ReadAll(); string(got) != "ЖA" {
		t.Fatalf("got %q", string(got))
	}
}

func TestReaderFromFileOwnsStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r, err := NewReaderFromFile(path, UTF8Policy{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := r.ReadAll(); string(got) != "hello" {
		t.Fatalf("got %q", string(got))
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second close must be a no-op: %v", err)
	}
}

func TestWriterUTF8WithBOM(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, UTF8Policy{Mode: codec.UTF8Mode{Headers: codec.GenerateHeader}})
	w.Write("AB").WriteEndl()
	if w.Err() != nil {
		t.Fatalf("unexpected error: %v", w.Err())
	}
	want := []byte{0xEF, 0xBB, 0xBF, 0x41, 0x42, 0x0A}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % X, want % X", buf.Bytes(), want)
	}
}

func TestWriterUTF16BE(t *testing.T) {
	var buf bytes.Buffer
	mode := codec.UTF16Mode{Headers: codec.GenerateHeader, ByteOrder: unicodex.BigEndian, ByteOrderAssigned: true}
	w := NewWriter(&buf, UTF16Policy{Mode: mode})
	w.Write("A")
	want := []byte{0xFE, 0xFF, 0x00, 0x41}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % X, want % X", buf.Bytes(), want)
	}
}

func TestWriterToFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	policy := UTF16Policy{Mode: codec.UTF16Mode{Headers: codec.GenerateHeader}}
	w, err := NewWriterToFile(path, policy)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w.Write("Жx")
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err := NewReaderFromFile(path, UTF16Policy{Mode: codec.UTF16Mode{Headers: codec.ConsumeHeader}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	if got := r.ReadAll(); string(got) != "Жx" {
		t.Fatalf("round trip got %q", string(got))
	}
}

func TestPlainPolicyPassThrough(t *testing.T) {
	// plain keeps a BOM character untouched
	r := NewReader(bytes.NewReader([]byte("\uFEFFabc")), PlainPolicy{}, "in")
	got := r.ReadAll()
	if len(got) != 4 || got[0] != 0xFEFF {
		t.Fatalf("plain policy transformed input: %q", string(got))
	}
}
