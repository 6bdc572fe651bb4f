package unicodex

import (
	"bytes"
	"testing"
)

func TestSurrogatePairMath(t *testing.T) {
	tests := []struct {
		name string
		cp   rune
		high rune
		low  rune
	}{
		{"musical G clef", 0x1D11E, 0xD834, 0xDD1E},
		{"first supplementary", 0x10000, 0xD800, 0xDC00},
		{"last valid", 0x10FFFF, 0xDBFF, 0xDFFF},
	}
	for _, tt := range tests {
		high, low, ok := ToSurrogatePair(tt.cp)
		if !ok {
			t.Fatalf("%s: expected pair for %#x", tt.name, tt.cp)
		}
		if high != tt.high || low != tt.low {
			t.Fatalf("%s: got (%#x,%#x), want (%#x,%#x)", tt.name, high, low, tt.high, tt.low)
		}
		back, ok := FromSurrogatePair(high, low)
		if !ok || back != tt.cp {
			t.Fatalf("%s: round trip got %#x, want %#x", tt.name, back, tt.cp)
		}
	}
}

func TestSurrogatePairRejectsBMP(t *testing.T) {
	if _, _, ok := ToSurrogatePair(0xFFFF); ok {
		t.Fatalf("expected no pair for BMP code point")
	}
	if _, ok := FromSurrogatePair(0x0041, 0xDC00); ok {
		t.Fatalf("expected rejection of non-surrogate high half")
	}
}

func TestSurrogateClassification(t *testing.T) {
	if !IsHighSurrogate(0xD800) || !IsHighSurrogate(0xDBFF) {
		t.Fatalf("high surrogate bounds misclassified")
	}
	if !IsLowSurrogate(0xDC00) || !IsLowSurrogate(0xDFFF) {
		t.Fatalf("low surrogate bounds misclassified")
	}
	if IsHighSurrogate(0xDC00) || IsLowSurrogate(0xDBFF) {
		t.Fatalf("surrogate halves confused")
	}
}

func TestNoncharacters(t *testing.T) {
	for _, c := range []rune{0xFDD0, 0xFDEF, 0xFFFE, 0xFFFF} {
		if !IsNoncharacter(c) {
			t.Fatalf("expected %#x to be a noncharacter", c)
		}
	}
	for _, c := range []rune{0x41, 0xFDCF, 0xFDF0, 0xFFFD} {
		if IsNoncharacter(c) {
			t.Fatalf("expected %#x not to be a noncharacter", c)
		}
	}
}

func TestAddBOMIdempotent(t *testing.T) {
	ws := []rune("ABC")
	once := AddBOM(ws)
	twice := AddBOM(once)
	if string(once) != string(twice) {
		t.Fatalf("AddBOM is not idempotent: %q vs %q", string(once), string(twice))
	}
	if once[0] != BOM {
		t.Fatalf("expected leading BOM")
	}

	b := []byte{0x41, 0x00}
	bOnce := AddBOMBytes(b, LittleEndian)
	bTwice := AddBOMBytes(bOnce, LittleEndian)
	if !bytes.Equal(bOnce, bTwice) {
		t.Fatalf("AddBOMBytes is not idempotent")
	}
	if bOnce[0] != 0xFF || bOnce[1] != 0xFE {
		t.Fatalf("unexpected LE BOM bytes: % X", bOnce[:2])
	}
}

func TestSwapByteOrderInvolution(t *testing.T) {
	if SwapByteOrder16(SwapByteOrder16(0xFEFF)) != 0xFEFF {
		t.Fatalf("16-bit swap is not an involution")
	}
	if SwapByteOrder32(SwapByteOrder32(0x0001D11E)) != 0x0001D11E {
		t.Fatalf("32-bit swap is not an involution")
	}
	ws := []rune{0x0041, 0xFEFF, 0x263A}
	back := SwapByteOrder(SwapByteOrder(ws))
	if string(back) != string(ws) {
		t.Fatalf("string swap is not an involution")
	}
	if SwapByteOrder16(0x1234) != 0x3412 {
		t.Fatalf("unexpected swap result")
	}
}

func TestTryDetectByteOrder(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  ByteOrder
		ok    bool
	}{
		{"too short", []byte{0x41}, PlatformByteOrder, false},
		{"LE BOM", []byte{0xFF, 0xFE, 0x41, 0x00}, LittleEndian, true},
		{"BE BOM", []byte{0xFE, 0xFF, 0x00, 0x41}, BigEndian, true},
		{"zeros at odd indices default", []byte{0x41, 0x00, 0x42, 0x00, 0x43, 0x00, 0x44, 0x00}, LittleEndian, true},
		{"no zeros defaults", []byte{0x41, 0x42, 0x43, 0x44}, PlatformByteOrder, true},
	}
	for _, tt := range tests {
		got, ok := TryDetectByteOrder(tt.input)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Fatalf("%s: got (%v,%v), want (%v,%v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWcharToMultibyte(t *testing.T) {
	got := WcharToMultibyte([]rune{0x0041, 0x0416}, LittleEndian)
	want := []byte{0x41, 0x00, 0x16, 0x04}
	if !bytes.Equal(got, want) {
		t.Fatalf("LE: got % X, want % X", got, want)
	}
	got = WcharToMultibyte([]rune{0x0041}, BigEndian)
	want = []byte{0x00, 0x41}
	if !bytes.Equal(got, want) {
		t.Fatalf("BE: got % X, want % X", got, want)
	}
	// a supplementary code point becomes a surrogate pair
	got = WcharToMultibyte([]rune{0x1D11E}, BigEndian)
	want = []byte{0xD8, 0x34, 0xDD, 0x1E}
	if !bytes.Equal(got, want) {
		t.Fatalf("surrogate: got % X, want % X", got, want)
	}
}

func TestUTF8UTF16StringConversion(t *testing.T) {
	// a supplementary code point expands to a surrogate pair and back
	units := ToUTF16String("A\U0001D11EB")
	want := []rune{0x41, 0xD834, 0xDD1E, 0x42}
	if len(units) != len(want) {
		t.Fatalf("units %#v, want %#v", units, want)
	}
	for i := range want {
		if units[i] != want[i] {
			t.Fatalf("unit %d: %#x, want %#x", i, units[i], want[i])
		}
	}
	if got := ToUTF8String(units); got != "A\U0001D11EB" {
		t.Fatalf("round trip got %q", got)
	}
	// a lone half degrades to U+FFFD on the string side
	if got := ToUTF8String([]rune{0xD834, 0x41}); got != "�A" {
		t.Fatalf("lone half: got %q", got)
	}
}

func TestCaseFolding(t *testing.T) {
	if string(ToLower([]rune("AbC"))) != "abc" {
		t.Fatalf("ToLower failed")
	}
	if string(ToUpper([]rune("aBc"))) != "ABC" {
		t.Fatalf("ToUpper failed")
	}
	if !EqualCI("Name", "nAME") {
		t.Fatalf("EqualCI failed")
	}
	if EqualCI("Name", "Names") {
		t.Fatalf("EqualCI matched different strings")
	}
}

func TestCharRange(t *testing.T) {
	r := CharRange{Min: 0x21, Max: 0x7E}
	if !r.Contains('!') || !r.Contains('~') || r.Contains(' ') {
		t.Fatalf("range bounds wrong")
	}
	if !r.ContainsAll([]rune("abc!")) {
		t.Fatalf("ContainsAll rejected valid input")
	}
	if r.ContainsAll([]rune("ab c")) {
		t.Fatalf("ContainsAll accepted out-of-range input")
	}
}
