package codec

import (
	"bytes"
	"testing"
)

func TestANSIDecodeCP1251(t *testing.T) {
	c := NewANSI(ANSIMode{Encoding: CP1251})
	got, res := c.DecodeAll([]byte{0xC6, 0x41, 0xFF}) // Ж A я
	if res != ResOK || string(got) != "ЖAя" {
		t.Fatalf("got %q (%v)", string(got), res)
	}
}

func TestANSIEncodeCP1251(t *testing.T) {
	c := NewANSI(ANSIMode{Encoding: CP1251})
	got, res := c.EncodeAll([]rune("ЖAя"))
	if res != ResOK || !bytes.Equal(got, []byte{0xC6, 0x41, 0xFF}) {
		t.Fatalf("got % X (%v)", got, res)
	}
}

func TestANSIEncodeUnmappable(t *testing.T) {
	c := NewANSI(ANSIMode{Encoding: CP1252})
	got, res := c.EncodeAll([]rune("A☺B"))
	if res != ResOK || !bytes.Equal(got, []byte{'A', '?', 'B'}) {
		t.Fatalf("got % X (%v)", got, res)
	}
}

func TestANSIBOMOnWideSide(t *testing.T) {
	// wide to byte drops a leading BOM once
	c := NewANSI(ANSIMode{Encoding: CP1252})
	got, res := c.EncodeAll([]rune("\uFEFFAB"))
	if res != ResOK || !bytes.Equal(got, []byte("AB")) {
		t.Fatalf("encode: got % X (%v)", got, res)
	}

	// byte to wide prepends a BOM in generate mode
	c = NewANSI(ANSIMode{Encoding: CP1252, Headers: GenerateHeader})
	decoded, res := c.DecodeAll([]byte("AB"))
	if res != ResOK || string(decoded) != "\uFEFFAB" {
		t.Fatalf("decode: got %q (%v)", string(decoded), res)
	}
}

func TestANSIByNameLookup(t *testing.T) {
	tests := []struct {
		name string
		b    byte
		want rune
	}{
		{"windows-1250", 0xE8, 'č'},
		{"cp1251", 0xC6, 'Ж'},
		{"iso-8859-1", 0xE9, 'é'},
	}
	for _, tt := range tests {
		c := NewANSI(ANSIMode{Encoding: ByName, Name: tt.name})
		got, res := c.DecodeAll([]byte{tt.b})
		if res != ResOK || len(got) != 1 || got[0] != tt.want {
			t.Fatalf("%s: got %q (%v), want %q", tt.name, string(got), res, tt.want)
		}
	}
}

func TestANSIRoundTripCP1250(t *testing.T) {
	c := NewANSI(ANSIMode{Encoding: CP1250})
	text := "Příliš žluťoučký kůň"
	encoded, res := c.EncodeAll([]rune(text))
	if res != ResOK {
		t.Fatalf("encode result %v", res)
	}
	decoded, res := NewANSI(ANSIMode{Encoding: CP1250}).DecodeAll(encoded)
	if res != ResOK || string(decoded) != text {
		t.Fatalf("round trip got %q (%v)", string(decoded), res)
	}
}
