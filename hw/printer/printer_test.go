package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDisabled(t *testing.T) {
	p := New(false)
	p.Write8(0xfb, 0x80)
	if got := p.Read8(0xfb); got != 0xff {
		t.Errorf("Read8() = %02x, want ff", got)
	}
}

func TestPrintLine(t *testing.T) {
	p := New(true)

	if got := p.Read8(0xfb); got != 0x80 {
		t.Fatalf("status at rest = %02x, want 80", got)
	}

	// Motor on, stylus on for the first 8 pixels only.
	p.Write8(0xfb, 0x80)
	for p.pos < marginPixels+8 {
		p.Read8(0xfb)
	}
	p.Write8(0xfb, 0x00)
	for len(p.Lines()) == 0 {
		p.Read8(0xfb)
	}

	want := Line{0: 0xff}
	if diff := cmp.Diff([]Line{want}, p.Lines()); diff != "" {
		t.Fatalf("printed lines mismatch (-want +got):\n%s", diff)
	}

	// Motor off: reads don't move the stylus.
	p.Write8(0xfb, 0x04)
	before := p.pos
	p.Read8(0xfb)
	p.Read8(0xfb)
	if p.pos != before {
		t.Errorf("stylus moved with motor off")
	}
}
