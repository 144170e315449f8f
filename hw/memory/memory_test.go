package memory

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInstall48(t *testing.T) {
	m := New()
	m.Install(Layout48)

	want := [NumPages]Page{
		{Source: SourceROM, Bank: 0, Reverse: -1, Offset: 0x0000},
		{Source: SourceROM, Bank: 0, Reverse: -1, Offset: 0x2000},
		{Source: SourceRAM, Bank: 5, Writable: true, Contended: true, Reverse: 5, Offset: 0x0000},
		{Source: SourceRAM, Bank: 5, Writable: true, Contended: true, Reverse: 5, Offset: 0x2000},
		{Source: SourceRAM, Bank: 2, Writable: true, Reverse: 2, Offset: 0x0000},
		{Source: SourceRAM, Bank: 2, Writable: true, Reverse: 2, Offset: 0x2000},
		{Source: SourceRAM, Bank: 0, Writable: true, Reverse: 0, Offset: 0x0000},
		{Source: SourceRAM, Bank: 0, Writable: true, Reverse: 0, Offset: 0x2000},
	}
	if diff := cmp.Diff(want, m.Pages()); diff != "" {
		t.Fatalf("page table mismatch (-want +got):\n%s", diff)
	}
	if m.ScreenBank() != 5 {
		t.Errorf("ScreenBank() = %d, want 5", m.ScreenBank())
	}
	if m.ScreenMask() != 0xffff {
		t.Errorf("ScreenMask() = %04x, want ffff", m.ScreenMask())
	}
}

func TestInstallIsRepeatable(t *testing.T) {
	for _, l := range []Layout{Layout48, Layout16} {
		m := New()
		m.Install(l)
		first := m.Pages()

		// Switch to another layout and back, the table must be rebuilt
		// identically.
		m.Install(Layout16 - l)
		m.Install(l)
		if second := m.Pages(); first != second {
			t.Errorf("%v: page table differs after reinstall:\n%v\n%v", l, first, second)
		}

		other := New()
		other.Install(l)
		if other.Pages() != first {
			t.Errorf("%v: page table differs between two maps", l)
		}
	}
}

func TestReadWrite(t *testing.T) {
	m := New()
	rom := make([]byte, BankSize)
	rom[0x0000] = 0xf3
	rom[0x3fff] = 0x3c
	if err := m.LoadROM(0, rom); err != nil {
		t.Fatal(err)
	}
	m.Install(Layout48)

	if got := m.Read8(0x0000); got != 0xf3 {
		t.Errorf("Read8(0000) = %02x, want f3", got)
	}
	if got := m.Read8(0x3fff); got != 0x3c {
		t.Errorf("Read8(3fff) = %02x, want 3c", got)
	}

	// ROM is not writable.
	m.Write8(0x0000, 0x00)
	if got := m.Read8(0x0000); got != 0xf3 {
		t.Errorf("Read8(0000) after write = %02x, want f3", got)
	}

	tests := []struct {
		addr uint16
		bank int
		off  int
	}{
		{0x4000, 5, 0x0000},
		{0x5aff, 5, 0x1aff},
		{0x7fff, 5, 0x3fff},
		{0x8000, 2, 0x0000},
		{0xa123, 2, 0x2123},
		{0xc000, 0, 0x0000},
		{0xffff, 0, 0x3fff},
	}
	for _, tt := range tests {
		m.Write8(tt.addr, uint8(tt.addr>>8))
		if got := m.RAM(tt.bank)[tt.off]; got != uint8(tt.addr>>8) {
			t.Errorf("write to %04x: RAM[%d][%04x] = %02x, want %02x", tt.addr, tt.bank, tt.off, got, uint8(tt.addr>>8))
		}
		if got := m.Read8(tt.addr); got != uint8(tt.addr>>8) {
			t.Errorf("Read8(%04x) = %02x, want %02x", tt.addr, got, uint8(tt.addr>>8))
		}
	}

	if m.Screen()[0x1aff] != 0x5a {
		t.Errorf("screen bank does not alias RAM 5")
	}
}

func TestContended(t *testing.T) {
	m := New()
	m.Install(Layout48)

	for addr := 0; addr < 0x10000; addr += 0x100 {
		want := addr >= 0x4000 && addr < 0x8000
		if got := m.Contended(uint16(addr)); got != want {
			t.Fatalf("Contended(%04x) = %t, want %t", addr, got, want)
		}
	}
}

func TestLayout16(t *testing.T) {
	m := New()
	m.Install(Layout16)

	m.Write8(0x8000, 0x12)
	m.Write8(0xffff, 0x34)
	if got := m.Read8(0x8000); got != 0xff {
		t.Errorf("Read8(8000) = %02x, want ff", got)
	}
	if got := m.Read8(0xffff); got != 0xff {
		t.Errorf("Read8(ffff) = %02x, want ff", got)
	}
	if pg := m.Page(0xc000); pg.Source != SourceNone || pg.Reverse != -1 || pg.Writable {
		t.Errorf("Page(c000) = %+v, want unpopulated", pg)
	}

	// The lower 16K of RAM still works.
	m.Write8(0x4000, 0x56)
	if got := m.Read8(0x4000); got != 0x56 {
		t.Errorf("Read8(4000) = %02x, want 56", got)
	}
}

func TestLoadROMTooShort(t *testing.T) {
	m := New()
	err := m.LoadROM(0, make([]byte, 0x1000))
	if !errors.Is(err, ErrROMTooShort) {
		t.Fatalf("LoadROM(short) error = %v, want ErrROMTooShort", err)
	}
}
