package ula

import (
	"testing"

	"speccy/hw/keyboard"
	"speccy/hw/memory"
	"speccy/hw/timing"
)

type testULA struct {
	*ULA
	clock  *timing.Clock
	mem    *memory.Map
	matrix keyboard.Matrix
}

func newTestULA(tb testing.TB) *testULA {
	tb.Helper()

	tu := &testULA{}
	tu.clock = timing.NewClock(timing.Spectrum48)
	tu.mem = memory.New()
	tu.mem.Install(memory.Layout48)
	beeper := NewBeeper(timing.Spectrum48.ClockHz, 44100)
	tu.ULA = New(timing.Spectrum48, tu.clock, tu.mem, &tu.matrix, beeper)
	return tu
}

func TestReadKeyboard(t *testing.T) {
	tu := newTestULA(t)

	if got := tu.Read8(0xfefe); got != 0xbf {
		t.Errorf("Read8(fefe) idle = %02x, want bf", got)
	}

	tu.matrix.Press(keyboard.KeyCapsShift)
	if got := tu.Read8(0xfefe); got != 0xbe {
		t.Errorf("Read8(fefe) = %02x, want be", got)
	}
	if got := tu.Read8(0x7ffe); got != 0xbf {
		t.Errorf("Read8(7ffe) = %02x, want bf", got)
	}

	tu.EarIn = true
	if got := tu.Read8(0xfefe); got != 0xfe {
		t.Errorf("Read8(fefe) with EAR in = %02x, want fe", got)
	}
}

func TestWriteOut(t *testing.T) {
	tu := newTestULA(t)
	dev := tu.Device()

	dev.WriteCb(0x00fe, 0x15)
	if tu.Border != 5 {
		t.Errorf("border = %d, want 5", tu.Border)
	}
	// EAR output shows on bit 6.
	if got := tu.Read8(0xfffe); got != 0xff {
		t.Errorf("Read8(fffe) = %02x, want ff", got)
	}

	dev.WriteCb(0x00fe, 0x02)
	if tu.Border != 2 {
		t.Errorf("border = %d, want 2", tu.Border)
	}
	if got := tu.Read8(0xfffe); got != 0xbf {
		t.Errorf("Read8(fffe) = %02x, want bf", got)
	}
}

func TestBeeper(t *testing.T) {
	b := NewBeeper(timing.Spectrum48.ClockHz, 44100)

	frame := timing.Spectrum48.FrameLength()
	silent := b.EndFrame(frame)
	if len(silent) == 0 {
		t.Fatalf("no samples produced")
	}
	for i, s := range silent {
		if s != 0 {
			t.Fatalf("sample %d = %d, want silence", i, s)
		}
	}

	for cycle := uint32(0); cycle < frame; cycle += 4000 {
		b.SetOutput(cycle, cycle/4000%2 == 0, false)
	}
	loud := b.EndFrame(frame)
	nonzero := 0
	for _, s := range loud {
		if s != 0 {
			nonzero++
		}
	}
	if nonzero == 0 {
		t.Fatalf("square wave produced only silence")
	}
}

func TestFloatingBus(t *testing.T) {
	tu := newTestULA(t)

	screen := tu.mem.RAM(5)
	screen[0x0000] = 0x11
	screen[0x0001] = 0x22
	screen[0x1800] = 0x33
	screen[0x1801] = 0x44
	screen[0x0100] = 0x55
	screen[0x1802] = 0x66

	start, _ := timing.Spectrum48.DisplayWindow()
	first := start + uint32(timing.Spectrum48.LeftBorder) + 1 // first pixel fetch seen at offset 1

	tests := []struct {
		name  string
		cycle uint32
		want  uint8
	}{
		{"top border", 100, 0xff},
		{"line start", first, 0xff},
		{"bitmap 0", first + 3, 0x11},
		{"attr 0", first + 4, 0x33},
		{"bitmap 1", first + 5, 0x22},
		{"attr 1", first + 6, 0x44},
		{"idle", first + 7, 0xff},
		{"attr 2", first + 12, 0x66},
		{"line 1", first + 224 + 3, 0x55},
		{"right border", first + 128, 0xff},
		{"before fetch", first - 1, 0xff},
		{"bottom border", start + 192*224 + 30, 0xff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu.clock.Tstates = tt.cycle
			if got := tu.FloatingBus(1); got != tt.want {
				t.Errorf("FloatingBus() at %d = %02x, want %02x", tt.cycle, got, tt.want)
			}
		})
	}
}

func TestScreenAddresses(t *testing.T) {
	tests := []struct {
		y          int
		bmp, attrs int
	}{
		{0, 0x0000, 0x1800},
		{1, 0x0100, 0x1800},
		{8, 0x0020, 0x1820},
		{63, 0x07e0, 0x18e0},
		{64, 0x0800, 0x1900},
		{191, 0x17e0, 0x1ae0},
	}
	for _, tt := range tests {
		if got := bitmapAddr(tt.y); got != tt.bmp {
			t.Errorf("bitmapAddr(%d) = %04x, want %04x", tt.y, got, tt.bmp)
		}
		if got := attrAddr(tt.y); got != tt.attrs {
			t.Errorf("attrAddr(%d) = %04x, want %04x", tt.y, got, tt.attrs)
		}
	}
}
