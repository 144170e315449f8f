package machine

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"speccy/hw/joystick"
	"speccy/hw/memory"
)

func testConfig() Config {
	return Config{
		SampleRate: 44100,
		Joysticks:  [joystick.NumJoysticks]joystick.Type{joystick.Kempston, joystick.None, joystick.Kempston},
	}
}

// romWith returns a ROM image with code copied at the given addresses.
func romWith(code map[uint16][]byte) []byte {
	rom := make([]byte, memory.BankSize)
	for addr, b := range code {
		copy(rom[addr:], b)
	}
	return rom
}

func deviceNames(m *Machine) []string {
	var names []string
	for _, d := range m.Bus.Devices() {
		names = append(names, d.String())
	}
	return names
}

func TestResetRepeatable(t *testing.T) {
	m := New(testConfig())
	rom := romWith(nil)

	if err := m.Reset(Profile48, rom); err != nil {
		t.Fatal(err)
	}
	pages := m.Mem.Pages()
	devs := deviceNames(m)

	m.Mem.Write8(0x8000, 0x42)
	if err := m.Reset(Profile48, rom); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(pages, m.Mem.Pages()); diff != "" {
		t.Errorf("pages differ after second reset (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(devs, deviceNames(m)); diff != "" {
		t.Errorf("devices differ after second reset (-first +second):\n%s", diff)
	}
	if got := m.Mem.Read8(0x8000); got != 0 {
		t.Errorf("RAM not cleared by reset: %02x", got)
	}

	want := []string{"ula{0001/0000,r,w}", "zx_printer{0004/0000,r,w}", "kempston{00e0/0000,r}"}
	if diff := cmp.Diff(want, devs); diff != "" {
		t.Errorf("devices mismatch (-want +got):\n%s", diff)
	}
}

func TestResetShortROM(t *testing.T) {
	m := New(testConfig())

	err := m.Reset(Profile48, make([]byte, 100))
	if !errors.Is(err, memory.ErrROMTooShort) {
		t.Fatalf("Reset() error = %v, want %v", err, memory.ErrROMTooShort)
	}
	if m.Profile.Name != "" {
		t.Errorf("profile installed despite error: %v", m.Profile)
	}
}

func TestProfile16(t *testing.T) {
	m := New(testConfig())
	if err := m.Reset(Profile16, romWith(nil)); err != nil {
		t.Fatal(err)
	}

	m.Mem.Write8(0x8000, 0x12)
	if got := m.Mem.Read8(0x8000); got != 0xff {
		t.Errorf("Read8(8000) on 16K = %02x, want ff", got)
	}
	m.Mem.Write8(0x4000, 0x12)
	if got := m.Mem.Read8(0x4000); got != 0x12 {
		t.Errorf("Read8(4000) on 16K = %02x, want 12", got)
	}
}

func TestProfileByName(t *testing.T) {
	for _, p := range Profiles() {
		got, err := ProfileByName(p.Name)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != p.Name || got.Layout != p.Layout {
			t.Errorf("ProfileByName(%q) = %v", p.Name, got)
		}
	}
	if _, err := ProfileByName("128"); err == nil {
		t.Errorf("ProfileByName(128) should fail")
	}
}

func TestPorts(t *testing.T) {
	m := New(testConfig())
	if err := m.Reset(Profile48, romWith(nil)); err != nil {
		t.Fatal(err)
	}

	if got := m.Bus.Read8(0x001f); got != 0x00 {
		t.Errorf("kempston idle = %02x, want 00", got)
	}
	m.Joysticks.Press(joystick.Joystick1, joystick.Fire, true)
	if got := m.Bus.Read8(0x001f); got != 0x10 {
		t.Errorf("kempston fire = %02x, want 10", got)
	}

	// Nothing decodes port 0xff, the border is being drawn.
	if got := m.Bus.Read8(0x00ff); got != 0xff {
		t.Errorf("unattached port = %02x, want ff", got)
	}

	m.Bus.Write8(0x00fe, 0x03)
	if m.ULA.Border != 3 {
		t.Errorf("border = %d, want 3", m.ULA.Border)
	}
}

func TestContendedAccess(t *testing.T) {
	m := New(testConfig())
	if err := m.Reset(Profile48, romWith(nil)); err != nil {
		t.Fatal(err)
	}
	b := &cpuBus{m: m}

	// First contended cycle of the first display line.
	const start = 14336

	tests := []struct {
		name   string
		access func()
		want   uint32
	}{
		{"rom", func() { b.Read(0x0000) }, start + memCycles},
		{"screen ram", func() { b.Read(0x4000) }, start + 6 + memCycles},
		{"screen ram write", func() { b.Write(0x5800, 0) }, start + 6 + memCycles},
		{"upper ram", func() { b.Read(0x8000) }, start + memCycles},
		{"opcode fetch", func() { b.Fetch(0x7fff) }, start + 6 + fetchCycles},
		{"ula port", func() { b.In(0xfefe) }, start + 6 + ioCycles},
		{"odd port", func() { b.In(0x001f) }, start + ioCycles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Clock.Tstates = start
			tt.access()
			if m.Clock.Tstates != tt.want {
				t.Errorf("clock = %d, want %d", m.Clock.Tstates, tt.want)
			}
		})
	}
}

func TestRunFrame(t *testing.T) {
	m := New(testConfig())
	rom := romWith(map[uint16][]byte{
		0x0000: {
			0xf3,       // DI
			0x3e, 0x02, // LD A,2
			0xd3, 0xfe, // OUT (0xfe),A
			0x76, // HALT
		},
	})
	if err := m.Reset(Profile48, rom); err != nil {
		t.Fatal(err)
	}

	m.RunFrame()
	if m.ULA.Border != 2 {
		t.Errorf("border = %d, want 2", m.ULA.Border)
	}
	if m.Clock.Frames != 1 {
		t.Errorf("frames = %d, want 1", m.Clock.Frames)
	}
	if m.Clock.Tstates >= 32 {
		t.Errorf("clock carried %d cycles into the next frame", m.Clock.Tstates)
	}
}

func TestRunFrameInterrupt(t *testing.T) {
	m := New(testConfig())
	rom := romWith(map[uint16][]byte{
		0x0000: {
			0xed, 0x56, // IM 1
			0xfb, // EI
			0x76, // HALT
		},
		0x0038: {
			0x3e, 0x05, // LD A,5
			0xd3, 0xfe, // OUT (0xfe),A
			0x76, // HALT
		},
	})
	if err := m.Reset(Profile48, rom); err != nil {
		t.Fatal(err)
	}

	m.RunFrame()
	if m.ULA.Border != 5 {
		t.Errorf("border = %d, want 5 (interrupt handler not run)", m.ULA.Border)
	}
	if m.intPending {
		t.Errorf("interrupt still pending at the end of the frame")
	}
}

func TestBeeperSamples(t *testing.T) {
	m := New(testConfig())
	rom := romWith(map[uint16][]byte{
		0x0000: {
			0xf3,       // DI
			0x3e, 0x10, // LD A,0x10
			0xd3, 0xfe, // loop: OUT (0xfe),A
			0xee, 0x10, // XOR 0x10
			0x18, 0xfa, // JR loop
		},
	})
	if err := m.Reset(Profile48, rom); err != nil {
		t.Fatal(err)
	}

	samples := m.RunFrame()
	if len(samples) == 0 {
		t.Fatal("no samples")
	}
	nonzero := 0
	for _, s := range samples {
		if s != 0 {
			nonzero++
		}
	}
	if nonzero == 0 {
		t.Errorf("speaker toggling produced silence")
	}
}

func TestBeeperFrameLength(t *testing.T) {
	cfg := testConfig()
	m := New(cfg)
	// 30 cycles per loop, frames end mid-instruction with varying overshoot.
	rom := romWith(map[uint16][]byte{
		0x0000: {
			0xf3,       // DI
			0x3e, 0x10, // LD A,0x10
			0xd3, 0xfe, // loop: OUT (0xfe),A
			0xee, 0x10, // XOR 0x10
			0x18, 0xfa, // JR loop
		},
	})
	if err := m.Reset(Profile48, rom); err != nil {
		t.Fatal(err)
	}

	const frames = 50
	total := 0
	for range frames {
		total += len(m.RunFrame())
	}

	p := Profile48.Timing
	want := int(uint64(frames) * uint64(p.FrameLength()) * uint64(cfg.SampleRate) / uint64(p.ClockHz))
	if total < want-1 || total > want+1 {
		t.Errorf("%d samples over %d frames, want %d", total, frames, want)
	}
}

func TestTrace(t *testing.T) {
	m := New(testConfig())
	rom := romWith(map[uint16][]byte{
		0x0000: {
			0xf3,       // DI
			0x3e, 0x42, // LD A,0x42
			0x76, // HALT
		},
	})
	if err := m.Reset(Profile48, rom); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	m.SetTraceOutput(&buf)
	m.step()
	m.step()
	m.step()
	m.SetTraceOutput(nil)
	m.step()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d trace lines, want 3:\n%s", len(lines), buf.String())
	}
	for i, prefix := range []string{"PC:0000 OP:F3 ", "PC:0001 OP:3E ", "PC:0003 OP:76 AF:42"} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
	if !strings.HasSuffix(lines[2], " IFF1:0 IM:0 FR:0 T:11") {
		t.Errorf("line 2 = %q", lines[2])
	}
}
