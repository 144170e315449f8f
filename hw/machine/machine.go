// Package machine assembles the CPU, the memory map, the I/O bus and the
// peripherals into a running Spectrum.
package machine

import (
	"fmt"

	"github.com/user-none/go-chip-z80"

	"speccy/emu/log"
	"speccy/hw/hwio"
	"speccy/hw/joystick"
	"speccy/hw/keyboard"
	"speccy/hw/memory"
	"speccy/hw/printer"
	"speccy/hw/timing"
	"speccy/hw/ula"
)

// The ULA holds the interrupt line low for this many cycles at the start
// of each frame. An interrupt not accepted by then is lost.
const intLength = 32

// Unattached port reads see the display byte fetched one cycle earlier.
const floatingBusOffset = 1

type Config struct {
	SampleRate int
	Joysticks  [joystick.NumJoysticks]joystick.Type
	Printer    bool
}

// Machine is a whole Spectrum.
type Machine struct {
	Profile Profile

	CPU        *z80.CPU
	Mem        *memory.Map
	Bus        *hwio.Bus
	Clock      *timing.Clock
	Contention *timing.Contention

	Matrix    keyboard.Matrix
	Joysticks *joystick.Joysticks
	ULA       *ula.ULA
	Beeper    *ula.Beeper
	Printer   *printer.Printer

	cfg Config

	intPending bool

	// cycles accounted by bus accesses of the instruction being executed
	access uint32

	tracer *tracer
}

// New returns a machine with no profile installed. Reset must be called
// before running it.
func New(cfg Config) *Machine {
	m := &Machine{
		cfg:     cfg,
		Mem:     memory.New(),
		Printer: printer.New(cfg.Printer),
	}
	m.Joysticks = joystick.New(&m.Matrix, cfg.Joysticks)
	m.Bus = hwio.NewBus("ports", m.floatingBus)
	m.CPU = z80.New(&cpuBus{m: m})
	return m
}

func (m *Machine) floatingBus() uint8 {
	if m.ULA == nil {
		return 0xff
	}
	return m.ULA.FloatingBus(floatingBusOffset)
}

// Reset (re)builds the machine for profile p, loads rom and puts every
// component in its power-on state. A ROM too short for p leaves the machine
// unchanged.
func (m *Machine) Reset(p Profile, rom []byte) error {
	if len(rom) < p.ROMSize {
		return fmt.Errorf("machine %s: %w (got %d bytes, want %d)", p.Name, memory.ErrROMTooShort, len(rom), p.ROMSize)
	}

	if m.Clock == nil || m.Profile.Timing != p.Timing {
		m.buildTiming(p.Timing)
	}

	m.Mem.Install(p.Layout)
	for bank := range p.ROMSize / memory.BankSize {
		if err := m.Mem.LoadROM(bank, rom[bank*memory.BankSize:]); err != nil {
			return fmt.Errorf("machine %s: %w", p.Name, err)
		}
	}
	m.Mem.ClearRAM()

	if err := m.Bus.Install(m.Devices(), hwio.Optional); err != nil {
		return fmt.Errorf("machine %s: %w", p.Name, err)
	}

	m.Matrix.ReleaseAll()
	m.Joysticks.ReleaseAll()
	m.Printer.Reset()
	m.ULA.Reset()
	m.Clock.Reset()
	m.CPU.Reset()
	m.intPending = false
	m.Profile = p

	log.ModEmu.InfoZ("machine reset").
		Stringer("profile", p).
		Stringer("layout", p.Layout).
		Int("devices", len(m.Bus.Devices())).
		End()
	return nil
}

func (m *Machine) buildTiming(p timing.Params) {
	if m.Clock != nil {
		log.RemoveContext(m.Clock)
	}
	m.Clock = timing.NewClock(p)
	m.Contention = timing.NewContention(p)
	m.Beeper = ula.NewBeeper(p.ClockHz, m.cfg.SampleRate)
	m.ULA = ula.New(p, m.Clock, m.Mem, &m.Matrix, m.Beeper)
	log.AddContext(m.Clock)
}

// Devices returns the peripherals of the machine, in decoding order.
func (m *Machine) Devices() []hwio.Device {
	return []hwio.Device{
		m.ULA.Device(),
		m.Printer.Device(),
		{
			Name:    "kempston",
			Mask:    0x00e0,
			Compare: 0x0000,
			ReadCb:  m.Joysticks.ReadKempston,
		},
	}
}

// RunFrame runs the CPU for one whole frame and returns the audio samples
// produced during it. The samples are only valid until the next call.
func (m *Machine) RunFrame() []int16 {
	m.CPU.INT(true, 0xff)
	m.intPending = true

	for !m.Clock.FrameDone() {
		var prevIFF1 bool
		if m.intPending {
			prevIFF1 = m.CPU.Registers().IFF1
		}

		m.step()

		if !m.intPending {
			continue
		}
		acked := prevIFF1 && !m.CPU.Registers().IFF1
		if acked || m.Clock.Tstates >= intLength {
			m.intPending = false
			m.CPU.INT(false, 0xff)
		}
	}

	samples := m.Beeper.EndFrame(m.Profile.Timing.FrameLength())
	m.Clock.EndFrame()
	return samples
}

// step executes one instruction. Bus accesses advance the clock as they
// happen, so peripherals see the cycle at which they are accessed, then the
// clock is adjusted to the instruction length reported by the CPU.
func (m *Machine) step() {
	if m.tracer != nil {
		m.trace()
	}
	m.access = 0
	n := uint32(m.CPU.Step())
	switch {
	case n > m.access:
		m.Clock.Add(n - m.access)
	case n < m.access:
		m.Clock.Tstates -= m.access - n
	}
}

// tick accounts for a bus access of the given length.
func (m *Machine) tick(cycles uint32) {
	m.Clock.Add(cycles)
	m.access += cycles
}

// stall adds the wait cycles of a contended access.
func (m *Machine) stall(delay uint8) {
	if delay != 0 {
		m.Clock.Add(uint32(delay))
	}
}
