// Package printer emulates the ZX Printer interface port.
package printer

import (
	"speccy/emu/log"
	"speccy/hw/hwio"
)

const (
	// PixelsPerLine is the width of a printed line.
	PixelsPerLine = 256

	// Margin pulses before the stylus reaches the paper.
	marginPixels = 8
)

// Status bits (read). Bit 6 low tells a printer is connected.
const (
	statusEncoder   = 0
	statusLineStart = 7
)

// Control bits (write).
const (
	ctrlSlow   = 1
	ctrlStop   = 2
	ctrlStylus = 7
)

// A Line is one printed line, one bit per pixel, MSB first.
type Line [PixelsPerLine / 8]byte

// Printer is the ZX Printer, answering to port 0xfb.
type Printer struct {
	Enabled bool

	motor  bool
	slow   bool
	stylus bool

	pos     int // pulses since the start of the line
	encoder bool

	cur   Line
	lines []Line
}

func New(enabled bool) *Printer {
	return &Printer{Enabled: enabled}
}

// Device returns the bus entry of the printer.
func (p *Printer) Device() hwio.Device {
	return hwio.Device{
		Name:    "zx_printer",
		Mask:    0x0004,
		Compare: 0x0000,
		ReadCb:  p.Read8,
		WriteCb: p.Write8,
	}
}

func (p *Printer) Reset() {
	p.motor, p.slow, p.stylus = false, false, false
	p.pos = 0
	p.encoder = false
	p.cur = Line{}
}

// Read8 returns the printer status. Each read while the motor runs advances
// the stylus by one pixel.
func (p *Printer) Read8(port uint16) uint8 {
	if !p.Enabled {
		return 0xff
	}

	var val uint8
	if p.motor {
		p.advance()
	}
	hwio.SetBit8To(&val, statusEncoder, p.encoder)
	hwio.SetBit8To(&val, statusLineStart, p.pos == 0)
	return val
}

func (p *Printer) Write8(port uint16, val uint8) {
	if !p.Enabled {
		return
	}

	wasRunning := p.motor
	p.motor = !hwio.GetBit8(val, ctrlStop)
	p.slow = hwio.GetBit8(val, ctrlSlow)
	p.stylus = hwio.GetBit8(val, ctrlStylus)

	if wasRunning != p.motor {
		log.ModHwIo.DebugZ("zx printer motor").
			Bool("on", p.motor).
			Bool("slow", p.slow).
			End()
	}
}

func (p *Printer) advance() {
	p.encoder = !p.encoder
	if !p.encoder {
		return
	}

	x := p.pos - marginPixels
	if x >= 0 && x < PixelsPerLine && p.stylus {
		p.cur[x/8] |= 0x80 >> (x % 8)
	}

	p.pos++
	if p.pos == marginPixels+PixelsPerLine {
		log.ModHwIo.DebugZ("zx printer line").
			Int("line", len(p.lines)).
			Blob("pixels", p.cur[:]).
			End()
		p.lines = append(p.lines, p.cur)
		p.cur = Line{}
		p.pos = 0
	}
}

// Lines returns the lines printed so far.
func (p *Printer) Lines() []Line {
	return p.lines
}
