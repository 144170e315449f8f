// Package ula implements the ULA I/O port: keyboard scanning, border colour,
// speaker, and the value seen on the floating data bus.
package ula

import (
	"speccy/emu/log"
	"speccy/hw/hwio"
	"speccy/hw/keyboard"
	"speccy/hw/memory"
	"speccy/hw/timing"
)

// Output latch bits.
const (
	borderMask = 0x07
	micBit     = 3
	earBit     = 4
)

// ULA is the device answering to even ports.
type ULA struct {
	Out hwio.Reg8 // output latch

	Border uint8

	// EarIn is the level of the EAR input socket.
	EarIn bool

	matrix *keyboard.Matrix
	mem    *memory.Map
	clock  *timing.Clock
	params timing.Params
	beeper *Beeper
}

func New(p timing.Params, clock *timing.Clock, mem *memory.Map, matrix *keyboard.Matrix, beeper *Beeper) *ULA {
	u := &ULA{
		matrix: matrix,
		mem:    mem,
		clock:  clock,
		params: p,
		beeper: beeper,
	}
	u.Out = hwio.Reg8{
		Name:    "ula_out",
		Flags:   hwio.WriteOnlyFlag,
		WriteCb: u.writeOut,
	}
	return u
}

// Device returns the bus entry of the ULA.
func (u *ULA) Device() hwio.Device {
	return hwio.Device{
		Name:    "ula",
		Mask:    0x0001,
		Compare: 0x0000,
		ReadCb:  u.Read8,
		WriteCb: u.Out.Write8,
	}
}

func (u *ULA) Reset() {
	u.Out.Value = 0
	u.Border = 0
	u.EarIn = false
	if u.beeper != nil {
		u.beeper.Reset()
	}
}

// Read8 returns the keyboard half-rows selected by the high byte of port.
// Bit 6 reflects the EAR input, or the EAR output when nothing drives the
// input (issue 3 boards).
func (u *ULA) Read8(port uint16) uint8 {
	val := u.matrix.ReadPort(uint8(port>>8)) | 0xa0
	if u.EarIn || hwio.GetBit8(u.Out.Value, earBit) {
		val |= 0x40
	}
	return val
}

func (u *ULA) writeOut(old, val uint8) {
	u.Border = val & borderMask

	if (old^val)&(1<<earBit|1<<micBit) != 0 {
		log.ModULA.DebugZ("speaker").
			Bool("ear", hwio.GetBit8(val, earBit)).
			Bool("mic", hwio.GetBit8(val, micBit)).
			End()
	}
	if u.beeper != nil {
		u.beeper.SetOutput(u.clock.Tstates, hwio.GetBit8(val, earBit), hwio.GetBit8(val, micBit))
	}
}

// FloatingBus returns the byte on the data bus when no device drives it,
// which is the display byte the ULA is fetching, if any. offset is the
// number of cycles between the ULA fetch and the moment the CPU samples the
// bus.
func (u *ULA) FloatingBus(offset int) uint8 {
	p := u.params
	t := int(u.clock.Tstates)

	start, _ := p.DisplayWindow()
	if t < int(start) {
		return 0xff
	}
	line := (t - int(start)) / p.TstatesPerLine
	if line >= p.DisplayHeight {
		return 0xff
	}

	pos := t - int(p.LineTime(p.BorderHeight+line)) - p.LeftBorder
	if pos < offset {
		return 0xff
	}
	pos -= offset
	if pos >= p.HorizontalScreen {
		return 0xff
	}

	screen := u.mem.Screen()
	col := pos / 8 * 2
	switch pos % 8 {
	case 5:
		col++
		fallthrough
	case 3:
		return screen[bitmapAddr(line)+col]
	case 6:
		col++
		fallthrough
	case 4:
		return screen[attrAddr(line)+col]
	}
	return 0xff
}

// bitmapAddr returns the offset of the first byte of display line y within
// the screen bank.
func bitmapAddr(y int) int {
	return (y&0xc0)<<5 | (y&0x07)<<8 | (y&0x38)<<2
}

func attrAddr(y int) int {
	return 0x1800 + y/8*32
}
