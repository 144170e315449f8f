package timing

import "speccy/emu/log"

// ulaDelay is the number of wait cycles inserted by the ULA, indexed by the
// position within an 8-cycle display fetch.
var ulaDelay = [8]uint8{6, 5, 4, 3, 2, 1, 0, 0}

// Contention computes the wait cycles the ULA imposes on the CPU when both
// access the shared bus while the display is being drawn.
type Contention struct {
	p          Params
	start, end uint32 // display window

	// per-cycle delay over a whole frame
	table []uint8
}

func NewContention(p Params) *Contention {
	c := &Contention{p: p}
	c.start, c.end = p.DisplayWindow()

	c.table = make([]uint8, p.FrameLength())
	for t := range c.table {
		c.table[t] = c.Delay(0, uint32(t))
	}

	log.ModTiming.DebugZ("contention table built").
		String("machine", p.Name).
		Uint32("start", c.start).
		Uint32("end", c.end).
		Int("len", len(c.table)).
		End()
	return c
}

// Delay returns the number of extra cycles an access to the given port costs
// when it happens at the given cycle of the frame.
func (c *Contention) Delay(port uint16, cycle uint32) uint8 {
	// Odd ports are not decoded by the ULA.
	if port&0x01 != 0 {
		return 0
	}

	// Upper and lower borders.
	if cycle < c.start || cycle >= c.end {
		return 0
	}

	pos := (int(cycle) + c.p.LeftBorder) % c.p.TstatesPerLine

	// Left border, right border and retrace.
	if pos < c.p.LeftBorder-1 {
		return 0
	}
	if pos >= c.p.LeftBorder+c.p.HorizontalScreen-1 {
		return 0
	}

	return ulaDelay[pos%8]
}

// ContendPort returns the contention of an I/O access to port at cycle,
// looked up from the precomputed frame table. Only even ports contend.
func (c *Contention) ContendPort(port uint16, cycle uint32) uint8 {
	if port&0x01 == 0 {
		return c.At(cycle)
	}
	return 0
}

// At returns the precomputed delay at cycle. Cycles past the end of the
// frame wrap around.
func (c *Contention) At(cycle uint32) uint8 {
	return c.table[cycle%uint32(len(c.table))]
}

// Table returns the precomputed per-cycle delays. The slice must not be
// modified.
func (c *Contention) Table() []uint8 {
	return c.table
}

func (c *Contention) Params() Params {
	return c.p
}
