package timing

import "speccy/emu/log"

// Clock counts the cycles elapsed since the start of the current frame.
type Clock struct {
	Tstates uint32
	Frames  uint64

	frameLen uint32
}

func NewClock(p Params) *Clock {
	return &Clock{frameLen: p.FrameLength()}
}

func (c *Clock) Add(n uint32) { c.Tstates += n }

// FrameDone reports whether the current frame has run to completion.
func (c *Clock) FrameDone() bool { return c.Tstates >= c.frameLen }

// EndFrame starts a new frame, carrying over the cycles that ran past the end
// of the previous one.
func (c *Clock) EndFrame() {
	if c.Tstates >= c.frameLen {
		c.Tstates -= c.frameLen
	} else {
		c.Tstates = 0
	}
	c.Frames++
}

// Reset zeroes the counters.
func (c *Clock) Reset() {
	c.Tstates = 0
	c.Frames = 0
}

// AddLogContext implements log.Context.
func (c *Clock) AddLogContext(e *log.EntryZ) {
	e.Uint32("tstates", c.Tstates)
}
