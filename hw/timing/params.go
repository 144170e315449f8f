// Package timing holds the per-machine video timing constants, the frame
// clock and the bus contention model derived from them.
package timing

// Display geometry, in lines.
const (
	BorderHeight  = 24
	DisplayHeight = 192
	ScreenHeight  = BorderHeight + DisplayHeight + BorderHeight
)

// Params are the timing constants of a machine. They never change while a
// machine profile is selected.
type Params struct {
	Name string

	ClockHz          int // CPU clock
	TstatesPerLine   int // line length, in cycles
	LeftBorder       int // cycles between the start of a line and the first display pixel
	HorizontalScreen int // cycles spent drawing the display part of a line
	TopLeftPixel     int // cycle at which the first display pixel is drawn
	LinesPerFrame    int

	BorderHeight  int // top border, in lines
	DisplayHeight int // in lines
}

// Spectrum48 are the timings shared by the 16K and 48K machines.
var Spectrum48 = Params{
	Name:             "48",
	ClockHz:          3_500_000,
	TstatesPerLine:   224,
	LeftBorder:       24,
	HorizontalScreen: 128,
	TopLeftPixel:     14336,
	LinesPerFrame:    312,
	BorderHeight:     BorderHeight,
	DisplayHeight:    DisplayHeight,
}

// FrameLength returns the number of cycles in a frame.
func (p Params) FrameLength() uint32 {
	return uint32(p.TstatesPerLine * p.LinesPerFrame)
}

// LineTime returns the cycle at which the ULA starts line y of the visible
// screen (top border included).
func (p Params) LineTime(y int) uint32 {
	first := p.TopLeftPixel - p.BorderHeight*p.TstatesPerLine - p.LeftBorder
	return uint32(first + y*p.TstatesPerLine)
}

// DisplayWindow returns the half-open cycle range during which the display
// lines are drawn.
func (p Params) DisplayWindow() (start, end uint32) {
	return p.LineTime(p.BorderHeight), p.LineTime(p.BorderHeight + p.DisplayHeight)
}
