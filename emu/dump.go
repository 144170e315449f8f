package emu

import (
	"io"

	"github.com/go-faster/jx"

	"speccy/hw/machine"
	"speccy/hw/timing"
)

// DumpMachine writes a JSON description of the machine: timings, memory
// map, I/O devices and pressed keys.
func DumpMachine(w io.Writer, m *machine.Machine) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	e.SetIdent(2)

	e.Obj(func(e *jx.Encoder) {
		e.Field("profile", func(e *jx.Encoder) { e.Str(m.Profile.Name) })
		e.Field("timing", func(e *jx.Encoder) { dumpTiming(e, m.Contention) })
		e.Field("memory", func(e *jx.Encoder) { dumpMemory(e, m) })
		e.Field("devices", func(e *jx.Encoder) { dumpDevices(e, m) })
		e.Field("keys", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, k := range m.Matrix.Pressed() {
					e.Str(k.String())
				}
			})
		})
	})

	_, err := w.Write(e.Bytes())
	return err
}

func dumpTiming(e *jx.Encoder, c *timing.Contention) {
	p := c.Params()
	start, end := p.DisplayWindow()

	contended := 0
	for _, d := range c.Table() {
		if d != 0 {
			contended++
		}
	}

	e.Obj(func(e *jx.Encoder) {
		e.Field("clock_hz", func(e *jx.Encoder) { e.Int(p.ClockHz) })
		e.Field("tstates_per_line", func(e *jx.Encoder) { e.Int(p.TstatesPerLine) })
		e.Field("lines_per_frame", func(e *jx.Encoder) { e.Int(p.LinesPerFrame) })
		e.Field("frame_length", func(e *jx.Encoder) { e.UInt32(p.FrameLength()) })
		e.Field("left_border", func(e *jx.Encoder) { e.Int(p.LeftBorder) })
		e.Field("horizontal_screen", func(e *jx.Encoder) { e.Int(p.HorizontalScreen) })
		e.Field("top_left_pixel", func(e *jx.Encoder) { e.Int(p.TopLeftPixel) })
		e.Field("display_start", func(e *jx.Encoder) { e.UInt32(start) })
		e.Field("display_end", func(e *jx.Encoder) { e.UInt32(end) })
		e.Field("contended_cycles", func(e *jx.Encoder) { e.Int(contended) })
	})
}

func dumpMemory(e *jx.Encoder, m *machine.Machine) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("layout", func(e *jx.Encoder) { e.Str(m.Mem.Layout().String()) })
		e.Field("screen_bank", func(e *jx.Encoder) { e.Int(m.Mem.ScreenBank()) })
		e.Field("screen_mask", func(e *jx.Encoder) { e.UInt16(m.Mem.ScreenMask()) })
		e.Field("pages", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, pg := range m.Mem.Pages() {
					e.Obj(func(e *jx.Encoder) {
						e.Field("source", func(e *jx.Encoder) { e.Str(pg.Source.String()) })
						e.Field("bank", func(e *jx.Encoder) { e.Int(pg.Bank) })
						e.Field("writable", func(e *jx.Encoder) { e.Bool(pg.Writable) })
						e.Field("contended", func(e *jx.Encoder) { e.Bool(pg.Contended) })
						e.Field("reverse", func(e *jx.Encoder) { e.Int(pg.Reverse) })
						e.Field("offset", func(e *jx.Encoder) { e.UInt16(pg.Offset) })
					})
				}
			})
		})
	})
}

func dumpDevices(e *jx.Encoder, m *machine.Machine) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("presence", func(e *jx.Encoder) { e.Str(m.Bus.Presence().String()) })
		e.Field("list", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, d := range m.Bus.Devices() {
					e.Obj(func(e *jx.Encoder) {
						e.Field("name", func(e *jx.Encoder) { e.Str(d.Name) })
						e.Field("mask", func(e *jx.Encoder) { e.UInt16(d.Mask) })
						e.Field("compare", func(e *jx.Encoder) { e.UInt16(d.Compare) })
						e.Field("read", func(e *jx.Encoder) { e.Bool(d.ReadCb != nil) })
						e.Field("write", func(e *jx.Encoder) { e.Bool(d.WriteCb != nil) })
					})
				}
			})
		})
	})
}
