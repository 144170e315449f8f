// Package snapshot defines the saved state of a machine and its JSON
// encoding.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/go-faster/jx"
)

const Version = 1

var ErrVersion = errors.New("unsupported snapshot version")

type Spectrum struct {
	Version int
	Profile string

	CPU []byte // opaque CPU state
	RAM []Bank

	ULA   ULA
	Clock Clock
}

// A Bank holds the contents of one 16K RAM bank.
type Bank struct {
	Num  int
	Data []byte
}

type ULA struct {
	Out    uint8
	Border uint8
	EarIn  bool
}

type Clock struct {
	Tstates uint32
	Frames  uint64
}

func (s *Spectrum) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(s.Version) })
		e.Field("profile", func(e *jx.Encoder) { e.Str(s.Profile) })
		e.Field("cpu", func(e *jx.Encoder) { e.Base64(s.CPU) })
		e.Field("ram", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, b := range s.RAM {
					e.Obj(func(e *jx.Encoder) {
						e.Field("num", func(e *jx.Encoder) { e.Int(b.Num) })
						e.Field("data", func(e *jx.Encoder) { e.Base64(b.Data) })
					})
				}
			})
		})
		e.Field("ula", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("out", func(e *jx.Encoder) { e.UInt8(s.ULA.Out) })
				e.Field("border", func(e *jx.Encoder) { e.UInt8(s.ULA.Border) })
				e.Field("ear_in", func(e *jx.Encoder) { e.Bool(s.ULA.EarIn) })
			})
		})
		e.Field("clock", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("tstates", func(e *jx.Encoder) { e.UInt32(s.Clock.Tstates) })
				e.Field("frames", func(e *jx.Encoder) { e.UInt64(s.Clock.Frames) })
			})
		})
	})
}

func (s *Spectrum) Decode(d *jx.Decoder) error {
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			s.Version, err = d.Int()
		case "profile":
			s.Profile, err = d.Str()
		case "cpu":
			s.CPU, err = d.Base64()
		case "ram":
			err = d.Arr(func(d *jx.Decoder) error {
				var b Bank
				if err := b.decode(d); err != nil {
					return err
				}
				s.RAM = append(s.RAM, b)
				return nil
			})
		case "ula":
			err = s.ULA.decode(d)
		case "clock":
			err = s.Clock.decode(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != Version {
		return fmt.Errorf("%w: %d", ErrVersion, s.Version)
	}
	return nil
}

func (b *Bank) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "num":
			b.Num, err = d.Int()
		case "data":
			b.Data, err = d.Base64()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (u *ULA) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "out":
			u.Out, err = d.UInt8()
		case "border":
			u.Border, err = d.UInt8()
		case "ear_in":
			u.EarIn, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (c *Clock) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "tstates":
			c.Tstates, err = d.UInt32()
		case "frames":
			c.Frames, err = d.UInt64()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (s *Spectrum) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	s.Encode(&e)
	return e.Bytes(), nil
}

func (s *Spectrum) UnmarshalJSON(data []byte) error {
	return s.Decode(jx.DecodeBytes(data))
}
