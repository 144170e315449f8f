package ula

import (
	"github.com/arl/blip"

	"speccy/emu/log"
)

const (
	MaxSampleRate      = 96000
	maxSamplesPerFrame = MaxSampleRate / 50 * 2
)

// Speaker levels for the EAR and MIC output bits.
const (
	earLevel = 8000
	micLevel = 1000
)

// Beeper converts speaker level changes, stamped in CPU cycles, into band
// limited audio samples.
type Beeper struct {
	buf   *blip.Buffer
	out   [maxSamplesPerFrame]int16
	level int32

	clockRate  float64
	sampleRate float64
}

func NewBeeper(clockRate, sampleRate int) *Beeper {
	if sampleRate <= 0 || sampleRate > MaxSampleRate {
		sampleRate = MaxSampleRate
	}
	b := &Beeper{
		buf:        blip.NewBuffer(maxSamplesPerFrame),
		clockRate:  float64(clockRate),
		sampleRate: float64(sampleRate),
	}
	b.Reset()
	return b
}

func (b *Beeper) Reset() {
	b.level = 0
	b.buf.Clear()
	b.buf.SetRates(b.clockRate, b.sampleRate)
}

// SetOutput records the state of the ULA output bits at the given cycle of
// the frame.
func (b *Beeper) SetOutput(cycle uint32, ear, mic bool) {
	level := int32(0)
	if ear {
		level += earLevel
	}
	if mic {
		level += micLevel
	}
	if level == b.level {
		return
	}
	b.buf.AddDelta(uint64(cycle), level-b.level)
	b.level = level
}

// EndFrame closes the frame of the given length, in cycles, and returns the
// samples it produced. The returned slice is only valid until the next
// call.
func (b *Beeper) EndFrame(length uint32) []int16 {
	b.buf.EndFrame(int(length))
	n := b.buf.ReadSamples(b.out[:], maxSamplesPerFrame, blip.Mono)

	log.ModSound.DebugZ("end frame").
		Int("samples", n).
		Int32("level", b.level).
		End()
	return b.out[:n]
}
