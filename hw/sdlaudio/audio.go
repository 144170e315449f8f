// Package sdlaudio plays the beeper samples on the host audio device.
package sdlaudio

import (
	"encoding/binary"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"speccy/emu/log"
)

const (
	AudioFormat     = sdl.AUDIO_S16LSB
	AudioChannels   = 2
	AudioBufferSize = 1024

	bytesPerFrame = 2 * AudioChannels
)

// Player queues mono frames of samples to an SDL audio device, duplicated
// on both channels.
type Player struct {
	dev sdl.AudioDeviceID
	buf []byte

	// queued audio above which frames are dropped, in bytes.
	maxQueued uint32
}

// Open opens the default audio device. SDL calls are made through sdl.Do,
// so sdl.Main must be running.
func Open(sampleRate int) (*Player, error) {
	p := &Player{
		// 100ms
		maxQueued: uint32(sampleRate / 10 * bytesPerFrame),
	}

	var err error
	sdl.Do(func() {
		if err = sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
			err = fmt.Errorf("failed to initialize SDL audio: %s", err)
			return
		}
		spec := sdl.AudioSpec{
			Freq:     int32(sampleRate),
			Format:   AudioFormat,
			Channels: AudioChannels,
			Samples:  AudioBufferSize,
		}
		p.dev, err = sdl.OpenAudioDevice("", false, &spec, nil, 0)
		if err != nil {
			err = fmt.Errorf("failed to open audio device: %s", err)
			return
		}
		sdl.PauseAudioDevice(p.dev, false)
	})
	if err != nil {
		return nil, err
	}

	log.ModSound.InfoZ("audio enabled").
		Int("rate", sampleRate).
		End()
	return p, nil
}

// Play queues the samples of one frame.
func (p *Player) Play(samples []int16) {
	if sdl.GetQueuedAudioSize(p.dev) > p.maxQueued {
		log.ModSound.DebugZ("audio queue full, frame dropped").End()
		return
	}

	p.buf = appendStereo(p.buf[:0], samples)
	if err := sdl.QueueAudio(p.dev, p.buf); err != nil {
		log.ModSound.DebugZ("failed to queue audio buffer").Error("err", err).End()
	}
}

func (p *Player) Close() {
	sdl.Do(func() {
		sdl.CloseAudioDevice(p.dev)
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
	})
}

// appendStereo appends the little endian encoding of mono samples to buf,
// each sample written on both channels.
func appendStereo(buf []byte, samples []int16) []byte {
	for _, s := range samples {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
	}
	return buf
}
