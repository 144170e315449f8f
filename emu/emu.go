// Package emu drives a machine: it owns the input translator, schedules
// frames and routes host input to the emulated hardware.
package emu

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"speccy/emu/log"
	"speccy/hw/input"
	"speccy/hw/machine"
)

// A Source produces host input events. Run returns when ctx is done or when
// the source is closed by the user, which stops the emulation.
type Source interface {
	Run(ctx context.Context, out chan<- input.Event) error
}

// eventQueueLen is large enough to hold the events of a busy frame.
const eventQueueLen = 64

type Emulator struct {
	Machine    *machine.Machine
	Translator *input.Translator

	// Script, if set, is played at the start of each frame.
	Script *Script

	// Audio, if set, receives the samples of each frame.
	Audio func(samples []int16)

	// Realtime paces frames at the speed of the emulated machine instead of
	// running them as fast as possible.
	Realtime bool

	cfg Config
	rom []byte

	reset atomic.Bool
	quit  atomic.Bool
}

// New powers up the machine described by cfg with the given ROM.
func New(cfg Config, rom []byte) (*Emulator, error) {
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	p, _ := machine.ProfileByName(cfg.Machine.Profile)

	m := machine.New(machine.Config{
		SampleRate: cfg.Audio.SampleRate,
		Joysticks:  cfg.Input.Joysticks,
		Printer:    cfg.Machine.Printer,
	})
	if err := m.Reset(p, rom); err != nil {
		return nil, fmt.Errorf("power up failed: %w", err)
	}

	e := &Emulator{
		Machine:    m,
		Translator: input.NewTranslator(&m.Matrix, m.Joysticks, cfg.Input),
		cfg:        cfg,
		rom:        rom,
	}
	e.Translator.Menu = e.menu
	return e, nil
}

// menu handles the host keys which are not sent to the machine.
func (e *Emulator) menu(k input.Key) {
	switch k {
	case input.KeyF5:
		e.Reset()
	case input.KeyF10:
		e.Quit()
	default:
		log.ModEmu.DebugZ("unhandled key").Stringer("key", k).End()
	}
}

// Reset requests a machine reset, performed before the next frame.
func (e *Emulator) Reset() { e.reset.Store(true) }

// Quit requests the emulation loop to stop after the current frame.
func (e *Emulator) Quit() { e.quit.Store(true) }

func (e *Emulator) handleReset() error {
	if !e.reset.CompareAndSwap(true, false) {
		return nil
	}
	if err := e.Machine.Reset(e.Machine.Profile, e.rom); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	return nil
}

// Run runs the emulation for the given number of frames, or until ctx is
// done, the source is closed or Quit is called if frames is 0. Host events
// from src are applied between frames. src may be nil.
func (e *Emulator) Run(ctx context.Context, src Source, frames uint64) error {
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	events := make(chan input.Event, eventQueueLen)
	if src != nil {
		g.Go(func() error {
			err := src.Run(ctx, events)
			close(events)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		close(events)
	}

	g.Go(func() error {
		defer cancel()
		return e.loop(ctx, events, frames)
	})

	err := g.Wait()
	log.ModEmu.InfoZ("emulation loop exited").
		Uint64("frames", e.Machine.Clock.Frames).
		End()
	return err
}

// FramePeriod returns the duration of one emulated frame.
func (e *Emulator) FramePeriod() time.Duration {
	p := e.Machine.Profile.Timing
	return time.Duration(p.FrameLength()) * time.Second / time.Duration(p.ClockHz)
}

func (e *Emulator) loop(ctx context.Context, events <-chan input.Event, frames uint64) error {
	var tick <-chan time.Time
	if e.Realtime {
		ticker := time.NewTicker(e.FramePeriod())
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := uint64(0); frames == 0 || n < frames; n++ {
		if err := e.handleReset(); err != nil {
			return err
		}

		var open bool
		events, open = e.drain(events)
		if !open && frames == 0 && e.Script == nil {
			// The input source is gone, nothing can stop us later.
			return nil
		}
		if e.Script != nil {
			for _, ev := range e.Script.Events(e.Machine.Clock.Frames) {
				e.Translator.Handle(ev)
			}
		}

		samples := e.Machine.RunFrame()
		if e.Audio != nil && !e.cfg.Audio.DisableAudio {
			e.Audio(samples)
		}

		if e.quit.Load() {
			return nil
		}
		if tick != nil {
			select {
			case <-tick:
			case <-ctx.Done():
			}
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
	}
	return nil
}

// drain applies all queued events. It returns nil once the channel is
// closed so that later calls don't poll it again.
func (e *Emulator) drain(events <-chan input.Event) (<-chan input.Event, bool) {
	if events == nil {
		return nil, false
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil, false
			}
			e.Translator.Handle(ev)
		default:
			return events, true
		}
	}
}
