package sdlinput

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"speccy/emu/log"
	"speccy/hw/input"
)

const pollInterval = 5 * time.Millisecond

// Source reads host events from SDL. SDL calls are made on the main thread,
// through sdl.Do, so sdl.Main must be running.
type Source struct {
	win  *sdl.Window
	gcs  *GameControllers
	quit bool
}

// Open initializes SDL and creates the window receiving keyboard focus.
func Open(title string) (*Source, error) {
	var src Source
	var err error
	sdl.Do(func() {
		if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER); err != nil {
			err = fmt.Errorf("failed to initialize SDL: %s", err)
			return
		}
		src.win, err = sdl.CreateWindow(title,
			sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
			320, 240, sdl.WINDOW_SHOWN)
		if err != nil {
			err = fmt.Errorf("failed to create window: %s", err)
			return
		}
		src.gcs = NewGameControllers()
	})
	if err != nil {
		return nil, err
	}
	return &src, nil
}

// Run sends converted events to out until ctx is done or the window is
// closed.
func (src *Source) Run(ctx context.Context, out chan<- input.Event) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		var evs []input.Event
		sdl.Do(func() {
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				evs = src.convert(event, evs)
			}
		})

		for _, ev := range evs {
			select {
			case out <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if src.quit {
			log.ModInput.InfoZ("window closed").End()
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (src *Source) convert(event sdl.Event, evs []input.Event) []input.Event {
	switch e := event.(type) {
	case sdl.QuitEvent:
		src.quit = true
	case sdl.KeyboardEvent:
		if ev, ok := KeyEvent(e); ok {
			evs = append(evs, ev)
		}
	case sdl.ControllerDeviceEvent:
		src.gcs.UpdateDevices(e)
	case sdl.ControllerButtonEvent:
		if ev, ok := src.gcs.ButtonEvent(e); ok {
			evs = append(evs, ev)
		}
	case sdl.ControllerAxisEvent:
		evs = append(evs, src.gcs.AxisEvent(e)...)
	}
	return evs
}

func (src *Source) Close() {
	sdl.Do(func() {
		src.gcs.Close()
		src.win.Destroy()
		sdl.Quit()
	})
}
