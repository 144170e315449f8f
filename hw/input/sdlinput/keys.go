// Package sdlinput converts SDL keyboard and game controller events into
// input events.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"speccy/hw/input"
)

var keycodes = map[sdl.Keycode]input.Key{
	sdl.K_BACKSPACE: input.KeyBackSpace,
	sdl.K_TAB:       input.KeyTab,
	sdl.K_RETURN:    input.KeyReturn,
	sdl.K_ESCAPE:    input.KeyEscape,
	sdl.K_DELETE:    input.KeyDelete,
	sdl.K_KP_ENTER:  input.KeyKPEnter,
	sdl.K_UP:        input.KeyUp,
	sdl.K_DOWN:      input.KeyDown,
	sdl.K_LEFT:      input.KeyLeft,
	sdl.K_RIGHT:     input.KeyRight,
	sdl.K_INSERT:    input.KeyInsert,
	sdl.K_HOME:      input.KeyHome,
	sdl.K_END:       input.KeyEnd,
	sdl.K_PAGEUP:    input.KeyPageUp,
	sdl.K_PAGEDOWN:  input.KeyPageDown,
	sdl.K_CAPSLOCK:  input.KeyCapsLock,
	sdl.K_F1:        input.KeyF1,
	sdl.K_F2:        input.KeyF2,
	sdl.K_F3:        input.KeyF3,
	sdl.K_F4:        input.KeyF4,
	sdl.K_F5:        input.KeyF5,
	sdl.K_F6:        input.KeyF6,
	sdl.K_F7:        input.KeyF7,
	sdl.K_F8:        input.KeyF8,
	sdl.K_F9:        input.KeyF9,
	sdl.K_F10:       input.KeyF10,
	sdl.K_F11:       input.KeyF11,
	sdl.K_F12:       input.KeyF12,
	sdl.K_LSHIFT:    input.KeyShiftL,
	sdl.K_RSHIFT:    input.KeyShiftR,
	sdl.K_LCTRL:     input.KeyControlL,
	sdl.K_RCTRL:     input.KeyControlR,
	sdl.K_LALT:      input.KeyAltL,
	sdl.K_RALT:      input.KeyAltR,
	sdl.K_LGUI:      input.KeySuperL,
	sdl.K_RGUI:      input.KeySuperR,
	sdl.K_MODE:      input.KeyModeSwitch,
}

// Key returns the input key for an SDL key code. Printable keys share their
// code with input keys.
func Key(code sdl.Keycode) (input.Key, bool) {
	if k, ok := keycodes[code]; ok {
		return k, true
	}
	if code >= ' ' && code <= '~' {
		k := input.Key(code)
		if k >= input.KeyA && k <= input.KeyZ {
			// SDL reports unshifted keys.
			return input.KeyNone, false
		}
		return k, true
	}
	return input.KeyNone, false
}

// KeyEvent converts an SDL keyboard event. Key repeats are dropped.
func KeyEvent(e sdl.KeyboardEvent) (input.Event, bool) {
	if e.Repeat != 0 {
		return input.Event{}, false
	}
	k, ok := Key(e.Keysym.Sym)
	if !ok {
		return input.Event{}, false
	}

	ev := input.Event{Type: input.KeyRelease, Key: k, Native: k}
	if e.State == sdl.PRESSED {
		ev.Type = input.KeyPress
	}
	return ev, true
}
