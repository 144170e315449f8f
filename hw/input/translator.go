// Package input turns host input events into emulated keyboard and joystick
// state.
package input

import (
	"fmt"

	"speccy/emu/log"
	"speccy/hw/joystick"
	"speccy/hw/keyboard"
)

type EventType uint8

const (
	KeyPress EventType = iota
	KeyRelease
	JoystickPress
	JoystickRelease
)

func (t EventType) String() string {
	switch t {
	case KeyPress:
		return "keypress"
	case KeyRelease:
		return "keyrelease"
	case JoystickPress:
		return "joystick-press"
	case JoystickRelease:
		return "joystick-release"
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// An Event is a host input event. Key events carry the logical Key and the
// Native key reported by the host. Joystick events carry the joystick index
// (Which) and the Button.
type Event struct {
	Type   EventType
	Key    Key
	Native Key

	Which  int
	Button Key
}

// Overlay is a modal UI element (menu, dialog) which, while active, takes
// all input.
type Overlay interface {
	Active() bool
	HandleKey(k Key)
}

// Pointer is the host mouse pointer, which may be captured by the emulator
// window.
type Pointer interface {
	Captured() bool
	// Release asks to release the capture and reports whether the pointer is
	// still captured.
	Release() bool
}

// Translator dispatches host input events to the keyboard matrix and the
// joysticks.
type Translator struct {
	matrix    *keyboard.Matrix
	joysticks *joystick.Joysticks

	joyKeys JoystickKeys
	fire    FireBindings
	replay  ReplayEncoder

	// Optional collaborators.
	Overlay Overlay
	Pointer Pointer
	// Menu is called with the native key of keypresses nothing else handled,
	// it may open the overlay.
	Menu func(native Key)
}

func NewTranslator(matrix *keyboard.Matrix, joysticks *joystick.Joysticks, cfg Config) *Translator {
	return &Translator{
		matrix:    matrix,
		joysticks: joysticks,
		joyKeys:   cfg.JoystickKeyboard,
		fire:      cfg.FireBindings(),
	}
}

// Replay gives access to the replay encoder state.
func (t *Translator) Replay() *ReplayEncoder { return &t.replay }

// Handle processes a single event.
func (t *Translator) Handle(ev Event) {
	switch ev.Type {
	case KeyPress:
		t.keypress(ev)
	case KeyRelease:
		t.keyrelease(ev)
	case JoystickPress:
		t.joystick(ev, true)
	case JoystickRelease:
		t.joystick(ev, false)
	default:
		log.ModInput.FatalZ("unknown input event type").
			Stringer("type", ev.Type).
			End()
	}
}

func (t *Translator) overlayActive() bool {
	return t.Overlay != nil && t.Overlay.Active()
}

func (t *Translator) keypress(ev Event) {
	if t.overlayActive() {
		t.Overlay.HandleKey(ev.Native)
		return
	}

	if ev.Native == KeyEscape && t.Pointer != nil && t.Pointer.Captured() {
		if t.Pointer.Release() {
			return
		}
	}

	if b, ok := t.keyboardJoystick(ev.Key); ok {
		t.joysticks.Press(joystick.Keyboard, b, true)
		return
	}

	out, dec := t.replay.Feed(ev.Key)
	switch dec {
	case DecodePress, DecodeRelease:
		m, ok := Lookup(out)
		if !ok {
			log.ModInput.FatalZ("replay key has no mapping").
				Stringer("key", out).
				End()
			return
		}
		log.ModInput.DebugZ("replay").
			Stringer("key", ev.Key).
			Stringer("decode", dec).
			Stringer("keys", m).
			End()
		if dec == DecodePress {
			t.matrix.PressMapping(m)
		} else {
			t.matrix.ReleaseMapping(m)
		}
		return
	}

	if t.Menu != nil {
		t.Menu(ev.Native)
	}
}

// keyrelease only concerns the keyboard joystick, releases of emulated keys
// are spelled by keypresses (see ReplayEncoder). Releases reach the joystick
// even with an overlay active, so that no button stays stuck.
func (t *Translator) keyrelease(ev Event) {
	if b, ok := t.keyboardJoystick(ev.Key); ok {
		t.joysticks.Press(joystick.Keyboard, b, false)
	}
}

// keyboardJoystick returns the button bound to k. Bindings are ignored while
// the keyboard joystick is unplugged.
func (t *Translator) keyboardJoystick(k Key) (joystick.Button, bool) {
	if t.joysticks.Types[joystick.Keyboard] == joystick.None {
		return 0, false
	}
	return t.joyKeys.button(k)
}

func (t *Translator) joystick(ev Event, press bool) {
	if t.overlayActive() {
		if press {
			t.Overlay.HandleKey(ev.Button)
		}
		return
	}

	if ev.Button == JoystickFire2 && press && t.Menu != nil {
		t.Menu(KeyF1)
	}

	if !ev.Button.IsFire() {
		var b joystick.Button
		switch ev.Button {
		case JoystickUp:
			b = joystick.Up
		case JoystickDown:
			b = joystick.Down
		case JoystickLeft:
			b = joystick.Left
		case JoystickRight:
			b = joystick.Right
		default:
			log.ModInput.FatalZ("unknown joystick button").
				Stringer("button", ev.Button).
				End()
			return
		}
		t.joysticks.Press(ev.Which, b, press)
		return
	}

	key := t.fire.Resolve(ev.Which, ev.Button)
	switch {
	case key == keyboard.KeyJoystickFire:
		t.joysticks.Press(ev.Which, joystick.Fire, press)
	case press:
		t.matrix.Press(key)
	default:
		t.matrix.Release(key)
	}
}
