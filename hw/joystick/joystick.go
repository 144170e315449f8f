// Package joystick holds the state of the emulated joysticks and the
// interfaces they are plugged into.
package joystick

import (
	"fmt"

	"speccy/emu/log"
	"speccy/hw/keyboard"
)

type Button uint8

const (
	Up Button = iota
	Down
	Left
	Right
	Fire

	NumButtons
)

func (b Button) String() string {
	switch b {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Fire:
		return "fire"
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// Joysticks 0 and 1 are host game controllers, the keyboard joystick is
// driven by host keys.
const (
	Joystick1 = 0
	Joystick2 = 1
	Keyboard  = 2

	NumJoysticks = 3
)

// Type is the interface a joystick is plugged into.
type Type uint8

const (
	None Type = iota
	Kempston
	Cursor
	Sinclair1
	Sinclair2

	numTypes
)

var typeNames = [numTypes]string{"none", "kempston", "cursor", "sinclair1", "sinclair2"}

func (t Type) String() string {
	if t >= numTypes {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeNames[t]
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	for i, name := range typeNames {
		if name == string(text) {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("unrecognized joystick type %q", string(text))
}

// Interfaces wired to the keyboard see the joystick as key presses.
var keyboardJoysticks = [numTypes][NumButtons]keyboard.Key{
	Cursor:    {Up: keyboard.Key7, Down: keyboard.Key6, Left: keyboard.Key5, Right: keyboard.Key8, Fire: keyboard.Key0},
	Sinclair1: {Up: keyboard.Key9, Down: keyboard.Key8, Left: keyboard.Key6, Right: keyboard.Key7, Fire: keyboard.Key0},
	Sinclair2: {Up: keyboard.Key4, Down: keyboard.Key3, Left: keyboard.Key1, Right: keyboard.Key2, Fire: keyboard.Key5},
}

// Kempston data bits, active high.
var kempstonBits = [NumButtons]uint8{
	Right: 0x01,
	Left:  0x02,
	Down:  0x04,
	Up:    0x08,
	Fire:  0x10,
}

// Joysticks holds the button state of every joystick.
type Joysticks struct {
	Types [NumJoysticks]Type

	state  [NumJoysticks][NumButtons]bool
	matrix *keyboard.Matrix
}

// New returns the joysticks, keyboard interfaces drive matrix.
func New(matrix *keyboard.Matrix, types [NumJoysticks]Type) *Joysticks {
	return &Joysticks{Types: types, matrix: matrix}
}

// Press sets the state of a button.
func (j *Joysticks) Press(which int, b Button, pressed bool) {
	if which < 0 || which >= NumJoysticks || b >= NumButtons {
		log.ModInput.FatalZ("invalid joystick button").
			Int("which", which).
			Stringer("button", b).
			End()
		return
	}

	j.state[which][b] = pressed

	log.ModInput.DebugZ("joystick").
		Int("which", which).
		Stringer("button", b).
		Bool("pressed", pressed).
		End()

	if key := keyboardJoysticks[j.Types[which]][b]; key != keyboard.KeyNone {
		if pressed {
			j.matrix.Press(key)
		} else {
			j.matrix.Release(key)
		}
	}
}

func (j *Joysticks) IsPressed(which int, b Button) bool {
	return j.state[which][b]
}

// ReleaseAll releases every button of every joystick.
func (j *Joysticks) ReleaseAll() {
	j.state = [NumJoysticks][NumButtons]bool{}
}

// ReadKempston is the read handler of the Kempston interface. It combines
// all joysticks plugged into it.
func (j *Joysticks) ReadKempston(port uint16) uint8 {
	val := uint8(0)
	for which := range NumJoysticks {
		if j.Types[which] != Kempston {
			continue
		}
		for b := range NumButtons {
			if j.state[which][b] {
				val |= kempstonBits[b]
			}
		}
	}
	return val
}
