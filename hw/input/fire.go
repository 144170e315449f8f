package input

import (
	"speccy/emu/log"
	"speccy/hw/joystick"
	"speccy/hw/keyboard"
)

// FireBindings holds, for each host game controller, the emulated key bound
// to each of its fire buttons.
type FireBindings [2][NumFireButtons]keyboard.Key

// DefaultFireBindings binds every fire button to the joystick fire button.
func DefaultFireBindings() FireBindings {
	var fb FireBindings
	for which := range fb {
		for i := range fb[which] {
			fb[which][i] = keyboard.KeyJoystickFire
		}
	}
	return fb
}

// Resolve returns the binding of a fire button. Asking for anything else
// than a fire button of joystick 1 or 2 is a programming error and aborts.
func (fb *FireBindings) Resolve(which int, button Key) keyboard.Key {
	if which < joystick.Joystick1 || which > joystick.Joystick2 || !button.IsFire() {
		log.ModInput.FatalZ("no fire button binding").
			Int("which", which).
			Stringer("button", button).
			End()
		return keyboard.KeyNone
	}
	return fb[which][button-JoystickFire1]
}
