package input

import (
	"fmt"

	"speccy/hw/joystick"
	"speccy/hw/keyboard"
)

// JoystickKeys are the host keys driving the keyboard joystick.
type JoystickKeys struct {
	Up    Key `toml:"up"`
	Down  Key `toml:"down"`
	Left  Key `toml:"left"`
	Right Key `toml:"right"`
	Fire  Key `toml:"fire"`
}

// button returns the joystick button bound to k.
func (jk *JoystickKeys) button(k Key) (joystick.Button, bool) {
	if k == KeyNone {
		return 0, false
	}
	switch k {
	case jk.Up:
		return joystick.Up, true
	case jk.Down:
		return joystick.Down, true
	case jk.Left:
		return joystick.Left, true
	case jk.Right:
		return joystick.Right, true
	case jk.Fire:
		return joystick.Fire, true
	}
	return 0, false
}

type Config struct {
	JoystickKeyboard JoystickKeys `toml:"joystick_keyboard"`

	// Interface each joystick is plugged into: joystick 1, joystick 2 and
	// the keyboard joystick.
	Joysticks [joystick.NumJoysticks]joystick.Type `toml:"joysticks"`

	Joystick1Fire [NumFireButtons]keyboard.Key `toml:"joystick1_fire"`
	Joystick2Fire [NumFireButtons]keyboard.Key `toml:"joystick2_fire"`
}

func DefaultConfig() Config {
	fb := DefaultFireBindings()
	return Config{
		JoystickKeyboard: JoystickKeys{
			Up:    KeyUp,
			Down:  KeyDown,
			Left:  KeyLeft,
			Right: KeyRight,
			Fire:  KeyControlL,
		},
		Joysticks:     [joystick.NumJoysticks]joystick.Type{joystick.Kempston, joystick.None, joystick.Kempston},
		Joystick1Fire: fb[0],
		Joystick2Fire: fb[1],
	}
}

// FireBindings returns the fire buttons table described by cfg.
func (cfg *Config) FireBindings() FireBindings {
	return FireBindings{cfg.Joystick1Fire, cfg.Joystick2Fire}
}

// Check reports configuration errors.
func (cfg *Config) Check() error {
	jk := cfg.JoystickKeyboard
	seen := make(map[Key]string)
	for _, b := range []struct {
		name string
		key  Key
	}{
		{"up", jk.Up}, {"down", jk.Down}, {"left", jk.Left}, {"right", jk.Right}, {"fire", jk.Fire},
	} {
		if b.key == KeyNone {
			continue
		}
		if b.key.IsJoystick() {
			return fmt.Errorf("joystick_keyboard.%s: %v is not a keyboard key", b.name, b.key)
		}
		if other, ok := seen[b.key]; ok {
			return fmt.Errorf("joystick_keyboard: %v bound to both %s and %s", b.key, other, b.name)
		}
		seen[b.key] = b.name
	}
	return nil
}
