package keyboard

import "fmt"

// A Key is a key of the emulated keyboard.
type Key uint8

const (
	KeyNone Key = iota

	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0

	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP

	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeyEnter

	KeyCapsShift
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeySymbolShift
	KeySpace

	// KeyJoystickFire is not a key of the matrix. A fire button bound to it
	// acts as the fire button of the joystick.
	KeyJoystickFire

	numKeys
)

var keyNames = [numKeys]string{
	KeyNone: "none",
	Key1:    "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",
	KeyQ: "q", KeyW: "w", KeyE: "e", KeyR: "r", KeyT: "t",
	KeyY: "y", KeyU: "u", KeyI: "i", KeyO: "o", KeyP: "p",
	KeyA: "a", KeyS: "s", KeyD: "d", KeyF: "f", KeyG: "g",
	KeyH: "h", KeyJ: "j", KeyK: "k", KeyL: "l", KeyEnter: "enter",
	KeyCapsShift: "caps_shift",
	KeyZ:         "z", KeyX: "x", KeyC: "c", KeyV: "v", KeyB: "b",
	KeyN: "n", KeyM: "m",
	KeySymbolShift:  "symbol_shift",
	KeySpace:        "space",
	KeyJoystickFire: "joystick_fire",
}

func (k Key) String() string {
	if k >= numKeys {
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
	return keyNames[k]
}

func (k Key) MarshalText() ([]byte, error) {
	if k >= numKeys {
		return nil, fmt.Errorf("invalid key %d", uint8(k))
	}
	return []byte(keyNames[k]), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		*k = KeyNone
		return nil
	}
	for i, name := range keyNames {
		if name == s {
			*k = Key(i)
			return nil
		}
	}
	return fmt.Errorf("unrecognized spectrum key %q", s)
}

// A Coord locates a key in the matrix.
type Coord struct {
	Row, Col uint8
}

// coords is indexed by Key. Rows follow the address line (A8 to A15) that
// selects them, columns follow the data bit (D0 to D4).
var coords = [numKeys]Coord{
	KeyCapsShift: {0, 0}, KeyZ: {0, 1}, KeyX: {0, 2}, KeyC: {0, 3}, KeyV: {0, 4},
	KeyA: {1, 0}, KeyS: {1, 1}, KeyD: {1, 2}, KeyF: {1, 3}, KeyG: {1, 4},
	KeyQ: {2, 0}, KeyW: {2, 1}, KeyE: {2, 2}, KeyR: {2, 3}, KeyT: {2, 4},
	Key1: {3, 0}, Key2: {3, 1}, Key3: {3, 2}, Key4: {3, 3}, Key5: {3, 4},
	Key0: {4, 0}, Key9: {4, 1}, Key8: {4, 2}, Key7: {4, 3}, Key6: {4, 4},
	KeyP: {5, 0}, KeyO: {5, 1}, KeyI: {5, 2}, KeyU: {5, 3}, KeyY: {5, 4},
	KeyEnter: {6, 0}, KeyL: {6, 1}, KeyK: {6, 2}, KeyJ: {6, 3}, KeyH: {6, 4},
	KeySpace: {7, 0}, KeySymbolShift: {7, 1}, KeyM: {7, 2}, KeyN: {7, 3}, KeyB: {7, 4},
}

// Coord returns the matrix location of k. ok is false for keys that are not
// part of the matrix.
func (k Key) Coord() (c Coord, ok bool) {
	if k == KeyNone || k >= KeyJoystickFire {
		return Coord{}, false
	}
	return coords[k], true
}

// Keys returns all matrix keys, in Key order.
func Keys() []Key {
	keys := make([]Key, 0, numKeys)
	for k := Key1; k < KeyJoystickFire; k++ {
		keys = append(keys, k)
	}
	return keys
}

// A Mapping is the pair of emulated keys a host key stands for. Either may
// be KeyNone.
type Mapping struct {
	Key1, Key2 Key
}

func (m Mapping) String() string {
	if m.Key2 == KeyNone {
		return m.Key1.String()
	}
	return m.Key1.String() + "+" + m.Key2.String()
}
