package input

import (
	"fmt"
	"sort"
	"strings"
)

// A Key identifies a host key or joystick button. Printable keys use their
// ASCII code, so every such key fits in the low 8 bits. Other keys live
// above 0xff.
type Key int32

const KeyNone Key = 0

// Printable keys.
const (
	KeyTab          Key = 0x09
	KeyReturn       Key = 0x0d
	KeyEscape       Key = 0x1b
	KeySpace        Key = ' '
	KeyExclam       Key = '!'
	KeyQuoteDbl     Key = '"'
	KeyNumberSign   Key = '#'
	KeyDollar       Key = '$'
	KeyPercent      Key = '%'
	KeyAmpersand    Key = '&'
	KeyApostrophe   Key = '\''
	KeyParenLeft    Key = '('
	KeyParenRight   Key = ')'
	KeyAsterisk     Key = '*'
	KeyPlus         Key = '+'
	KeyComma        Key = ','
	KeyMinus        Key = '-'
	KeyPeriod       Key = '.'
	KeySlash        Key = '/'
	Key0            Key = '0'
	Key1            Key = '1'
	Key2            Key = '2'
	Key3            Key = '3'
	Key4            Key = '4'
	Key5            Key = '5'
	Key6            Key = '6'
	Key7            Key = '7'
	Key8            Key = '8'
	Key9            Key = '9'
	KeyColon        Key = ':'
	KeySemicolon    Key = ';'
	KeyLess         Key = '<'
	KeyEqual        Key = '='
	KeyGreater      Key = '>'
	KeyQuestion     Key = '?'
	KeyAt           Key = '@'
	KeyBracketLeft  Key = '['
	KeyBackslash    Key = '\\'
	KeyBracketRight Key = ']'
	KeyAsciiCircum  Key = '^'
	KeyUnderscore   Key = '_'
	KeyBar          Key = '|'
)

// Letters, lower and upper case.
const (
	KeyA Key = 'A' + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

const (
	Keya Key = 'a' + iota
	Keyb
	Keyc
	Keyd
	Keye
	Keyf
	Keyg
	Keyh
	Keyi
	Keyj
	Keyk
	Keyl
	Keym
	Keyn
	Keyo
	Keyp
	Keyq
	Keyr
	Keys
	Keyt
	Keyu
	Keyv
	Keyw
	Keyx
	Keyy
	Keyz
)

// Editing and function keys.
const (
	KeyBackSpace Key = 0x100 + iota
	KeyKPEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCapsLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers. KeyShiftL has no bit in common with any printable key, the
// replay encoder uses it as a flag.
const (
	KeyShiftL Key = 0x200 + iota
	KeyShiftR
	KeyControlL
	KeyControlR
	KeyAltL
	KeyAltR
	KeyMetaL
	KeyMetaR
	KeySuperL
	KeySuperR
	KeyHyperL
	KeyHyperR
	KeyModeSwitch
)

// Joystick buttons.
const (
	JoystickUp Key = 0x1000 + iota
	JoystickDown
	JoystickLeft
	JoystickRight
	JoystickFire1
	JoystickFire2
	JoystickFire3
	JoystickFire4
	JoystickFire5
	JoystickFire6
	JoystickFire7
	JoystickFire8
	JoystickFire9
	JoystickFire10
	JoystickFire11
	JoystickFire12
	JoystickFire13
	JoystickFire14
	JoystickFire15
)

// NumFireButtons is the number of fire buttons per joystick.
const NumFireButtons = int(JoystickFire15-JoystickFire1) + 1

var (
	keyNames   map[Key]string
	keysByName map[string]Key
)

func init() {
	keyNames = map[Key]string{
		KeyNone:         "none",
		KeyTab:          "Tab",
		KeyReturn:       "Return",
		KeyEscape:       "Escape",
		KeySpace:        "space",
		KeyExclam:       "exclam",
		KeyQuoteDbl:     "quotedbl",
		KeyNumberSign:   "numbersign",
		KeyDollar:       "dollar",
		KeyPercent:      "percent",
		KeyAmpersand:    "ampersand",
		KeyApostrophe:   "apostrophe",
		KeyParenLeft:    "parenleft",
		KeyParenRight:   "parenright",
		KeyAsterisk:     "asterisk",
		KeyPlus:         "plus",
		KeyComma:        "comma",
		KeyMinus:        "minus",
		KeyPeriod:       "period",
		KeySlash:        "slash",
		KeyColon:        "colon",
		KeySemicolon:    "semicolon",
		KeyLess:         "less",
		KeyEqual:        "equal",
		KeyGreater:      "greater",
		KeyQuestion:     "question",
		KeyAt:           "at",
		KeyBracketLeft:  "bracketleft",
		KeyBackslash:    "backslash",
		KeyBracketRight: "bracketright",
		KeyAsciiCircum:  "asciicircum",
		KeyUnderscore:   "underscore",
		KeyBar:          "bar",
		KeyBackSpace:    "BackSpace",
		KeyKPEnter:      "KP_Enter",
		KeyUp:           "Up",
		KeyDown:         "Down",
		KeyLeft:         "Left",
		KeyRight:        "Right",
		KeyInsert:       "Insert",
		KeyDelete:       "Delete",
		KeyHome:         "Home",
		KeyEnd:          "End",
		KeyPageUp:       "Page_Up",
		KeyPageDown:     "Page_Down",
		KeyCapsLock:     "Caps_Lock",
		KeyShiftL:       "Shift_L",
		KeyShiftR:       "Shift_R",
		KeyControlL:     "Control_L",
		KeyControlR:     "Control_R",
		KeyAltL:         "Alt_L",
		KeyAltR:         "Alt_R",
		KeyMetaL:        "Meta_L",
		KeyMetaR:        "Meta_R",
		KeySuperL:       "Super_L",
		KeySuperR:       "Super_R",
		KeyHyperL:       "Hyper_L",
		KeyHyperR:       "Hyper_R",
		KeyModeSwitch:   "Mode_switch",
		JoystickUp:      "joystick_up",
		JoystickDown:    "joystick_down",
		JoystickLeft:    "joystick_left",
		JoystickRight:   "joystick_right",
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune(k))
	}
	for i := range Key(26) {
		keyNames[KeyA+i] = string(rune(KeyA + i))
		keyNames[Keya+i] = string(rune(Keya + i))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		keyNames[k] = fmt.Sprintf("F%d", k-KeyF1+1)
	}
	for k := JoystickFire1; k <= JoystickFire15; k++ {
		keyNames[k] = fmt.Sprintf("joystick_fire_%d", k-JoystickFire1+1)
	}

	keysByName = make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		keysByName[name] = k
	}
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%#x)", int32(k))
}

// KeyByName returns the key with the given name.
func KeyByName(name string) (Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}

// KeyNames returns the name of all known keys, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(keysByName))
	for name := range keysByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (k Key) MarshalText() ([]byte, error) {
	name, ok := keyNames[k]
	if !ok {
		return nil, fmt.Errorf("unnamed key %#x", int32(k))
	}
	return []byte(name), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*k = KeyNone
		return nil
	}
	key, ok := keysByName[s]
	if !ok {
		return fmt.Errorf("unrecognized key %q", s)
	}
	*k = key
	return nil
}

// IsJoystick reports whether k is a joystick button.
func (k Key) IsJoystick() bool {
	return k >= JoystickUp && k <= JoystickFire15
}

// IsFire reports whether k is a joystick fire button.
func (k Key) IsFire() bool {
	return k >= JoystickFire1 && k <= JoystickFire15
}
