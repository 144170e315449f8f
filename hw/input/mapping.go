package input

import "speccy/hw/keyboard"

// spectrumKeys maps host keys to the emulated keys that type the same
// character.
var spectrumKeys = map[Key]keyboard.Mapping{
	KeyTab:          {keyboard.KeyCapsShift, keyboard.KeySymbolShift},
	KeyReturn:       {keyboard.KeyEnter, keyboard.KeyNone},
	KeyKPEnter:      {keyboard.KeyEnter, keyboard.KeyNone},
	KeyEscape:       {keyboard.KeyCapsShift, keyboard.Key1},
	KeySpace:        {keyboard.KeySpace, keyboard.KeyNone},
	KeyExclam:       {keyboard.KeySymbolShift, keyboard.Key1},
	KeyQuoteDbl:     {keyboard.KeySymbolShift, keyboard.KeyP},
	KeyNumberSign:   {keyboard.KeySymbolShift, keyboard.Key3},
	KeyDollar:       {keyboard.KeySymbolShift, keyboard.Key4},
	KeyPercent:      {keyboard.KeySymbolShift, keyboard.Key5},
	KeyAmpersand:    {keyboard.KeySymbolShift, keyboard.Key6},
	KeyApostrophe:   {keyboard.KeySymbolShift, keyboard.Key7},
	KeyParenLeft:    {keyboard.KeySymbolShift, keyboard.Key8},
	KeyParenRight:   {keyboard.KeySymbolShift, keyboard.Key9},
	KeyAsterisk:     {keyboard.KeySymbolShift, keyboard.KeyB},
	KeyPlus:         {keyboard.KeySymbolShift, keyboard.KeyK},
	KeyComma:        {keyboard.KeySymbolShift, keyboard.KeyN},
	KeyMinus:        {keyboard.KeySymbolShift, keyboard.KeyJ},
	KeyPeriod:       {keyboard.KeySymbolShift, keyboard.KeyM},
	KeySlash:        {keyboard.KeySymbolShift, keyboard.KeyV},
	KeyColon:        {keyboard.KeySymbolShift, keyboard.KeyZ},
	KeySemicolon:    {keyboard.KeySymbolShift, keyboard.KeyO},
	KeyLess:         {keyboard.KeySymbolShift, keyboard.KeyR},
	KeyEqual:        {keyboard.KeySymbolShift, keyboard.KeyL},
	KeyGreater:      {keyboard.KeySymbolShift, keyboard.KeyT},
	KeyQuestion:     {keyboard.KeySymbolShift, keyboard.KeyC},
	KeyAt:           {keyboard.KeySymbolShift, keyboard.Key2},
	KeyBracketLeft:  {keyboard.KeySymbolShift, keyboard.KeyY},
	KeyBracketRight: {keyboard.KeySymbolShift, keyboard.KeyU},
	KeyAsciiCircum:  {keyboard.KeySymbolShift, keyboard.KeyH},
	KeyUnderscore:   {keyboard.KeySymbolShift, keyboard.Key0},
	KeyBar:          {keyboard.KeySymbolShift, keyboard.KeyS},
	KeyBackslash:    {keyboard.KeySymbolShift, keyboard.KeyD},

	KeyBackSpace: {keyboard.KeyCapsShift, keyboard.Key0},
	KeyDelete:    {keyboard.KeyCapsShift, keyboard.Key0},
	KeyUp:        {keyboard.KeyCapsShift, keyboard.Key7},
	KeyDown:      {keyboard.KeyCapsShift, keyboard.Key6},
	KeyLeft:      {keyboard.KeyCapsShift, keyboard.Key5},
	KeyRight:     {keyboard.KeyCapsShift, keyboard.Key8},
	KeyCapsLock:  {keyboard.KeyCapsShift, keyboard.Key2},

	KeyShiftL:     {keyboard.KeyCapsShift, keyboard.KeyNone},
	KeyShiftR:     {keyboard.KeyCapsShift, keyboard.KeyNone},
	KeyControlL:   {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeyControlR:   {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeyAltL:       {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeyAltR:       {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeyMetaL:      {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeyMetaR:      {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeySuperL:     {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeySuperR:     {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeyHyperL:     {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeyHyperR:     {keyboard.KeySymbolShift, keyboard.KeyNone},
	KeyModeSwitch: {keyboard.KeySymbolShift, keyboard.KeyNone},
}

func init() {
	digits := [10]keyboard.Key{
		keyboard.Key0, keyboard.Key1, keyboard.Key2, keyboard.Key3, keyboard.Key4,
		keyboard.Key5, keyboard.Key6, keyboard.Key7, keyboard.Key8, keyboard.Key9,
	}
	for i, sk := range digits {
		spectrumKeys[Key0+Key(i)] = keyboard.Mapping{Key1: sk}
	}

	letters := [26]keyboard.Key{
		keyboard.KeyA, keyboard.KeyB, keyboard.KeyC, keyboard.KeyD, keyboard.KeyE,
		keyboard.KeyF, keyboard.KeyG, keyboard.KeyH, keyboard.KeyI, keyboard.KeyJ,
		keyboard.KeyK, keyboard.KeyL, keyboard.KeyM, keyboard.KeyN, keyboard.KeyO,
		keyboard.KeyP, keyboard.KeyQ, keyboard.KeyR, keyboard.KeyS, keyboard.KeyT,
		keyboard.KeyU, keyboard.KeyV, keyboard.KeyW, keyboard.KeyX, keyboard.KeyY,
		keyboard.KeyZ,
	}
	for i, sk := range letters {
		spectrumKeys[Keya+Key(i)] = keyboard.Mapping{Key1: sk}
		spectrumKeys[KeyA+Key(i)] = keyboard.Mapping{Key1: keyboard.KeyCapsShift, Key2: sk}
	}
}

// Lookup returns the emulated keys a host key stands for.
func Lookup(k Key) (keyboard.Mapping, bool) {
	m, ok := spectrumKeys[k]
	return m, ok
}
