package input

// Replay recordings store their input as ordinary typed keys. A press or
// release of an emulated key is spelled with one plain key, possibly
// preceded by Shift_L, and the encoder turns the typed keys back into the
// recorded transitions.

type codePair struct {
	code, key Key
}

var replayPressCodes = [...]codePair{
	{Keya, Key1},
	{Keyc, Key2},
	{Keye, Key3},
	{Keyg, Key4},
	{Keyi, Key5},
	{Keyk, Key6},
	{Keym, Key7},
	{Keyo, Key8},
	{Keyq, Key9},
	{Keys, Key0},
	{Keyu, Keyq},
	{Keyw, Keyw},
	{Keyy, Keye},
	{KeyShiftL | Keya, Keyr},
	{KeyShiftL | Keyc, Keyt},
	{KeyShiftL | Keye, Keyy},
	{KeyShiftL | Keyg, Keyu},
	{KeyShiftL | Keyi, Keyi},
	{KeyShiftL | Keyk, Keyo},
	{KeyShiftL | Keym, Keyp},
	{KeyShiftL | Keyo, Keya},
	{KeyShiftL | Keyq, Keys},
	{KeyShiftL | Keys, Keyd},
	{KeyShiftL | Keyu, Keyf},
	{KeyShiftL | Keyw, Keyg},
	{KeyShiftL | Keyy, Keyh},
	{Key0, Keyj},
	{Key2, Keyk},
	{Key4, Keyl},
	{Key6, KeyReturn},
	{Key8, KeyShiftL},
	{KeyShiftL | KeyComma, Keyz},
	{KeyMinus, Keyx},
	{KeyBracketLeft, Keyc},
	{KeySemicolon, Keyv},
	{KeyComma, Keyb},
	{KeySlash, Keyn},
	{KeyShiftL | KeyBracketLeft, Keym},
	{KeyShiftL | Key1, KeyControlR},
	{KeyShiftL | Key5, KeySpace},
}

var replayReleaseCodes = [...]codePair{
	{Keyb, Key1},
	{Keyd, Key2},
	{Keyf, Key3},
	{Keyh, Key4},
	{Keyj, Key5},
	{Keyl, Key6},
	{Keyn, Key7},
	{Keyp, Key8},
	{Keyr, Key9},
	{Keyt, Key0},
	{Keyv, Keyq},
	{Keyx, Keyw},
	{Keyz, Keye},
	{KeyShiftL | Keyb, Keyr},
	{KeyShiftL | Keyd, Keyt},
	{KeyShiftL | Keyf, Keyy},
	{KeyShiftL | Keyh, Keyu},
	{KeyShiftL | Keyj, Keyi},
	{KeyShiftL | Keyl, Keyo},
	{KeyShiftL | Keyn, Keyp},
	{KeyShiftL | Keyp, Keya},
	{KeyShiftL | Keyr, Keys},
	{KeyShiftL | Keyt, Keyd},
	{KeyShiftL | Keyv, Keyf},
	{KeyShiftL | Keyx, Keyg},
	{KeyShiftL | Keyz, Keyh},
	{Key1, Keyj},
	{Key3, Keyk},
	{Key5, Keyl},
	{Key7, KeyReturn},
	{Key9, KeyShiftL},
	{KeyShiftL | KeyPeriod, Keyz},
	{KeyEqual, Keyx},
	{KeyBracketRight, Keyc},
	{KeyShiftL | KeySemicolon, Keyv},
	{KeyPeriod, Keyb},
	{KeyShiftL | KeySlash, Keyn},
	{KeyShiftL | KeyBracketRight, Keym},
	{KeyShiftL | Key4, KeyControlR},
	{KeyShiftL | Key6, KeySpace},
}

var replayPress, replayRelease map[Key]Key

func init() {
	replayPress = make(map[Key]Key, len(replayPressCodes))
	for _, p := range replayPressCodes {
		replayPress[p.code] = p.key
	}
	replayRelease = make(map[Key]Key, len(replayReleaseCodes))
	for _, p := range replayReleaseCodes {
		replayRelease[p.code] = p.key
	}
}

// A Decode is the outcome of feeding a key to the ReplayEncoder.
type Decode uint8

const (
	NoDecode Decode = iota
	DecodePress
	DecodeRelease
)

func (d Decode) String() string {
	switch d {
	case DecodePress:
		return "press"
	case DecodeRelease:
		return "release"
	}
	return "none"
}

// ReplayEncoder decodes typed keys into presses and releases of recorded
// keys. It accumulates the last plain key and the shift flag until the pair
// spells a recorded transition.
type ReplayEncoder struct {
	acc Key
}

// Feed updates the accumulator with k. On a successful decode it returns
// the recorded key with the kind of transition, and the accumulator is
// cleared. Otherwise the accumulator keeps its updated value.
func (e *ReplayEncoder) Feed(k Key) (Key, Decode) {
	if k == KeyShiftL {
		e.acc |= KeyShiftL
	}
	if k >= 0 && k < 256 {
		e.acc = (e.acc &^ 0xff) | k
	}

	if out, ok := replayRelease[e.acc]; ok {
		e.acc = 0
		return out, DecodeRelease
	}
	if out, ok := replayPress[e.acc]; ok {
		e.acc = 0
		return out, DecodePress
	}
	return KeyNone, NoDecode
}

// Accumulator returns the pending, not yet decoded, state.
func (e *ReplayEncoder) Accumulator() Key {
	return e.acc
}
