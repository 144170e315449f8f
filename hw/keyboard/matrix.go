// Package keyboard models the 8x5 key matrix scanned by the ULA.
package keyboard

import "speccy/emu/log"

const (
	NumRows = 8
	NumCols = 5
)

// Matrix holds the state of each key of the keyboard. Cells are independent
// booleans: pressing a key twice then releasing it once leaves it released.
type Matrix struct {
	cells [NumRows][NumCols]bool
}

// Press marks k as depressed. Keys outside the matrix are ignored.
func (m *Matrix) Press(k Key) {
	m.set(k, true)
}

// Release marks k as released. Keys outside the matrix are ignored.
func (m *Matrix) Release(k Key) {
	m.set(k, false)
}

func (m *Matrix) set(k Key, pressed bool) {
	c, ok := k.Coord()
	if !ok {
		return
	}
	m.cells[c.Row][c.Col] = pressed

	log.ModInput.DebugZ("matrix").
		Stringer("key", k).
		Bool("pressed", pressed).
		End()
}

func (m *Matrix) PressMapping(km Mapping) {
	m.Press(km.Key1)
	m.Press(km.Key2)
}

func (m *Matrix) ReleaseMapping(km Mapping) {
	m.Release(km.Key1)
	m.Release(km.Key2)
}

// IsPressed reports whether k is depressed.
func (m *Matrix) IsPressed(k Key) bool {
	c, ok := k.Coord()
	return ok && m.cells[c.Row][c.Col]
}

// ReleaseAll releases every key.
func (m *Matrix) ReleaseAll() {
	m.cells = [NumRows][NumCols]bool{}
}

// ReadPort returns the 5 active-low column bits seen by the ULA when the high
// byte of the port address is hi. Each zero bit of hi selects a row, the
// result combines all selected rows.
func (m *Matrix) ReadPort(hi uint8) uint8 {
	val := uint8(0x1f)
	for row := range NumRows {
		if hi&(1<<row) != 0 {
			continue
		}
		for col := range NumCols {
			if m.cells[row][col] {
				val &^= 1 << col
			}
		}
	}
	return val
}

// Pressed returns the depressed keys, in Key order.
func (m *Matrix) Pressed() []Key {
	var keys []Key
	for _, k := range Keys() {
		if m.IsPressed(k) {
			keys = append(keys, k)
		}
	}
	return keys
}
