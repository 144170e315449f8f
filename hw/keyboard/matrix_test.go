package keyboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCoordsAreUnique(t *testing.T) {
	seen := make(map[Coord]Key)
	for _, k := range Keys() {
		c, ok := k.Coord()
		if !ok {
			t.Fatalf("%v has no coordinate", k)
		}
		if prev, dup := seen[c]; dup {
			t.Errorf("%v and %v share coordinate %+v", prev, k, c)
		}
		seen[c] = k
	}
	if len(seen) != NumRows*NumCols {
		t.Errorf("got %d coordinates, want %d", len(seen), NumRows*NumCols)
	}
}

func TestReadPort(t *testing.T) {
	tests := []struct {
		name  string
		press []Key
		hi    uint8
		want  uint8
	}{
		{"idle", nil, 0x00, 0x1f},
		{"caps shift", []Key{KeyCapsShift}, 0xfe, 0x1e},
		{"caps shift other row", []Key{KeyCapsShift}, 0xfd, 0x1f},
		{"v", []Key{KeyV}, 0xfe, 0x0f},
		{"space and b", []Key{KeySpace, KeyB}, 0x7f, 0x0e},
		{"0 and 6", []Key{Key0, Key6}, 0xef, 0x0e},
		{"rows combined", []Key{KeyQ, KeyA}, 0xf9, 0x1e},
		{"all rows", []Key{KeyEnter, KeyT}, 0x00, 0x0e},
		{"not in matrix", []Key{KeyJoystickFire, KeyNone}, 0x00, 0x1f},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Matrix
			for _, k := range tt.press {
				m.Press(k)
			}
			if got := m.ReadPort(tt.hi); got != tt.want {
				t.Errorf("ReadPort(%02x) = %02x, want %02x", tt.hi, got, tt.want)
			}
		})
	}
}

func TestMatrixNoRefCount(t *testing.T) {
	var m Matrix

	m.Press(KeyCapsShift)
	m.Press(KeyCapsShift)
	m.Release(KeyCapsShift)
	if m.IsPressed(KeyCapsShift) {
		t.Errorf("cells are plain booleans, a single release must clear")
	}
}

func TestMapping(t *testing.T) {
	var m Matrix

	m.PressMapping(Mapping{KeyCapsShift, Key0})
	m.PressMapping(Mapping{KeyA, KeyNone})

	want := []Key{Key0, KeyA, KeyCapsShift}
	if diff := cmp.Diff(want, m.Pressed()); diff != "" {
		t.Fatalf("pressed keys mismatch (-want +got):\n%s", diff)
	}

	m.ReleaseMapping(Mapping{KeyCapsShift, Key0})
	if diff := cmp.Diff([]Key{KeyA}, m.Pressed()); diff != "" {
		t.Fatalf("pressed keys mismatch (-want +got):\n%s", diff)
	}

	m.ReleaseAll()
	if got := m.Pressed(); len(got) != 0 {
		t.Fatalf("ReleaseAll left %v", got)
	}
}

func TestKeyText(t *testing.T) {
	for k := KeyNone; k < numKeys; k++ {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Key
		if err := got.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if got != k {
			t.Errorf("text %q decodes to %v, want %v", text, got, k)
		}
	}

	var k Key
	if err := k.UnmarshalText([]byte("shift")); err == nil {
		t.Errorf("UnmarshalText(shift) should fail")
	}
}
