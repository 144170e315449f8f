package sdlinput

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/veandco/go-sdl2/sdl"

	"speccy/hw/input"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		e    sdl.KeyboardEvent
		want *input.Event // nil if dropped
	}{
		{
			name: "letter",
			e:    sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_a}},
			want: &input.Event{Type: input.KeyPress, Key: input.Keya, Native: input.Keya},
		},
		{
			name: "release",
			e:    sdl.KeyboardEvent{State: sdl.RELEASED, Keysym: sdl.Keysym{Sym: sdl.K_RETURN}},
			want: &input.Event{Type: input.KeyRelease, Key: input.KeyReturn, Native: input.KeyReturn},
		},
		{
			name: "shift",
			e:    sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_LSHIFT}},
			want: &input.Event{Type: input.KeyPress, Key: input.KeyShiftL, Native: input.KeyShiftL},
		},
		{
			name: "backspace",
			e:    sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_BACKSPACE}},
			want: &input.Event{Type: input.KeyPress, Key: input.KeyBackSpace, Native: input.KeyBackSpace},
		},
		{
			name: "bracket",
			e:    sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_LEFTBRACKET}},
			want: &input.Event{Type: input.KeyPress, Key: input.KeyBracketLeft, Native: input.KeyBracketLeft},
		},
		{
			name: "repeat",
			e:    sdl.KeyboardEvent{State: sdl.PRESSED, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_a}},
		},
		{
			name: "unknown",
			e:    sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_PRINTSCREEN}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := KeyEvent(tt.e)
			if tt.want == nil {
				if ok {
					t.Fatalf("event should be dropped, got %+v", ev)
				}
				return
			}
			if !ok {
				t.Fatalf("event dropped")
			}
			if diff := cmp.Diff(*tt.want, ev); diff != "" {
				t.Fatalf("event mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func testControllers(ids ...sdl.JoystickID) *GameControllers {
	gcs := &GameControllers{ctrls: make(map[sdl.JoystickID]*sdl.GameController)}
	for _, id := range ids {
		gcs.attach(id)
	}
	return gcs
}

func TestSlots(t *testing.T) {
	gcs := testControllers(7, 3, 9)

	if got := gcs.Slot(7); got != 0 {
		t.Errorf("Slot(7) = %d, want 0", got)
	}
	if got := gcs.Slot(3); got != 1 {
		t.Errorf("Slot(3) = %d, want 1", got)
	}
	if got := gcs.Slot(9); got != -1 {
		t.Errorf("Slot(9) = %d, want -1", got)
	}

	gcs.detach(7)
	gcs.attach(9)
	if got := gcs.Slot(9); got != 0 {
		t.Errorf("Slot(9) = %d, want 0", got)
	}
}

func TestButtonEvent(t *testing.T) {
	gcs := testControllers(4, 5)

	ev, ok := gcs.ButtonEvent(sdl.ControllerButtonEvent{Which: 5, Button: sdl.CONTROLLER_BUTTON_B, State: sdl.PRESSED})
	if !ok {
		t.Fatal("event dropped")
	}
	want := input.Event{Type: input.JoystickPress, Which: 1, Button: input.JoystickFire2}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Fatalf("event mismatch (-want +got):\n%s", diff)
	}

	if _, ok := gcs.ButtonEvent(sdl.ControllerButtonEvent{Which: 6, Button: sdl.CONTROLLER_BUTTON_A}); ok {
		t.Errorf("event of a controller without slot should be dropped")
	}
}

func TestAxisEvent(t *testing.T) {
	gcs := testControllers(1)
	motion := func(value int16) []input.Event {
		return gcs.AxisEvent(sdl.ControllerAxisEvent{Which: 1, Axis: sdl.CONTROLLER_AXIS_LEFTX, Value: value})
	}

	var got []input.Event
	got = append(got, motion(-32768)...)
	got = append(got, motion(-30000)...)
	got = append(got, motion(32767)...)
	got = append(got, motion(100)...)

	want := []input.Event{
		{Type: input.JoystickPress, Button: input.JoystickLeft},
		{Type: input.JoystickRelease, Button: input.JoystickLeft},
		{Type: input.JoystickPress, Button: input.JoystickRight},
		{Type: input.JoystickRelease, Button: input.JoystickRight},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}
