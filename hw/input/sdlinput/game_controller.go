package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"speccy/emu/log"
	"speccy/hw/input"
)

// threshold for a stick axis to be considered as 'pressed'.
// goes from -32768 to 32767
const JoyAxisThreshold = 16000

// The first two controllers to show up are joysticks 1 and 2.
const maxControllers = 2

var buttons = map[sdl.GameControllerButton]input.Key{
	sdl.CONTROLLER_BUTTON_DPAD_UP:       input.JoystickUp,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:     input.JoystickDown,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:     input.JoystickLeft,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    input.JoystickRight,
	sdl.CONTROLLER_BUTTON_A:             input.JoystickFire1,
	sdl.CONTROLLER_BUTTON_B:             input.JoystickFire2,
	sdl.CONTROLLER_BUTTON_X:             input.JoystickFire3,
	sdl.CONTROLLER_BUTTON_Y:             input.JoystickFire4,
	sdl.CONTROLLER_BUTTON_BACK:          input.JoystickFire5,
	sdl.CONTROLLER_BUTTON_GUIDE:         input.JoystickFire6,
	sdl.CONTROLLER_BUTTON_START:         input.JoystickFire7,
	sdl.CONTROLLER_BUTTON_LEFTSTICK:     input.JoystickFire8,
	sdl.CONTROLLER_BUTTON_RIGHTSTICK:    input.JoystickFire9,
	sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  input.JoystickFire10,
	sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: input.JoystickFire11,
}

// axisState is the direction a stick axis is pushed to: -1, 0 or 1.
type axisState [2]int8

// GameControllers assigns joystick slots to the connected controllers.
type GameControllers struct {
	slots [maxControllers]sdl.JoystickID
	used  [maxControllers]bool
	ctrls map[sdl.JoystickID]*sdl.GameController
	axes  [maxControllers]axisState
}

// As soon as it's been created, update must be called for each controller event
// in order to remain in sync.
func NewGameControllers() *GameControllers {
	gcs := &GameControllers{
		ctrls: make(map[sdl.JoystickID]*sdl.GameController),
	}
	for i := range sdl.NumJoysticks() {
		if sdl.IsGameController(i) {
			gcs.open(i)
		}
	}
	return gcs
}

func (gcs *GameControllers) open(idx int) {
	c := sdl.GameControllerOpen(idx)
	if c == nil {
		log.ModInput.WarnZ("failed to open controller").
			Int("index", idx).
			End()
		return
	}
	id := c.Joystick().InstanceID()
	gcs.ctrls[id] = c

	slot := gcs.attach(id)
	log.ModInput.InfoZ("added controller").
		Int32("id", int32(id)).
		Int("slot", slot).
		String("name", c.Name()).
		End()
}

// attach gives id the first free slot, and returns it, or -1 if all slots
// are taken.
func (gcs *GameControllers) attach(id sdl.JoystickID) int {
	for i := range gcs.slots {
		if !gcs.used[i] {
			gcs.slots[i] = id
			gcs.used[i] = true
			gcs.axes[i] = axisState{}
			return i
		}
	}
	return -1
}

func (gcs *GameControllers) detach(id sdl.JoystickID) int {
	for i := range gcs.slots {
		if gcs.used[i] && gcs.slots[i] == id {
			gcs.used[i] = false
			return i
		}
	}
	return -1
}

// Slot returns the joystick index of a controller, or -1 if it doesn't
// have one.
func (gcs *GameControllers) Slot(id sdl.JoystickID) int {
	for i := range gcs.slots {
		if gcs.used[i] && gcs.slots[i] == id {
			return i
		}
	}
	return -1
}

func (gcs *GameControllers) UpdateDevices(e sdl.ControllerDeviceEvent) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		gcs.open(int(e.Which))

	case sdl.CONTROLLERDEVICEREMOVED:
		c := gcs.ctrls[e.Which]
		if c == nil {
			log.ModInput.WarnZ("removed controller not found").
				Int32("id", int32(e.Which)).
				End()
			return
		}
		slot := gcs.detach(e.Which)
		delete(gcs.ctrls, e.Which)
		c.Close()

		log.ModInput.InfoZ("removed controller").
			Int32("id", int32(e.Which)).
			Int("slot", slot).
			End()
	}
}

// ButtonEvent converts a controller button event.
func (gcs *GameControllers) ButtonEvent(e sdl.ControllerButtonEvent) (input.Event, bool) {
	slot := gcs.Slot(e.Which)
	if slot < 0 {
		return input.Event{}, false
	}
	button, ok := buttons[sdl.GameControllerButton(e.Button)]
	if !ok {
		return input.Event{}, false
	}

	ev := input.Event{Type: input.JoystickRelease, Which: slot, Button: button}
	if e.State == sdl.PRESSED {
		ev.Type = input.JoystickPress
	}
	return ev, true
}

// AxisEvent converts a motion of the left stick into directional button
// events. Crossing the center in one motion releases a direction and
// presses the opposite one.
func (gcs *GameControllers) AxisEvent(e sdl.ControllerAxisEvent) []input.Event {
	slot := gcs.Slot(e.Which)
	if slot < 0 {
		return nil
	}

	var axis int
	var neg, pos input.Key
	switch sdl.GameControllerAxis(e.Axis) {
	case sdl.CONTROLLER_AXIS_LEFTX:
		axis, neg, pos = 0, input.JoystickLeft, input.JoystickRight
	case sdl.CONTROLLER_AXIS_LEFTY:
		axis, neg, pos = 1, input.JoystickUp, input.JoystickDown
	default:
		return nil
	}

	dir := int8(0)
	switch {
	case e.Value <= -JoyAxisThreshold:
		dir = -1
	case e.Value >= JoyAxisThreshold:
		dir = 1
	}

	prev := gcs.axes[slot][axis]
	if prev == dir {
		return nil
	}
	gcs.axes[slot][axis] = dir

	var evs []input.Event
	switch prev {
	case -1:
		evs = append(evs, input.Event{Type: input.JoystickRelease, Which: slot, Button: neg})
	case 1:
		evs = append(evs, input.Event{Type: input.JoystickRelease, Which: slot, Button: pos})
	}
	switch dir {
	case -1:
		evs = append(evs, input.Event{Type: input.JoystickPress, Which: slot, Button: neg})
	case 1:
		evs = append(evs, input.Event{Type: input.JoystickPress, Which: slot, Button: pos})
	}
	return evs
}

func (gcs *GameControllers) Close() {
	for id, c := range gcs.ctrls {
		c.Close()
		delete(gcs.ctrls, id)
	}
	gcs.used = [maxControllers]bool{}
}
