package emu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"speccy/hw/input"
)

// A Script is a list of input events, each applied at the start of a given
// frame. Scripts let headless runs type on the keyboard.
//
// One event per line:
//
//	<frame> press|release <key>
//	<frame> joy <1|2> press|release <button>
//
// Blank lines and lines starting with '#' are ignored.
type Script struct {
	events []scriptEvent
	next   int
}

type scriptEvent struct {
	frame uint64
	ev    input.Event
}

func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	scan := bufio.NewScanner(r)
	for lineno := 1; scan.Scan(); lineno++ {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		se, err := parseScriptLine(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		s.events = append(s.events, se)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].frame < s.events[j].frame
	})
	return &s, nil
}

func parseScriptLine(fields []string) (scriptEvent, error) {
	var se scriptEvent
	if len(fields) < 3 {
		return se, fmt.Errorf("too few fields")
	}

	frame, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return se, fmt.Errorf("invalid frame %q", fields[0])
	}
	se.frame = frame

	if fields[1] == "joy" {
		if len(fields) != 5 {
			return se, fmt.Errorf("want '<frame> joy <n> press|release <button>'")
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil || n < 1 || n > 2 {
			return se, fmt.Errorf("invalid joystick %q", fields[2])
		}
		btn, ok := input.KeyByName(fields[4])
		if !ok || !btn.IsJoystick() {
			return se, fmt.Errorf("invalid joystick button %q", fields[4])
		}
		switch fields[3] {
		case "press":
			se.ev.Type = input.JoystickPress
		case "release":
			se.ev.Type = input.JoystickRelease
		default:
			return se, fmt.Errorf("invalid action %q", fields[3])
		}
		se.ev.Which = n - 1
		se.ev.Button = btn
		return se, nil
	}

	if len(fields) != 3 {
		return se, fmt.Errorf("want '<frame> press|release <key>'")
	}
	switch fields[1] {
	case "press":
		se.ev.Type = input.KeyPress
	case "release":
		se.ev.Type = input.KeyRelease
	default:
		return se, fmt.Errorf("invalid action %q", fields[1])
	}
	key, ok := input.KeyByName(fields[2])
	if !ok || key.IsJoystick() {
		return se, fmt.Errorf("invalid key %q", fields[2])
	}
	se.ev.Key, se.ev.Native = key, key
	return se, nil
}

// Events returns the events due at the start of frame, in script order,
// and consumes them.
func (s *Script) Events(frame uint64) []input.Event {
	var evs []input.Event
	for s.next < len(s.events) && s.events[s.next].frame <= frame {
		evs = append(evs, s.events[s.next].ev)
		s.next++
	}
	return evs
}

// Len returns the number of events not yet consumed.
func (s *Script) Len() int {
	return len(s.events) - s.next
}
