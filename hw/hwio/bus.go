// Package hwio implements the I/O port bus on which peripherals are
// registered, and small helpers to model hardware registers.
package hwio

import (
	"errors"
	"fmt"

	"speccy/emu/log"
)

// log unmapped accesses (useful for debugging but very verbose since a lot
// of software reads the floating bus on purpose)
const logUnmapped = false

// ErrBadDevice is returned by Install for a device that can never match any
// port.
var ErrBadDevice = errors.New("invalid peripheral")

// Presence tells whether the devices of a machine must always be present or
// can be disconnected by the user. The bus itself doesn't interpret it.
type Presence uint8

const (
	Optional Presence = iota
	Mandatory
)

func (p Presence) String() string {
	if p == Mandatory {
		return "mandatory"
	}
	return "optional"
}

// Bus dispatches port accesses to the first registered device decoding the
// port, in registration order.
type Bus struct {
	Name string

	// Unattached provides the value read from a port no device answers to.
	Unattached func() uint8

	devices  []Device
	presence Presence
}

func NewBus(name string, unattached func() uint8) *Bus {
	return &Bus{Name: name, Unattached: unattached}
}

// Install replaces the whole device table. On error the previous table is
// kept.
func (b *Bus) Install(devices []Device, presence Presence) error {
	for i := range devices {
		d := &devices[i]
		if d.Compare&^d.Mask != 0 {
			return fmt.Errorf("device %d (%s): %w: compare %04x has bits outside mask %04x",
				i, d.Name, ErrBadDevice, d.Compare, d.Mask)
		}
	}

	b.devices = append([]Device(nil), devices...)
	b.presence = presence

	log.ModHwIo.DebugZ("installed devices").
		String("bus", b.Name).
		Int("count", len(devices)).
		Stringer("presence", presence).
		End()
	return nil
}

// Devices returns a copy of the device table.
func (b *Bus) Devices() []Device {
	return append([]Device(nil), b.devices...)
}

func (b *Bus) Presence() Presence { return b.presence }

// Read8 returns the value of the first device decoding port, or the floating
// bus value if there's none.
func (b *Bus) Read8(port uint16) uint8 {
	for i := range b.devices {
		d := &b.devices[i]
		if d.ReadCb != nil && d.Matches(port) {
			return d.ReadCb(port)
		}
	}

	if logUnmapped {
		log.ModHwIo.DebugZ("unmapped Read8").
			String("bus", b.Name).
			Hex16("port", port).
			End()
	}
	if b.Unattached == nil {
		return 0xff
	}
	return b.Unattached()
}

// Write8 forwards val to the first device decoding port. Writes to ports no
// device decodes are dropped.
func (b *Bus) Write8(port uint16, val uint8) {
	for i := range b.devices {
		d := &b.devices[i]
		if d.WriteCb != nil && d.Matches(port) {
			d.WriteCb(port, val)
			return
		}
	}

	if logUnmapped {
		log.ModHwIo.DebugZ("unmapped Write8").
			String("bus", b.Name).
			Hex16("port", port).
			Hex8("val", val).
			End()
	}
}
