package hwio

import "fmt"

// Device is a peripheral decoded on the I/O port space. It answers to port p
// iff p&Mask == Compare. A nil callback means the device does not take part
// in reads (or writes).
type Device struct {
	Name    string
	Mask    uint16
	Compare uint16

	ReadCb  func(port uint16) uint8
	WriteCb func(port uint16, val uint8)
}

// Matches reports whether the device decodes port.
func (d *Device) Matches(port uint16) bool {
	return port&d.Mask == d.Compare
}

func (d Device) String() string {
	s := fmt.Sprintf("%s{%04x/%04x", d.Name, d.Mask, d.Compare)
	if d.ReadCb != nil {
		s += ",r"
	}
	if d.WriteCb != nil {
		s += ",w"
	}
	return s + "}"
}
