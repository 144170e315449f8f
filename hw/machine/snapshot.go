package machine

import (
	"fmt"

	"github.com/user-none/go-chip-z80"

	"speccy/emu/log"
	"speccy/hw/memory"
	"speccy/hw/snapshot"
)

// ramBanks returns the RAM banks mapped by the current layout, in address
// order, each listed once.
func (m *Machine) ramBanks() []int {
	var banks []int
	seen := make(map[int]bool)
	for _, pg := range m.Mem.Pages() {
		if pg.Source == memory.SourceRAM && !seen[pg.Bank] {
			seen[pg.Bank] = true
			banks = append(banks, pg.Bank)
		}
	}
	return banks
}

// Snapshot captures the machine state.
func (m *Machine) Snapshot() (*snapshot.Spectrum, error) {
	s := &snapshot.Spectrum{
		Version: snapshot.Version,
		Profile: m.Profile.Name,
		CPU:     make([]byte, z80.SerializeSize),
		ULA: snapshot.ULA{
			Out:    m.ULA.Out.Value,
			Border: m.ULA.Border,
			EarIn:  m.ULA.EarIn,
		},
		Clock: snapshot.Clock{
			Tstates: m.Clock.Tstates,
			Frames:  m.Clock.Frames,
		},
	}
	if err := m.CPU.Serialize(s.CPU); err != nil {
		return nil, fmt.Errorf("snapshot cpu: %w", err)
	}
	for _, bank := range m.ramBanks() {
		s.RAM = append(s.RAM, snapshot.Bank{
			Num:  bank,
			Data: append([]byte(nil), m.Mem.RAM(bank)...),
		})
	}
	return s, nil
}

// Restore loads a snapshot taken on a machine with the same profile and
// ROM. Keys and joysticks are released.
func (m *Machine) Restore(s *snapshot.Spectrum) error {
	if s.Version != snapshot.Version {
		return fmt.Errorf("%w: %d", snapshot.ErrVersion, s.Version)
	}
	if s.Profile != m.Profile.Name {
		return fmt.Errorf("snapshot is for machine %q, running %q", s.Profile, m.Profile.Name)
	}
	for _, b := range s.RAM {
		if b.Num < 0 || b.Num >= memory.NumRAMBanks || len(b.Data) != memory.BankSize {
			return fmt.Errorf("snapshot: invalid ram bank %d (%d bytes)", b.Num, len(b.Data))
		}
	}
	if err := m.CPU.Deserialize(s.CPU); err != nil {
		return fmt.Errorf("restore cpu: %w", err)
	}

	for _, b := range s.RAM {
		copy(m.Mem.RAM(b.Num), b.Data)
	}
	m.ULA.Out.Value = s.ULA.Out
	m.ULA.Border = s.ULA.Border
	m.ULA.EarIn = s.ULA.EarIn
	m.Clock.Tstates = s.Clock.Tstates
	m.Clock.Frames = s.Clock.Frames
	m.Matrix.ReleaseAll()
	m.Joysticks.ReleaseAll()
	m.intPending = false

	log.ModEmu.InfoZ("snapshot restored").
		String("profile", s.Profile).
		Uint64("frame", s.Clock.Frames).
		End()
	return nil
}
