// Package memory implements the paged address space of the machine: 8 slots
// of 8K, each backed by half of a 16K ROM or RAM bank.
package memory

import (
	"errors"
	"fmt"

	"speccy/emu/log"
)

const (
	PageSize    = 0x2000
	NumPages    = 0x10000 / PageSize
	BankSize    = 0x4000
	NumRAMBanks = 8
	MaxROMBanks = 4

	pageShift = 13
	pageMask  = PageSize - 1
)

// ErrROMTooShort is returned when the ROM data supplied for a bank is
// shorter than what the machine expects.
var ErrROMTooShort = errors.New("insufficient ROM data")

type Source uint8

const (
	SourceNone Source = iota // unpopulated, reads 0xff
	SourceROM
	SourceRAM
)

func (s Source) String() string {
	switch s {
	case SourceROM:
		return "rom"
	case SourceRAM:
		return "ram"
	}
	return "none"
}

// A Page describes what backs one 8K slot of the address space.
type Page struct {
	Source    Source
	Bank      int
	Writable  bool
	Contended bool
	Reverse   int    // RAM bank number, -1 if the page is not RAM
	Offset    uint16 // offset of the page within its bank
}

// A Layout selects how the banks are arranged in the address space.
type Layout uint8

const (
	Layout48 Layout = iota // ROM 0, RAM 5, RAM 2, RAM 0
	Layout16               // ROM 0, RAM 5, nothing above 0x8000
)

func (l Layout) String() string {
	switch l {
	case Layout48:
		return "48k"
	case Layout16:
		return "16k"
	}
	return fmt.Sprintf("Layout(%d)", uint8(l))
}

// ROMBanks returns how many 16K ROM banks the layout needs.
func (l Layout) ROMBanks() int { return 1 }

// pair describes a 16K region, that is 2 consecutive slots.
type pair struct {
	src       Source
	bank      int
	contended bool
}

func (l Layout) pairs() [4]pair {
	switch l {
	case Layout16:
		return [4]pair{
			{src: SourceROM, bank: 0},
			{src: SourceRAM, bank: 5, contended: true},
			{src: SourceNone},
			{src: SourceNone},
		}
	default:
		return [4]pair{
			{src: SourceROM, bank: 0},
			{src: SourceRAM, bank: 5, contended: true},
			{src: SourceRAM, bank: 2},
			{src: SourceRAM, bank: 0},
		}
	}
}

var nonePage = func() []byte {
	buf := make([]byte, PageSize)
	for i := range buf {
		buf[i] = 0xff
	}
	return buf
}()

// Map is the memory map of the machine. It owns the ROM and RAM banks.
type Map struct {
	pages [NumPages]Page
	data  [NumPages][]byte // slice of the backing bank, per slot

	rom [MaxROMBanks][]byte
	ram [NumRAMBanks][BankSize]byte

	layout     Layout
	screenBank int
	screenMask uint16
}

func New() *Map {
	m := &Map{}
	for i := range m.rom {
		m.rom[i] = make([]byte, BankSize)
	}
	return m
}

// Install rebuilds the whole page table for the given layout. Memory
// contents are left untouched.
func (m *Map) Install(l Layout) {
	for i, p := range l.pairs() {
		for half := range 2 {
			slot := i*2 + half
			pg := Page{
				Source:    p.src,
				Bank:      p.bank,
				Contended: p.contended,
				Reverse:   -1,
				Offset:    uint16(half * PageSize),
			}
			switch p.src {
			case SourceRAM:
				pg.Writable = true
				pg.Reverse = p.bank
				m.data[slot] = m.ram[p.bank][pg.Offset : pg.Offset+PageSize]
			case SourceROM:
				m.data[slot] = m.rom[p.bank][pg.Offset : pg.Offset+PageSize]
			default:
				m.data[slot] = nonePage
			}
			m.pages[slot] = pg
		}
	}

	m.layout = l
	m.screenBank = 5
	m.screenMask = 0xffff

	log.ModMem.DebugZ("memory map installed").
		Stringer("layout", l).
		Int("screen", m.screenBank).
		End()
}

// LoadROM copies data into ROM bank. Exactly BankSize bytes are used; data
// shorter than that is an error.
func (m *Map) LoadROM(bank int, data []byte) error {
	if bank < 0 || bank >= MaxROMBanks {
		return fmt.Errorf("invalid rom bank %d", bank)
	}
	if len(data) < BankSize {
		return fmt.Errorf("rom bank %d: %w (got %d bytes, want %d)", bank, ErrROMTooShort, len(data), BankSize)
	}
	copy(m.rom[bank], data[:BankSize])
	return nil
}

// ClearRAM zeroes all RAM banks.
func (m *Map) ClearRAM() {
	clear(m.ram[:])
}

// Pages returns a copy of the page table.
func (m *Map) Pages() [NumPages]Page { return m.pages }

// Page returns the descriptor of the slot containing addr.
func (m *Map) Page(addr uint16) Page { return m.pages[addr>>pageShift] }

func (m *Map) Layout() Layout { return m.layout }

// ScreenBank returns the RAM bank the ULA is displaying.
func (m *Map) ScreenBank() int { return m.screenBank }

// ScreenMask is 0xffff on machines with full address decoding.
func (m *Map) ScreenMask() uint16 { return m.screenMask }

// Screen returns the bytes of the bank being displayed.
func (m *Map) Screen() []byte { return m.ram[m.screenBank][:] }

// Contended reports whether an access to addr is subject to ULA contention.
func (m *Map) Contended(addr uint16) bool {
	return m.pages[addr>>pageShift].Contended
}

func (m *Map) Read8(addr uint16) uint8 {
	return m.data[addr>>pageShift][addr&pageMask]
}

func (m *Map) Write8(addr uint16, val uint8) {
	slot := addr >> pageShift
	if !m.pages[slot].Writable {
		log.ModMem.DebugZ("Write8 to read-only page").
			Hex16("addr", addr).
			Hex8("val", val).
			Stringer("src", m.pages[slot].Source).
			End()
		return
	}
	m.data[slot][addr&pageMask] = val
}

// RAM returns the bytes of a RAM bank, for loaders and debuggers.
func (m *Map) RAM(bank int) []byte { return m.ram[bank][:] }
