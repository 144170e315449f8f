package machine

// Approximate length of each kind of bus cycle.
const (
	fetchCycles = 4
	memCycles   = 3
	ioCycles    = 4
)

// cpuBus connects the Z80 to the memory map and the I/O bus, inserting the
// wait states of contended accesses.
type cpuBus struct {
	m *Machine
}

func (b *cpuBus) contendMem(addr uint16) {
	if b.m.Mem.Contended(addr) {
		b.m.stall(b.m.Contention.At(b.m.Clock.Tstates))
	}
}

func (b *cpuBus) Fetch(addr uint16) uint8 {
	b.contendMem(addr)
	val := b.m.Mem.Read8(addr)
	b.m.tick(fetchCycles)
	return val
}

func (b *cpuBus) Read(addr uint16) uint8 {
	b.contendMem(addr)
	val := b.m.Mem.Read8(addr)
	b.m.tick(memCycles)
	return val
}

func (b *cpuBus) Write(addr uint16, val uint8) {
	b.contendMem(addr)
	b.m.Mem.Write8(addr, val)
	b.m.tick(memCycles)
}

func (b *cpuBus) In(port uint16) uint8 {
	b.m.stall(b.m.Contention.ContendPort(port, b.m.Clock.Tstates))
	val := b.m.Bus.Read8(port)
	b.m.tick(ioCycles)
	return val
}

func (b *cpuBus) Out(port uint16, val uint8) {
	b.m.stall(b.m.Contention.ContendPort(port, b.m.Clock.Tstates))
	b.m.Bus.Write8(port, val)
	b.m.tick(ioCycles)
}
