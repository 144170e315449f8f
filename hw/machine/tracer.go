package machine

import (
	"io"
	"strconv"
)

// cpuState is what the execution trace shows of an instruction.
type cpuState struct {
	PC     uint16
	Opcode uint8
	AF     uint16
	IFF1   bool
	IM     uint8

	Frame   uint64
	Tstates uint32
}

type tracer struct {
	w   io.Writer
	buf []byte
}

func hexEncode(dst []byte, v byte) []byte {
	const hextable = "0123456789ABCDEF"
	return append(dst, hextable[v>>4], hextable[v&0x0f])
}

func hexEncode16(dst []byte, v uint16) []byte {
	return hexEncode(hexEncode(dst, uint8(v>>8)), uint8(v))
}

// write writes one line of execution trace, before the instruction at
// state.PC is executed.
func (t *tracer) write(state cpuState) {
	buf := t.buf[:0]

	buf = append(buf, "PC:"...)
	buf = hexEncode16(buf, state.PC)
	buf = append(buf, " OP:"...)
	buf = hexEncode(buf, state.Opcode)
	buf = append(buf, " AF:"...)
	buf = hexEncode16(buf, state.AF)
	buf = append(buf, " IFF1:"...)
	if state.IFF1 {
		buf = append(buf, '1')
	} else {
		buf = append(buf, '0')
	}
	buf = append(buf, " IM:"...)
	buf = strconv.AppendUint(buf, uint64(state.IM), 10)
	buf = append(buf, " FR:"...)
	buf = strconv.AppendUint(buf, state.Frame, 10)
	buf = append(buf, " T:"...)
	buf = strconv.AppendUint(buf, uint64(state.Tstates), 10)
	buf = append(buf, '\n')

	t.w.Write(buf)
	t.buf = buf
}

// SetTraceOutput enables the execution trace, one line per instruction,
// written to w. A nil w disables it.
func (m *Machine) SetTraceOutput(w io.Writer) {
	if w == nil {
		m.tracer = nil
		return
	}
	m.tracer = &tracer{w: w}
}

func (m *Machine) trace() {
	regs := m.CPU.Registers()
	pc := uint16(regs.PC)
	m.tracer.write(cpuState{
		PC:      pc,
		Opcode:  m.Mem.Read8(pc),
		AF:      uint16(regs.AF),
		IFF1:    regs.IFF1,
		IM:      uint8(regs.IM),
		Frame:   m.Clock.Frames,
		Tstates: m.Clock.Tstates,
	})
}
