package vm

import (
	"time"

	"github.com/mnafees/c8vm/internal/opcode"
)

// Step executes the instruction at the program counter and then advances the
// timers by elapsed, the wall-clock time since the previous Step. On error the
// machine is left as it was before the failing instruction and the timers do
// not advance.
func (m *Machine) Step(elapsed time.Duration) error {
	m.timers.beeped = false

	pc := m.pc
	word, err := m.fetch()
	if err != nil {
		m.tracer.Trace(Event{Kind: EventFault, PC: pc, Err: err})
		return err
	}

	ins := opcode.Decode(word)
	if err := m.execute(ins); err != nil {
		m.tracer.Trace(Event{Kind: EventFault, PC: pc, Instruction: ins, Err: err})
		return err
	}
	m.tracer.Trace(Event{Kind: EventExecute, PC: pc, Instruction: ins})

	if m.timers.advance(elapsed) {
		m.tracer.Trace(Event{Kind: EventBeep, PC: pc, Instruction: ins})
	}
	return nil
}

func (m *Machine) fetch() (uint16, error) {
	if err := checkRange(m.pc, 2); err != nil {
		return 0, err
	}
	return uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1]), nil
}

// skipIf advances the program counter past the next instruction when cond
// holds
func (m *Machine) skipIf(cond bool) {
	if cond {
		m.pc += 4
		return
	}
	m.pc += 2
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// setWithFlag writes the flag register before the result so that a result
// targeting VF is the value left behind
func (m *Machine) setWithFlag(x uint8, result uint8, flag bool) {
	m.regV[0xF] = boolToFlag(flag)
	m.regV[x] = result
}

func (m *Machine) execute(ins opcode.Instruction) error {
	x, y := ins.X, ins.Y
	vx, vy := m.regV[x], m.regV[y]

	switch ins.Op {
	case opcode.Cls: // CLS
		m.screen.clear()
		m.pc += 2

	case opcode.Ret: // RET
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.pc = m.stack[m.sp] + 2
		m.sp--

	case opcode.Jp: // JP nnn
		m.pc = ins.NNN

	case opcode.Call: // CALL nnn
		if int(m.sp) >= StackDepth-1 {
			return ErrStackOverflow
		}
		m.sp++
		m.stack[m.sp] = m.pc
		m.pc = ins.NNN

	case opcode.SeByte: // SE Vx, nn
		m.skipIf(vx == ins.NN)

	case opcode.SneByte: // SNE Vx, nn
		m.skipIf(vx != ins.NN)

	case opcode.SeReg: // SE Vx, Vy
		m.skipIf(vx == vy)

	case opcode.LdByte: // LD Vx, nn
		m.regV[x] = ins.NN
		m.pc += 2

	case opcode.AddByte: // ADD Vx, nn
		m.regV[x] = vx + ins.NN
		m.pc += 2

	case opcode.LdReg: // LD Vx, Vy
		m.regV[x] = vy
		m.pc += 2

	case opcode.Or: // OR Vx, Vy
		m.regV[x] = vx | vy
		m.pc += 2

	case opcode.And: // AND Vx, Vy
		m.regV[x] = vx & vy
		m.pc += 2

	case opcode.Xor: // XOR Vx, Vy
		m.regV[x] = vx ^ vy
		m.pc += 2

	case opcode.AddReg: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		m.setWithFlag(x, uint8(sum), sum > 0xFF)
		m.pc += 2

	case opcode.Sub: // SUB Vx, Vy
		m.setWithFlag(x, vx-vy, vx >= vy)
		m.pc += 2

	case opcode.Shr: // SHR Vx
		m.setWithFlag(x, vx>>1, vx&0x01 == 0x01)
		m.pc += 2

	case opcode.Subn: // SUBN Vx, Vy
		m.setWithFlag(x, vy-vx, vy >= vx)
		m.pc += 2

	case opcode.Shl: // SHL Vx
		m.setWithFlag(x, vx<<1, vx&0x80 == 0x80)
		m.pc += 2

	case opcode.SneReg: // SNE Vx, Vy
		m.skipIf(vx != vy)

	case opcode.LdI: // LD I, nnn
		m.regI = ins.NNN
		m.pc += 2

	case opcode.JpV0: // JP V0, nnn
		m.pc = ins.NNN + uint16(m.regV[0])

	case opcode.Rnd: // RND Vx, nn
		m.regV[x] = m.random.Byte() & ins.NN
		m.pc += 2

	case opcode.Drw: // DRW Vx, Vy, n
		if err := checkRange(m.regI, int(ins.N)); err != nil {
			return err
		}
		var sprite []uint8
		if ins.N > 0 {
			start := int(m.regI)
			sprite = m.memory[start : start+int(ins.N)]
		}
		m.regV[0xF] = boolToFlag(m.screen.blit(vx, vy, sprite))
		m.pc += 2

	case opcode.Skp: // SKP Vx
		m.skipIf(m.keys[vx&0xF])

	case opcode.Sknp: // SKNP Vx
		m.skipIf(!m.keys[vx&0xF])

	case opcode.LdVxDT: // LD Vx, DT
		m.regV[x] = m.timers.delay
		m.pc += 2

	case opcode.LdDTVx: // LD DT, Vx
		m.timers.delay = vx
		m.pc += 2

	case opcode.LdSTVx: // LD ST, Vx
		m.timers.sound = vx
		m.pc += 2

	case opcode.AddI: // ADD I, Vx
		m.regI += uint16(vx)
		m.pc += 2

	case opcode.LdF: // LD F, Vx
		m.regI = uint16(vx&0xF) * glyphSize
		m.pc += 2

	case opcode.LdB: // LD B, Vx
		if err := checkRange(m.regI, 3); err != nil {
			return err
		}
		m.memory[m.regI] = vx / 100
		m.memory[m.regI+1] = (vx / 10) % 10
		m.memory[m.regI+2] = vx % 10
		m.pc += 2

	case opcode.LdMemVx: // LD [I], Vx
		if err := checkRange(m.regI, int(x)+1); err != nil {
			return err
		}
		copy(m.memory[m.regI:], m.regV[:int(x)+1])
		m.pc += 2

	case opcode.LdVxMem: // LD Vx, [I]
		if err := checkRange(m.regI, int(x)+1); err != nil {
			return err
		}
		copy(m.regV[:int(x)+1], m.memory[m.regI:])
		m.pc += 2

	default:
		return &InvalidOpcodeError{Opcode: ins.Raw, PC: m.pc}
	}

	return nil
}
