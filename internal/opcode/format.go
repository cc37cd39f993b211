package opcode

import (
	"fmt"
	"strings"
)

var names = map[Op]string{
	Cls:     "CLS",
	Ret:     "RET",
	Jp:      "JP",
	Call:    "CALL",
	SeByte:  "SE",
	SneByte: "SNE",
	SeReg:   "SE",
	LdByte:  "LD",
	AddByte: "ADD",
	LdReg:   "LD",
	Or:      "OR",
	And:     "AND",
	Xor:     "XOR",
	AddReg:  "ADD",
	Sub:     "SUB",
	Shr:     "SHR",
	Subn:    "SUBN",
	Shl:     "SHL",
	SneReg:  "SNE",
	LdI:     "LD",
	JpV0:    "JP",
	Rnd:     "RND",
	Drw:     "DRW",
	Skp:     "SKP",
	Sknp:    "SKNP",
	LdVxDT:  "LD",
	LdDTVx:  "LD",
	LdSTVx:  "LD",
	AddI:    "ADD",
	LdF:     "LD",
	LdB:     "LD",
	LdMemVx: "LD",
	LdVxMem: "LD",
}

// Name returns the assembler mnemonic of the instruction form
func (op Op) Name() string {
	if n, ok := names[op]; ok {
		return n
	}
	return "DW"
}

// String formats the instruction in assembler syntax, e.g. "LD V1, $2A".
// Invalid words are rendered as a data word.
func (ins Instruction) String() string {
	params := ins.params()
	if params == "" {
		return ins.Op.Name()
	}
	return fmt.Sprintf("%s %s", ins.Op.Name(), params)
}

func (ins Instruction) params() string {
	switch ins.Op {
	case Cls, Ret:
		return ""
	case Jp, Call:
		return fmt.Sprintf("$%03X", ins.NNN)
	case JpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case SeByte, SneByte, LdByte, AddByte, Rnd:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case Shr, Shl, Skp, Sknp:
		return fmt.Sprintf("V%X", ins.X)
	case LdI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case Drw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case LdVxDT:
		return fmt.Sprintf("V%X, DT", ins.X)
	case LdDTVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case LdSTVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case AddI:
		return fmt.Sprintf("I, V%X", ins.X)
	case LdF:
		return fmt.Sprintf("F, V%X", ins.X)
	case LdB:
		return fmt.Sprintf("B, V%X", ins.X)
	case LdMemVx:
		return fmt.Sprintf("[I], V%X", ins.X)
	case LdVxMem:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return fmt.Sprintf("$%04X", ins.Raw)
}

// Line is one disassembled instruction word
type Line struct {
	Address     uint16
	Instruction Instruction
}

func (l Line) String() string {
	return fmt.Sprintf("%03X: %04X  %s", l.Address, l.Instruction.Raw, l.Instruction)
}

// Disassemble decodes program as a linear sequence of instruction words
// starting at address base. A trailing odd byte is rendered as a data word
// with a zero low byte.
func Disassemble(program []byte, base uint16) []Line {
	lines := make([]Line, 0, (len(program)+1)/2)
	for i := 0; i < len(program); i += 2 {
		word := uint16(program[i]) << 8
		if i+1 < len(program) {
			word |= uint16(program[i+1])
		}
		lines = append(lines, Line{
			Address:     base + uint16(i),
			Instruction: Decode(word),
		})
	}
	return lines
}

// Listing joins the disassembled lines, one per row
func Listing(lines []Line) string {
	s := strings.Builder{}
	for _, l := range lines {
		s.WriteString(l.String())
		s.WriteString("\n")
	}
	return s.String()
}
