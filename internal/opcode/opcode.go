// Package opcode decodes 16-bit CHIP-8 instruction words into a closed set of
// instruction forms. Decoding has no side effects, so an Instruction can be
// inspected, printed or tested without a machine.
package opcode

// Op identifies one instruction form
type Op uint8

// Instruction forms, one per recognised encoding
const (
	Invalid Op = iota
	Cls        // 00E0
	Ret        // 00EE
	Jp         // 1nnn
	Call       // 2nnn
	SeByte     // 3xnn
	SneByte    // 4xnn
	SeReg      // 5xy0
	LdByte     // 6xnn
	AddByte    // 7xnn
	LdReg      // 8xy0
	Or         // 8xy1
	And        // 8xy2
	Xor        // 8xy3
	AddReg     // 8xy4
	Sub        // 8xy5
	Shr        // 8xy6
	Subn       // 8xy7
	Shl        // 8xyE
	SneReg     // 9xy0
	LdI        // Annn
	JpV0       // Bnnn
	Rnd        // Cxnn
	Drw        // Dxyn
	Skp        // Ex9E
	Sknp       // ExA1
	LdVxDT     // Fx07
	LdDTVx     // Fx15
	LdSTVx     // Fx18
	AddI       // Fx1E
	LdF        // Fx29
	LdB        // Fx33
	LdMemVx    // Fx55
	LdVxMem    // Fx65
)

// Instruction is a decoded instruction word
type Instruction struct {
	Op  Op
	Raw uint16 // the instruction word as fetched

	X   uint8  // bits 8-11
	Y   uint8  // bits 4-7
	N   uint8  // bits 0-3
	NN  uint8  // bits 0-7
	NNN uint16 // bits 0-11
}

// Valid returns false for words that match no instruction form
func (ins Instruction) Valid() bool {
	return ins.Op != Invalid
}

// IsSkip returns true for the conditional skip forms
func (ins Instruction) IsSkip() bool {
	switch ins.Op {
	case SeByte, SneByte, SeReg, SneReg, Skp, Sknp:
		return true
	}
	return false
}

// Decode splits the word into its fields and identifies the instruction form.
// Unrecognised words decode with Op set to Invalid.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Raw: word,
		X:   uint8((word >> 8) & 0x000F),
		Y:   uint8((word >> 4) & 0x000F),
		N:   uint8(word & 0x000F),
		NN:  uint8(word & 0x00FF),
		NNN: word & 0x0FFF,
	}
	ins.Op = identify(ins)
	return ins
}

func identify(ins Instruction) Op {
	switch ins.Raw & 0xF000 {
	case 0x0000:
		switch ins.Raw {
		case 0x00E0:
			return Cls
		case 0x00EE:
			return Ret
		}
	case 0x1000:
		return Jp
	case 0x2000:
		return Call
	case 0x3000:
		return SeByte
	case 0x4000:
		return SneByte
	case 0x5000:
		if ins.N == 0x0 {
			return SeReg
		}
	case 0x6000:
		return LdByte
	case 0x7000:
		return AddByte
	case 0x8000:
		switch ins.N {
		case 0x0:
			return LdReg
		case 0x1:
			return Or
		case 0x2:
			return And
		case 0x3:
			return Xor
		case 0x4:
			return AddReg
		case 0x5:
			return Sub
		case 0x6:
			return Shr
		case 0x7:
			return Subn
		case 0xE:
			return Shl
		}
	case 0x9000:
		if ins.N == 0x0 {
			return SneReg
		}
	case 0xA000:
		return LdI
	case 0xB000:
		return JpV0
	case 0xC000:
		return Rnd
	case 0xD000:
		return Drw
	case 0xE000:
		switch ins.NN {
		case 0x9E:
			return Skp
		case 0xA1:
			return Sknp
		}
	case 0xF000:
		switch ins.NN {
		case 0x07:
			return LdVxDT
		case 0x15:
			return LdDTVx
		case 0x18:
			return LdSTVx
		case 0x1E:
			return AddI
		case 0x29:
			return LdF
		case 0x33:
			return LdB
		case 0x55:
			return LdMemVx
		case 0x65:
			return LdVxMem
		}
	}
	return Invalid
}
