package opcode

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode_Fields(t *testing.T) {
	ins := Decode(0xD5A7)

	assert.Equal(t, Drw, ins.Op)
	assert.Equal(t, uint16(0xD5A7), ins.Raw)
	assert.Equal(t, uint8(0x5), ins.X)
	assert.Equal(t, uint8(0xA), ins.Y)
	assert.Equal(t, uint8(0x7), ins.N)
	assert.Equal(t, uint8(0xA7), ins.NN)
	assert.Equal(t, uint16(0x5A7), ins.NNN)
}

func TestDecode_Forms(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
	}{
		{0x00E0, Cls},
		{0x00EE, Ret},
		{0x124E, Jp},
		{0x2EEE, Call},
		{0x3A14, SeByte},
		{0x4A14, SneByte},
		{0x5AB0, SeReg},
		{0x6A14, LdByte},
		{0x7A14, AddByte},
		{0x8AB0, LdReg},
		{0x8AB1, Or},
		{0x8AB2, And},
		{0x8AB3, Xor},
		{0x8AB4, AddReg},
		{0x8AB5, Sub},
		{0x8AB6, Shr},
		{0x8AB7, Subn},
		{0x8ABE, Shl},
		{0x9AB0, SneReg},
		{0xA123, LdI},
		{0xB123, JpV0},
		{0xCA0F, Rnd},
		{0xDAB5, Drw},
		{0xEA9E, Skp},
		{0xEAA1, Sknp},
		{0xFA07, LdVxDT},
		{0xFA15, LdDTVx},
		{0xFA18, LdSTVx},
		{0xFA1E, AddI},
		{0xFA29, LdF},
		{0xFA33, LdB},
		{0xFA55, LdMemVx},
		{0xFA65, LdVxMem},
	}

	for _, tt := range tests {
		ins := Decode(tt.word)
		assert.Equal(t, tt.op, ins.Op, ins.String())
		assert.True(t, ins.Valid())
	}
}

func TestDecode_Invalid(t *testing.T) {
	words := []uint16{
		0x0000, // SYS 000
		0x0123, // SYS nnn
		0x00E1,
		0x5AB1,
		0x8AB8,
		0x8ABF,
		0x9AB1,
		0xEA9F,
		0xEAA2,
		0xFA0A, // wait for key
		0xFA30,
		0xFFFF,
	}

	for _, w := range words {
		ins := Decode(w)
		assert.Equal(t, Invalid, ins.Op)
		assert.False(t, ins.Valid())
	}
}

func TestInstruction_IsSkip(t *testing.T) {
	assert.True(t, Decode(0x3A14).IsSkip())
	assert.True(t, Decode(0x9AB0).IsSkip())
	assert.True(t, Decode(0xEAA1).IsSkip())
	assert.False(t, Decode(0x124E).IsSkip())
	assert.False(t, Decode(0x8AB5).IsSkip())
}

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x124E, "JP $24E"},
		{0xB24E, "JP V0, $24E"},
		{0x2EEE, "CALL $EEE"},
		{0x612A, "LD V1, $2A"},
		{0x8124, "ADD V1, V2"},
		{0x810E, "SHL V1"},
		{0xA300, "LD I, $300"},
		{0xD015, "DRW V0, V1, $5"},
		{0xE39E, "SKP V3"},
		{0xF307, "LD V3, DT"},
		{0xF315, "LD DT, V3"},
		{0xF318, "LD ST, V3"},
		{0xF329, "LD F, V3"},
		{0xF333, "LD B, V3"},
		{0xF355, "LD [I], V3"},
		{0xF365, "LD V3, [I]"},
		{0xFFFF, "DW $FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.word).String())
		})
	}
}

func TestDisassemble(t *testing.T) {
	program := []byte{0x61, 0x2A, 0x12, 0x00, 0xFF}
	lines := Disassemble(program, 0x200)

	assert.Len(t, lines, 3)
	assert.Equal(t, uint16(0x200), lines[0].Address)
	assert.Equal(t, LdByte, lines[0].Instruction.Op)
	assert.Equal(t, uint16(0x202), lines[1].Address)
	assert.Equal(t, Jp, lines[1].Instruction.Op)
	assert.Equal(t, uint16(0xFF00), lines[2].Instruction.Raw)

	expected := "200: 612A  LD V1, $2A\n202: 1200  JP $200\n204: FF00  DW $FF00\n"
	assert.Equal(t, expected, Listing(lines))
}
