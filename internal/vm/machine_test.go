package vm

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

// words encodes instruction words as a big-endian program image
func words(ws ...uint16) []uint8 {
	b := make([]uint8, 0, len(ws)*2)
	for _, w := range ws {
		b = append(b, uint8(w>>8), uint8(w))
	}
	return b
}

// newMachine returns a machine with the given instruction words loaded
func newMachine(t *testing.T, ws ...uint16) *Machine {
	t.Helper()
	m := New(WithRandom(NewSequence()))
	assert.NoError(t, m.LoadProgram(words(ws...)))
	return m
}

// run executes n steps without advancing the timers
func run(t *testing.T, m *Machine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.NoError(t, m.Step(0))
	}
}

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.I())
	assert.Equal(t, uint8(0), m.StackPointer())

	mem := m.Memory()
	if diff := cmp.Diff(fontset, mem[:len(fontset)]); diff != "" {
		t.Errorf("fontset: (-want, +got)\n%s", diff)
	}
	if diff := cmp.Diff(make([]uint8, MemorySize-len(fontset)), mem[len(fontset):]); diff != "" {
		t.Errorf("memory not zeroed: (-want, +got)\n%s", diff)
	}
	assert.Equal(t, [DisplaySize]uint8{}, m.Display())
	assert.False(t, m.Flush())
}

func TestLoadProgram(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"small", 10, false},
		{"maximum", MaxProgramSize, false},
		{"one byte too many", MaxProgramSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := make([]uint8, tt.size)
			for i := range program {
				program[i] = uint8(i * 7)
			}

			m := New()
			err := m.LoadProgram(program)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrProgramTooLarge))
				mem := m.Memory()
				assert.Equal(t, uint8(0), mem[ProgramStart+1])
				return
			}

			assert.NoError(t, err)
			mem := m.Memory()
			if diff := cmp.Diff(program, mem[ProgramStart:ProgramStart+tt.size]); diff != "" {
				t.Errorf("program: (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestReset(t *testing.T) {
	m := newMachine(t, 0x6A42, 0x00E0)
	run(t, m, 2)
	assert.Equal(t, uint8(0x42), m.V(0xA))

	m.Reset()
	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint8(0), m.V(0xA))
	assert.False(t, m.Flush())

	b, err := m.ReadByte(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x6A), b)
}

func TestReadByte(t *testing.T) {
	m := New()

	b, err := m.ReadByte(0)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xF0), b)

	_, err = m.ReadByte(MemorySize)
	var fault *MemoryFaultError
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, MemorySize, fault.Address)
}

func TestKeys(t *testing.T) {
	m := New()

	var keys [KeyCount]bool
	keys[0x3] = true
	keys[0xF] = true
	m.SetKeys(keys)
	assert.Equal(t, keys, m.Keys())

	m.SetKeys([KeyCount]bool{})
	assert.False(t, m.Keys()[0x3])
}

func TestPixel(t *testing.T) {
	m := newMachine(t,
		0xA000, // LD I, $000 (glyph 0, top row 0xF0)
		0x6000, // LD V0, $00
		0xD001, // DRW V0, V0, $1
	)
	run(t, m, 3)

	assert.True(t, m.Pixel(0, 0))
	assert.True(t, m.Pixel(3, 0))
	assert.False(t, m.Pixel(4, 0))
	assert.True(t, m.Pixel(ScreenWidth, ScreenHeight))
	assert.False(t, m.Pixel(0, 1))
}
