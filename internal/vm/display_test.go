package vm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

// litCells returns the indexes of all lit cells
func litCells(m *Machine) []int {
	var lit []int
	d := m.Display()
	for i, c := range d {
		if c == 1 {
			lit = append(lit, i)
		}
	}
	return lit
}

func TestDraw_DoubleXOR(t *testing.T) {
	m := newMachine(t,
		0xA000, // LD I, $000 (glyph 0)
		0x6108, // LD V1, $08
		0x6204, // LD V2, $04
		0xD125, // DRW V1, V2, $5
		0xD125, // DRW V1, V2, $5
	)
	run(t, m, 3)
	assert.False(t, m.Flush())
	before := m.Display()

	run(t, m, 1)
	assert.Equal(t, uint8(0), m.V(0xF))
	assert.True(t, m.Flush())
	assert.Len(t, litCells(m), 14)
	assert.True(t, m.Pixel(8, 4))
	assert.True(t, m.Pixel(11, 8))
	assert.False(t, m.Pixel(9, 5))

	run(t, m, 1)
	assert.Equal(t, uint8(1), m.V(0xF))
	assert.True(t, m.Flush())
	if diff := cmp.Diff(before, m.Display()); diff != "" {
		t.Errorf("display after second draw: (-want, +got)\n%s", diff)
	}
}

func TestDraw_NoCollisionResetsFlag(t *testing.T) {
	m := newMachine(t,
		0x6FAA, // LD VF, $AA
		0xA000, // LD I, $000
		0x6000, // LD V0, $00
		0xD001, // DRW V0, V0, $1
	)
	run(t, m, 4)
	assert.Equal(t, uint8(0), m.V(0xF))
}

func TestDraw_PartialOverlap(t *testing.T) {
	m := newMachine(t,
		0xA000, // LD I, $000 (row 0xF0)
		0x6000, // LD V0, $00
		0x6102, // LD V1, $02
		0xD001, // DRW V0, V0, $1
		0xD101, // DRW V1, V0, $1
	)
	run(t, m, 5)

	assert.Equal(t, uint8(1), m.V(0xF))
	if diff := cmp.Diff([]int{0, 1, 4, 5}, litCells(m)); diff != "" {
		t.Errorf("lit cells: (-want, +got)\n%s", diff)
	}
}

func TestDraw_WrapsPerAxis(t *testing.T) {
	m := newMachine(t,
		0xA000, // LD I, $000 (glyph 0: F0 90 90 90 F0)
		0x603E, // LD V0, $3E (x = 62)
		0x611E, // LD V1, $1E (y = 30)
		0xD015, // DRW V0, V1, $5
	)
	run(t, m, 4)

	// top row at y=30 wraps from x=63 to x=0 on the same row
	assert.True(t, m.Pixel(62, 30))
	assert.True(t, m.Pixel(63, 30))
	assert.True(t, m.Pixel(0, 30))
	assert.True(t, m.Pixel(1, 30))
	assert.False(t, m.Pixel(0, 31))

	// third row wraps vertically to y=0
	assert.True(t, m.Pixel(62, 0))
	assert.False(t, m.Pixel(63, 0))
	assert.False(t, m.Pixel(0, 0))
	assert.True(t, m.Pixel(1, 0))

	// bottom row at y=2
	assert.True(t, m.Pixel(62, 2))
	assert.True(t, m.Pixel(1, 2))
	assert.Len(t, litCells(m), 14)
}

func TestDraw_ZeroRows(t *testing.T) {
	m := newMachine(t,
		0x6F01, // LD VF, $01
		0xD000, // DRW V0, V0, $0
	)
	run(t, m, 2)

	assert.Equal(t, uint8(0), m.V(0xF))
	assert.True(t, m.Flush())
	assert.Len(t, litCells(m), 0)
}

func TestDraw_ZeroRowsIndexBeyondMemory(t *testing.T) {
	m := newMachine(t,
		0xAFFF, // LD I, $FFF
		0x60FF, // LD V0, $FF
		0xF01E, // ADD I, V0
		0xD000, // DRW V0, V0, $0
	)
	run(t, m, 3)
	assert.Equal(t, uint16(0x10FE), m.I())

	// no sprite bytes are read, so the index is never dereferenced
	assert.NoError(t, m.Step(0))
	assert.Equal(t, uint16(0x208), m.PC())
	assert.Equal(t, uint8(0), m.V(0xF))
	assert.True(t, m.Flush())
	assert.Len(t, litCells(m), 0)
}

func TestClear(t *testing.T) {
	m := newMachine(t,
		0xA000, // LD I, $000
		0xD005, // DRW V0, V0, $5
		0x00E0, // CLS
	)
	run(t, m, 2)
	assert.True(t, m.Flush())
	assert.False(t, m.Flush())

	run(t, m, 1)
	assert.True(t, m.Flush())
	assert.Equal(t, [DisplaySize]uint8{}, m.Display())
	assert.Equal(t, uint16(0x206), m.PC())
}
