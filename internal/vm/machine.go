// Package vm implements the CHIP-8 virtual machine: memory, registers, call
// stack, timers, display and key state, and the instruction engine that
// mutates them.
//
// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
package vm

import (
	"fmt"
	"time"
)

// CHIP-8 VM constants
const (
	MemorySize     = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart

	RegisterCount = 16
	StackDepth    = 16
	KeyCount      = 16

	ScreenWidth  = 64
	ScreenHeight = 32
	DisplaySize  = ScreenWidth * ScreenHeight

	// TimerPeriod is the interval at which the delay and sound timers count down
	TimerPeriod = time.Second / 60

	glyphSize = 5
)

var fontset = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Machine is an emulated CHIP-8 VM
type Machine struct {
	memory [MemorySize]uint8    // 4 KB global memory
	regV   [RegisterCount]uint8 // 16 general purpose 8-bit registers
	regI   uint16               // 16-bit register that is generally used to store memory addresses
	pc     uint16               // Program counter
	sp     uint8                // Stack pointer
	stack  [StackDepth]uint16   // A stack of 16 16-bit values

	timers timers
	screen display
	keys   [KeyCount]bool

	program []uint8 // copy of the last loaded program, restored by Reset

	random Random
	tracer Tracer
}

// Option configures a Machine at construction
type Option func(*Machine)

// WithRandom sets the entropy source used by the RND instruction
func WithRandom(r Random) Option {
	return func(m *Machine) {
		m.random = r
	}
}

// WithTracer sets the receiver of trace events
func WithTracer(t Tracer) Option {
	return func(m *Machine) {
		m.tracer = t
	}
}

// New creates a new instance of an emulated CHIP-8 VM
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	if m.random == nil {
		m.random = NewRandom()
	}
	if m.tracer == nil {
		m.tracer = nopTracer{}
	}
	m.powerOn()
	return m
}

func (m *Machine) powerOn() {
	m.memory = [MemorySize]uint8{}
	copy(m.memory[:], fontset)
	m.regV = [RegisterCount]uint8{}
	m.regI = 0
	m.pc = ProgramStart
	m.sp = 0
	m.stack = [StackDepth]uint16{}
	m.timers = timers{}
	m.screen = display{}
	m.keys = [KeyCount]bool{}
}

// Reset returns the machine to its power-on state. A previously loaded
// program is copied back into memory.
func (m *Machine) Reset() {
	m.powerOn()
	copy(m.memory[ProgramStart:], m.program)
}

// LoadProgram loads a given CHIP-8 program into the VM's memory
func (m *Machine) LoadProgram(program []uint8) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m.memory[ProgramStart:], program)
	m.program = append(m.program[:0], program...)
	return nil
}

// PC returns the program counter
func (m *Machine) PC() uint16 {
	return m.pc
}

// I returns the index register
func (m *Machine) I() uint16 {
	return m.regI
}

// V returns general register x. Only the low nibble of x is used.
func (m *Machine) V(x uint8) uint8 {
	return m.regV[x&0xF]
}

// Registers returns a copy of V0..VF
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.regV
}

// StackPointer returns the number of return addresses on the stack
func (m *Machine) StackPointer() uint8 {
	return m.sp
}

// Stack returns a copy of the return address stack. Entry 0 is never
// written; the first call stores its return address in entry 1.
func (m *Machine) Stack() [StackDepth]uint16 {
	return m.stack
}

// Memory returns a copy of the address space
func (m *Machine) Memory() [MemorySize]uint8 {
	return m.memory
}

// ReadByte returns the byte at address
func (m *Machine) ReadByte(address uint16) (uint8, error) {
	if err := checkRange(address, 1); err != nil {
		return 0, err
	}
	return m.memory[address], nil
}

// DelayTimer returns the current delay timer value
func (m *Machine) DelayTimer() uint8 {
	return m.timers.delay
}

// SoundTimer returns the current sound timer value
func (m *Machine) SoundTimer() uint8 {
	return m.timers.sound
}

// Beeped returns true if the most recent Step moved the sound timer from 1
// to 0
func (m *Machine) Beeped() bool {
	return m.timers.beeped
}

// SetKeys replaces the key pad state. Index is the key identifier 0x0..0xF.
func (m *Machine) SetKeys(keys [KeyCount]bool) {
	m.keys = keys
}

// Keys returns the current key pad state
func (m *Machine) Keys() [KeyCount]bool {
	return m.keys
}

// Flush returns true if the display changed since the previous Flush
func (m *Machine) Flush() bool {
	return m.screen.flush()
}

// Display returns a copy of the display cells in row-major order. Each cell
// is 0 or 1.
func (m *Machine) Display() [DisplaySize]uint8 {
	return m.screen.cells
}

// Pixel returns true if the cell at x, y is lit. Coordinates wrap.
func (m *Machine) Pixel(x, y int) bool {
	return m.screen.cells[cellIndex(x, y)] == 1
}

// checkRange returns a MemoryFaultError if any of the size bytes starting at
// address lie outside of memory
func checkRange(address uint16, size int) error {
	if size <= 0 {
		return nil
	}
	last := int(address) + size - 1
	if last >= MemorySize {
		if int(address) >= MemorySize {
			return &MemoryFaultError{Address: int(address)}
		}
		return &MemoryFaultError{Address: MemorySize}
	}
	return nil
}
