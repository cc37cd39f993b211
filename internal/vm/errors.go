package vm

import (
	"errors"
	"fmt"
)

// Errors without operands. Use errors.Is to test for them.
var (
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrProgramTooLarge = errors.New("program too large")
)

// InvalidOpcodeError is returned by Step when the fetched word matches no
// instruction
type InvalidOpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode %04X at %03X", e.Opcode, e.PC)
}

// MemoryFaultError is returned by Step when an access derived from the
// program counter or the index register falls outside of memory. Address is
// the first address that could not be accessed.
type MemoryFaultError struct {
	Address int
}

func (e *MemoryFaultError) Error() string {
	return fmt.Sprintf("memory fault at %04X", e.Address)
}
