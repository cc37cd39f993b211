package vm

import "github.com/mnafees/c8vm/internal/opcode"

// EventKind identifies what a trace Event reports
type EventKind int

// List of valid EventKind values
const (
	EventExecute EventKind = iota // an instruction completed
	EventBeep                     // the sound timer reached zero
	EventFault                    // Step failed, Err is set
)

func (k EventKind) String() string {
	switch k {
	case EventExecute:
		return "execute"
	case EventBeep:
		return "beep"
	case EventFault:
		return "fault"
	}
	return "unknown"
}

// Event is emitted by the Machine to its Tracer
type Event struct {
	Kind        EventKind
	PC          uint16 // address of the instruction
	Instruction opcode.Instruction
	Err         error
}

// Tracer receives events from the Machine. Trace is called synchronously
// from Step and must not call back into the Machine.
type Tracer interface {
	Trace(Event)
}

// TracerFunc adapts a function to the Tracer interface
type TracerFunc func(Event)

// Trace implements the Tracer interface
func (f TracerFunc) Trace(e Event) {
	f(e)
}

type nopTracer struct{}

func (nopTracer) Trace(Event) {}
