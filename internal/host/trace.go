package host

import (
	"github.com/mnafees/c8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// LogTracer writes machine trace events to a logger. Executed instructions
// and beeps are only logged when verbose, faults always.
type LogTracer struct {
	logger  *log.Logger
	verbose bool
}

// NewLogTracer returns a tracer that logs to logger. verbose should match
// whether the logger is at debug level.
func NewLogTracer(logger *log.Logger, verbose bool) *LogTracer {
	return &LogTracer{logger: logger, verbose: verbose}
}

// Trace implements the vm.Tracer interface
func (t *LogTracer) Trace(e vm.Event) {
	switch e.Kind {
	case vm.EventExecute:
		if !t.verbose {
			return
		}
		t.logger.Debug("Executed",
			log.Hex("pc", e.PC),
			log.Hex("opcode", e.Instruction.Raw),
			log.String("instruction", e.Instruction.String()))

	case vm.EventBeep:
		if !t.verbose {
			return
		}
		t.logger.Debug("Beep", log.Hex("pc", e.PC))

	case vm.EventFault:
		t.logger.Error("Machine halted",
			log.Hex("pc", e.PC),
			log.Err(e.Err))
	}
}
