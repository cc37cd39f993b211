// Package host drives a machine in real time on behalf of a frontend. The
// frontend owns the window, keyboard and speaker; the runner owns pacing,
// elapsed time measurement and the hand-over of keys, frames and beeps.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/mnafees/c8vm/internal/vm"
)

// Frontend is the input/output abstraction layer for the VM
type Frontend interface {
	// Poll returns the current key pad state. quit is true when the user
	// asked to stop.
	Poll() (keys [vm.KeyCount]bool, quit bool, err error)

	// Render is called with the display contents whenever they change
	Render(display [vm.DisplaySize]uint8) error

	// Beep is called on the step where the sound timer runs out
	Beep() error
}

// BeepRecorder is told about emulation time and beeps, for recording
type BeepRecorder interface {
	Advance(elapsed time.Duration)
	Beep()
}

// Runner steps a machine at a fixed instruction rate
type Runner struct {
	machine  *vm.Machine
	frontend Frontend
	interval time.Duration
	recorder BeepRecorder

	now   func() time.Time
	sleep func(time.Duration)
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithRecorder reports elapsed time and beeps to rec
func WithRecorder(rec BeepRecorder) RunnerOption {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithClock replaces the wall clock and sleep functions
func WithClock(now func() time.Time, sleep func(time.Duration)) RunnerOption {
	return func(r *Runner) {
		r.now = now
		r.sleep = sleep
	}
}

// NewRunner returns a runner executing rate instructions per second
func NewRunner(m *vm.Machine, fe Frontend, rate int, opts ...RunnerOption) *Runner {
	if rate <= 0 {
		rate = 1
	}
	r := &Runner{
		machine:  m,
		frontend: fe,
		interval: time.Second / time.Duration(rate),
		now:      time.Now,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run is the main application loop. It returns nil when the frontend asks to
// quit, the context error when ctx is done and the machine error when the
// machine halts.
func (r *Runner) Run(ctx context.Context) error {
	last := r.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		keys, quit, err := r.frontend.Poll()
		if err != nil {
			return fmt.Errorf("polling input: %w", err)
		}
		if quit {
			return nil
		}
		r.machine.SetKeys(keys)

		now := r.now()
		elapsed := now.Sub(last)
		last = now

		if err := r.machine.Step(elapsed); err != nil {
			return err
		}

		if r.recorder != nil {
			r.recorder.Advance(elapsed)
		}
		if r.machine.Beeped() {
			if r.recorder != nil {
				r.recorder.Beep()
			}
			if err := r.frontend.Beep(); err != nil {
				return fmt.Errorf("beep: %w", err)
			}
		}

		if r.machine.Flush() {
			if err := r.frontend.Render(r.machine.Display()); err != nil {
				return fmt.Errorf("rendering display: %w", err)
			}
		}

		if d := r.interval - r.now().Sub(now); d > 0 {
			r.sleep(d)
		}
	}
}
