package host

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mnafees/c8vm/internal/options"
	"github.com/mnafees/c8vm/internal/sound"
	"github.com/mnafees/c8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Session is a machine with a loaded program and the host services
// configured by the program options
type Session struct {
	Machine *vm.Machine
	Beep    sound.Sample

	opts     options.Program
	logger   *log.Logger
	recorder *sound.Recorder
}

// LoadROM reads a program image from disk into the machine's memory
func LoadROM(m *vm.Machine, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if err := m.LoadProgram(data); err != nil {
		return fmt.Errorf("loading program %s: %w", filename, err)
	}
	return nil
}

// NewSession creates the machine, loads the ROM and the beep sample and
// starts the optional diagnostics
func NewSession(opts options.Program, logger *log.Logger) (*Session, error) {
	s := &Session{
		Machine: vm.New(vm.WithTracer(NewLogTracer(logger, opts.Debug))),
		opts:    opts,
		logger:  logger,
	}

	if err := LoadROM(s.Machine, opts.ROM); err != nil {
		return nil, err
	}
	logger.Debug("Program loaded", log.String("file", opts.ROM))

	s.Beep = sound.Tone(sound.DefaultSampleRate, sound.DefaultDuration, sound.DefaultFrequency)
	if opts.Beep != "" {
		sample, err := sound.LoadSample(opts.Beep)
		if err != nil {
			return nil, err
		}
		s.Beep = sample
		logger.Debug("Beep sample loaded",
			log.String("file", opts.Beep),
			log.Int("rate", sample.Rate))
	}

	if opts.RecordWav != "" {
		s.recorder = sound.NewRecorder(s.Beep)
	}
	if opts.Statsview {
		LaunchStatsview(logger)
	}
	return s, nil
}

// Run executes the program against the frontend until the user quits, ctx is
// done or the machine halts. A halted machine is dumped when a memviz file
// was requested, and recorded beeps are written out in every case.
func (s *Session) Run(ctx context.Context, fe Frontend) error {
	var runOpts []RunnerOption
	if s.recorder != nil {
		runOpts = append(runOpts, WithRecorder(s.recorder))
	}

	runErr := NewRunner(s.Machine, fe, s.opts.Rate, runOpts...).Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) && s.opts.Memviz != "" {
		if err := DumpState(s.opts.Memviz, s.Machine); err != nil {
			s.logger.Error("Writing machine state failed", log.Err(err))
		} else {
			s.logger.Info("Machine state written", log.String("file", s.opts.Memviz))
		}
	}

	if s.recorder != nil {
		if err := s.writeRecording(); err != nil {
			return errors.Join(runErr, err)
		}
	}

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (s *Session) writeRecording() (rerr error) {
	f, err := os.Create(s.opts.RecordWav)
	if err != nil {
		return fmt.Errorf("recording: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("recording: %w", err)
		}
	}()

	if err := s.recorder.Write(f); err != nil {
		return err
	}
	s.logger.Info("Beeps recorded",
		log.String("file", s.opts.RecordWav),
		log.Int("beeps", len(s.recorder.Beeps())))
	return nil
}
