// Package options contains the program options of the emulator hosts.
package options

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// Defaults for the host options
const (
	DefaultRate        = 700
	DefaultScale       = 20
	DefaultScreenColor = 0x1A237E
	DefaultSpriteColor = 0x9FA8DA
)

// ErrUsage is returned by Parse when the command line is incomplete
var ErrUsage = errors.New("usage")

// Parameters contains file path options.
type Parameters struct {
	ROM       string // program image to run
	Beep      string // optional .wav or .mp3 beep sample
	RecordWav string // write beeps to this WAV file on exit
	Memviz    string // write a graph of the machine state here when it halts
}

// Flags contains behavior options.
type Flags struct {
	Rate      int  // instructions per second
	Debug     bool // trace every instruction
	Quiet     bool
	Statsview bool
}

// Display contains frontend options.
type Display struct {
	Scale       int
	ScreenColor uint32
	SpriteColor uint32
}

// Program options of the emulator hosts.
type Program struct {
	Parameters
	Flags
	Display
}

// Parse reads the options from the command line arguments, not including
// the program name. The ROM is the single positional argument.
func Parse(name string, args []string, output io.Writer) (Program, error) {
	var opts Program

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [options] <CHIP-8 program>\n", name)
		fs.PrintDefaults()
	}

	fs.IntVar(&opts.Rate, "rate", DefaultRate, "instructions executed per second")
	fs.IntVar(&opts.Scale, "scale", DefaultScale, "size of one CHIP-8 pixel in window pixels")
	screen := fs.Uint("screen", DefaultScreenColor, "background colour as 0xRRGGBB")
	sprite := fs.Uint("sprite", DefaultSpriteColor, "foreground colour as 0xRRGGBB")
	fs.StringVar(&opts.Beep, "beep", "", "beep sample file (.wav or .mp3)")
	fs.StringVar(&opts.RecordWav, "wav", "", "record beeps to a WAV file")
	fs.StringVar(&opts.Memviz, "memviz", "", "write a dot graph of the machine state to this file on halt")
	fs.BoolVar(&opts.Statsview, "statsview", false, "serve runtime statistics over http")
	fs.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	fs.BoolVar(&opts.Quiet, "q", false, "quiet mode")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.ScreenColor = uint32(*screen)
	opts.SpriteColor = uint32(*sprite)

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, ErrUsage
	}
	opts.ROM = fs.Arg(0)

	return opts, opts.Validate()
}

// Validate checks the option values for consistency
func (p Program) Validate() error {
	if p.Rate <= 0 {
		return fmt.Errorf("invalid instruction rate %d", p.Rate)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("invalid scale %d", p.Scale)
	}
	if p.ScreenColor > 0xFFFFFF || p.SpriteColor > 0xFFFFFF {
		return errors.New("colours must be in the range 0x000000 to 0xFFFFFF")
	}
	return nil
}
