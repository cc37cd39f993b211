// Package main prints a disassembly listing of a CHIP-8 program
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mnafees/c8vm/internal/config"
	"github.com/mnafees/c8vm/internal/opcode"
	"github.com/mnafees/c8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	flags := flag.NewFlagSet("c8dis", flag.ExitOnError)
	output := flags.String("o", "", "write the listing to `file` instead of stdout")
	debug := flags.Bool("debug", false, "enable debug logging")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: c8dis [options] <CHIP-8 program>\n")
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}

	logger := config.CreateLogger(*debug, false)
	input := flags.Arg(0)

	data, err := os.ReadFile(input)
	if err != nil {
		logger.Fatal(err.Error())
	}
	if len(data) > vm.MaxProgramSize {
		logger.Error("Program does not fit in memory",
			log.String("file", input),
			log.Int("size", len(data)))
	}

	lines := opcode.Disassemble(data, vm.ProgramStart)
	logger.Debug("Program disassembled",
		log.String("file", input),
		log.Int("instructions", len(lines)))

	listing := opcode.Listing(lines)
	if *output == "" {
		fmt.Print(listing)
		return
	}
	if err := os.WriteFile(*output, []byte(listing), 0o644); err != nil {
		logger.Fatal(err.Error())
	}
	logger.Info("Listing written", log.String("file", *output))
}
