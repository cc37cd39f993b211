// Package main runs a CHIP-8 program in the terminal
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/mnafees/c8vm/internal/config"
	"github.com/mnafees/c8vm/internal/host"
	"github.com/mnafees/c8vm/internal/options"
	"github.com/mnafees/c8vm/pkg/tty"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	opts, err := options.Parse("c8vm-term", os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, options.ErrUsage) {
			config.CreateLogger(false, false).Error("Invalid arguments", log.Err(err))
		}
		os.Exit(1)
	}
	// the display owns the terminal, only errors are logged unless debugging
	logger := config.CreateLogger(opts.Debug, !opts.Debug)

	session, err := host.NewSession(opts, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}

	terminal, err := tty.Open("/dev/tty", tty.DefaultHold)
	if err != nil {
		logger.Fatal(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := session.Run(ctx, terminal)
	if err := terminal.Close(); err != nil {
		logger.Error("Restoring terminal failed", log.Err(err))
	}
	if runErr != nil {
		logger.Error("Emulation stopped", log.Err(runErr))
		os.Exit(1)
	}
}
