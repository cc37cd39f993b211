// Package main runs a CHIP-8 program in an SDL window
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/mnafees/c8vm/internal/config"
	"github.com/mnafees/c8vm/internal/host"
	"github.com/mnafees/c8vm/internal/options"
	"github.com/mnafees/c8vm/pkg/sdl"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	opts, err := options.Parse("c8vm-sdl", os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, options.ErrUsage) {
			config.CreateLogger(false, false).Error("Invalid arguments", log.Err(err))
		}
		os.Exit(1)
	}
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	session, err := host.NewSession(opts, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}

	io := sdl.NewIO(opts.Scale, opts.ScreenColor, opts.SpriteColor)
	defer io.Destroy()
	if err := io.SetupWindow("Chopper | CHIP-8 Emulator"); err != nil {
		logger.Fatal(err.Error())
	}
	if err := io.SetupAudio(session.Beep); err != nil {
		logger.Error("Audio unavailable, beeps are muted", log.Err(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := session.Run(ctx, io); err != nil {
		logger.Error("Emulation stopped", log.Err(err))
		io.Destroy()
		os.Exit(1)
	}
}
