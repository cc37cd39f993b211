// Package config builds the logger shared by the command line tools
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger returns a logger at debug level when debug is set, at error
// level when quiet is set and at the default level otherwise
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
