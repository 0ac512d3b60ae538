package main

import (
	"io"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type logConfig struct {
	File  string `env:"MIDI2DECTALK_LOGFILE"`
	Debug bool   `env:"DEBUG"`
}

// setupLog configures the global logger. Without MIDI2DECTALK_LOGFILE all
// logging is discarded so the score output stays clean.
func setupLog() (func() error, error) {
	cfg, err := env.ParseAs[logConfig]()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if cfg.File != "" {
		f, err := tea.LogToFileWith(cfg.File, "midi2dectalk", log.Default())
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		if cfg.Debug {
			log.SetLevel(log.DebugLevel)
		}
		return f.Close, nil
	}
	log.SetOutput(io.Discard)
	return func() error { return nil }, nil
}
