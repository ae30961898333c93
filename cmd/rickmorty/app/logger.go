package app

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/BehshadMoeini/rick-and-morty/pkg/logging"
)

// NewLogger builds the application logger from configuration.
// Verbose and quiet flags override the configured level; the "auto"
// format picks console output on terminals and JSON everywhere else.
func NewLogger(cfg *Config) zerolog.Logger {
	level := parseLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	if cfg.Quiet {
		level = zerolog.ErrorLevel
	}

	var logger zerolog.Logger
	switch cfg.LogFormat {
	case "json":
		logger = logging.NewJSON(os.Stderr)
	case "console":
		logger = logging.NewConsole()
	default: // auto
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			logger = logging.NewConsole()
		} else {
			logger = logging.NewJSON(os.Stderr)
		}
	}

	logger = logger.Level(level)
	logging.SetDefault(logger)
	return logger
}

// parseLevel converts a level name to a zerolog level, defaulting to info.
func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// init keeps zerolog's duration rendering stable across the app.
func init() {
	zerolog.DurationFieldUnit = time.Millisecond
}
