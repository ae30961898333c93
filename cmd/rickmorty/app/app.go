// Package app provides the application context and dependency management
// for the rickmorty CLI. It centralizes configuration, logging, and client
// construction so commands stay thin.
package app

import (
	"github.com/rs/zerolog"

	rickmorty "github.com/BehshadMoeini/rick-and-morty"
	"github.com/BehshadMoeini/rick-and-morty/internal/cmd/output"
)

// App represents the rickmorty application with all its dependencies.
type App struct {
	version string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version string.
func New(version string) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg)
	return &App{
		version: version,
		config:  cfg,
		logger:  &logger,
	}, nil
}

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// Version returns the application version string.
func (a *App) Version() string { return a.version }

// Quiet reports whether minimal output was requested.
func (a *App) Quiet() bool { return a.config.Quiet }

// Format returns the effective output format, auto-detected when no
// explicit format was configured.
func (a *App) Format() output.Format {
	return output.DetectFormat(a.config.Output)
}

// Client builds a catalog client from the application configuration.
// Extra options take precedence over configured values.
func (a *App) Client(opts ...rickmorty.Option) (rickmorty.Client, error) {
	base := []rickmorty.Option{
		rickmorty.WithLogger(a.logger),
		rickmorty.WithCacheConfig(a.config.Cache),
	}
	if a.config.BaseURL != "" {
		base = append(base, rickmorty.WithBaseURL(a.config.BaseURL))
	}
	if a.config.FavoritesPath != "" {
		base = append(base, rickmorty.WithFavoritesPath(a.config.FavoritesPath))
	}
	if a.config.Debounce > 0 {
		base = append(base, rickmorty.WithDebounceWindow(a.config.Debounce))
	}
	return rickmorty.New(append(base, opts...)...)
}
