// Package app wires configuration, logging, persistence, the state registry,
// and the console menu into one runnable application.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/pmcore/internal/config"
	"github.com/vk/pmcore/internal/ctxlog"
	"github.com/vk/pmcore/internal/persistence"
	"github.com/vk/pmcore/internal/state"
)

// Options are the command-line overrides layered on top of the config file.
// Empty strings mean "no override".
type Options struct {
	ConfigPath string
	DataDir    string
	LogFormat  string
	LogLevel   string
	NoSave     bool
}

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW    io.Writer
	inR     io.Reader
	logger  *slog.Logger
	cfg     config.Config
	manager *state.Manager
	noSave  bool
}

// NewApp constructs a fully initialized application: config file merged with
// overrides, an isolated logger, and a registry loaded from the data
// directory.
func NewApp(ctx context.Context, outW io.Writer, logW io.Writer, inR io.Reader, opts *Options) (*App, error) {
	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	store := persistence.NewStore(cfg.DataDir)
	manager, err := state.New(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state registry: %w", err)
	}
	logger.Debug("State registry initialized.", "data_dir", cfg.DataDir)

	return &App{
		outW:    outW,
		inR:     inR,
		logger:  logger,
		cfg:     cfg,
		manager: manager,
		noSave:  opts.NoSave,
	}, nil
}

// Manager returns the app's state registry. This is primarily for testing.
func (a *App) Manager() *state.Manager {
	return a.manager
}
