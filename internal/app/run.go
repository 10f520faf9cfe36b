package app

import (
	"context"
	"fmt"

	"github.com/vk/pmcore/internal/ctxlog"
	"github.com/vk/pmcore/internal/menu"
)

// Run drives the interactive console until the user exits, then flushes
// state unless autosave is disabled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.")

	m := menu.New(a.manager, a.inR, a.outW)
	if err := m.Run(ctx); err != nil {
		return fmt.Errorf("console session failed: %w", err)
	}

	if a.noSave || !a.cfg.AutoSave {
		a.logger.Debug("Autosave disabled, skipping flush.")
		return nil
	}
	if err := a.manager.SaveAll(ctx); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	a.logger.Debug("State flushed on exit.", "data_dir", a.cfg.DataDir)
	return nil
}
