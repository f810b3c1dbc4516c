package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/liftsim/internal/ctxlog"
)

// Run starts the health check server, runs the simulation until ctx is
// cancelled or the tick limit is reached, and then releases the renderers.
func (a *App) Run(ctx context.Context) (err error) {
	a.ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer func() {
		closeErr := errors.Join(a.engine.Close(), a.closeHealthCheckServer())
		if closeErr != nil {
			a.logger.Warn("Cleanup finished with errors.", "error", closeErr)
		}
		a.logger.Debug("App.Run method finished.")
	}()

	if err := a.engine.Run(a.ctx); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	return nil
}
