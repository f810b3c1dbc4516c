package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/liftsim/internal/ctxlog"
)

// Run ticks the simulation until ctx is cancelled or the configured tick limit
// is reached. It only returns an error when a tick leaves the state corrupt.
func (e *Engine) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🛗 Simulation started.", "elevators", len(e.elevators), "tick_period", e.tickPeriod, "max_ticks", e.maxTicks)

	timer := time.NewTimer(e.tickPeriod)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			logger.Info("🏁 Simulation cancelled.", "ticks", e.tick, "delivered", e.delivered)
			return nil
		}

		if err := e.Tick(ctx); err != nil {
			return fmt.Errorf("tick %d failed: %w", e.tick, err)
		}

		if e.maxTicks > 0 && e.tick >= e.maxTicks {
			logger.Info("🏁 Simulation finished.", "ticks", e.tick, "delivered", e.delivered, "waiting", len(e.waiting))
			return nil
		}

		timer.Reset(e.tickPeriod)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}
