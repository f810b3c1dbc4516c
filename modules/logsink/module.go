package logsink

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/ctxlog"
	"github.com/vk/liftsim/internal/engine"
	"github.com/vk/liftsim/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of a `renderer "log"` block.
type Input struct {
	Level string `hcl:"level,optional"`
	Every int    `hcl:"every,optional"`
}

// Renderer writes tick summaries to the logger carried by the render context.
type Renderer struct {
	level slog.Level
	every uint64
}

// New validates input and creates a log renderer. Level defaults to info
// and Every to one record per tick.
func New(input *Input) (*Renderer, error) {
	r := &Renderer{level: slog.LevelInfo, every: 1}
	if input.Level != "" {
		if err := r.level.UnmarshalText([]byte(strings.ToUpper(input.Level))); err != nil {
			return nil, fmt.Errorf("invalid level %q", input.Level)
		}
	}
	if input.Every < 0 {
		return nil, fmt.Errorf("every must not be negative, got %d", input.Every)
	}
	if input.Every > 0 {
		r.every = uint64(input.Every)
	}
	return r, nil
}

// Render logs one summary record and, at debug, one record per elevator.
func (r *Renderer) Render(ctx context.Context, snap engine.Snapshot) error {
	if snap.Tick%r.every != 0 {
		return nil
	}
	logger := ctxlog.FromContext(ctx).With("renderer", "log", "tick", snap.Tick)

	logger.Log(ctx, r.level, "Tick rendered.",
		"waiting", len(snap.Waiting),
		"riding", riding(snap),
		"alighted", len(snap.Alighted),
		"delivered", snap.Delivered,
	)
	for _, a := range snap.Alighted {
		logger.Debug("Passenger delivered.", "elevator", a.Elevator, "passenger", a.Passenger.ID,
			"from", a.Passenger.Origin, "to", a.Passenger.Destination)
	}
	for _, el := range snap.Elevators {
		logger.Debug("Elevator state.", "elevator", el.Name, "floor", el.Floor,
			"position", el.Position, "direction", el.Direction, "passengers", el.PassengerCount)
	}
	return nil
}

func riding(snap engine.Snapshot) int {
	n := 0
	for _, el := range snap.Elevators {
		n += el.PassengerCount
	}
	return n
}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRenderer("log", &registry.RegisteredRenderer{
		Description: "Emits a structured log record per tick.",
		New: func(_ context.Context, _ *registry.Deps, spec *config.Renderer) (engine.Renderer, error) {
			input := new(Input)
			if err := registry.DecodeBody(spec, input); err != nil {
				return nil, err
			}
			return New(input)
		},
	})
}
