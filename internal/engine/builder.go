package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/liftsim/internal/building"
	"github.com/vk/liftsim/internal/elevator"
)

// ErrInvalidConfiguration is returned by Build when the fleet cannot be
// simulated.
var ErrInvalidConfiguration = errors.New("invalid configuration")

type elevatorSpec struct {
	name  string
	floor int
}

// Builder collects the fleet layout before an Engine is created.
type Builder struct {
	geometry   building.Geometry
	capacity   int
	tickPeriod time.Duration
	maxTicks   uint64
	elevators  []elevatorSpec
}

// NewBuilder returns a builder preset with the default building.
func NewBuilder() *Builder {
	return &Builder{
		geometry:   building.Default(),
		capacity:   building.DefaultCapacity,
		tickPeriod: building.DefaultTickPeriod,
	}
}

func (b *Builder) Geometry(g building.Geometry) *Builder {
	b.geometry = g
	return b
}

// Capacity sets the number of passengers every elevator can hold.
func (b *Builder) Capacity(n int) *Builder {
	b.capacity = n
	return b
}

func (b *Builder) TickPeriod(d time.Duration) *Builder {
	b.tickPeriod = d
	return b
}

// MaxTicks stops Run after n ticks. Zero runs until cancelled.
func (b *Builder) MaxTicks(n uint64) *Builder {
	b.maxTicks = n
	return b
}

// AddElevator appends an elevator parked on floor. Fleet order is the order
// of the calls, and it breaks ties during dispatch.
func (b *Builder) AddElevator(name string, floor int) *Builder {
	b.elevators = append(b.elevators, elevatorSpec{name: name, floor: floor})
	return b
}

// Build validates the layout and creates the engine.
func (b *Builder) Build() (*Engine, error) {
	if len(b.elevators) == 0 {
		return nil, fmt.Errorf("%w: at least one elevator is required", ErrInvalidConfiguration)
	}
	if b.tickPeriod <= 0 {
		return nil, fmt.Errorf("%w: tick period must be positive, got %s", ErrInvalidConfiguration, b.tickPeriod)
	}

	fleet := make([]*elevator.Elevator, 0, len(b.elevators))
	names := make(map[string]struct{}, len(b.elevators))
	for _, spec := range b.elevators {
		if _, dup := names[spec.name]; dup {
			return nil, fmt.Errorf("%w: duplicate elevator name %q", ErrInvalidConfiguration, spec.name)
		}
		names[spec.name] = struct{}{}

		e, err := elevator.New(spec.name, spec.floor, b.geometry, b.capacity)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		fleet = append(fleet, e)
	}

	return &Engine{
		geometry:   b.geometry,
		tickPeriod: b.tickPeriod,
		maxTicks:   b.maxTicks,
		elevators:  fleet,
	}, nil
}
