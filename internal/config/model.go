package config

import (
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/liftsim/internal/building"
)

// Model is the unified configuration of one simulation.
type Model struct {
	Building   Building
	Elevators  []*Elevator
	Passengers []*Passenger
	Renderers  []*Renderer
}

// Building describes the floor range and the shared car settings.
type Building struct {
	MinFloor   int
	MaxFloor   int
	Capacity   int
	TickPeriod time.Duration
}

// DefaultBuilding returns the settings used when no building block is given.
func DefaultBuilding() Building {
	return Building{
		MinFloor:   building.MinFloor,
		MaxFloor:   building.MaxFloor,
		Capacity:   building.DefaultCapacity,
		TickPeriod: building.DefaultTickPeriod,
	}
}

// Elevator is one car, parked on Floor at start.
type Elevator struct {
	Name  string
	Floor int
}

// Passenger is a trip submitted before the first tick.
type Passenger struct {
	From int
	To   int
}

// Renderer selects a renderer module by Type. Body holds the raw block so the
// module can decode its own settings with EvalContext.
type Renderer struct {
	Type        string
	Body        hcl.Body
	EvalContext *hcl.EvalContext
}
