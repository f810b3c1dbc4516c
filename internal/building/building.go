// Package building describes the vertical geometry of the simulated building.
//
// Positions are measured in units rather than floors: floor f sits at unit
// f*Stride. An elevator moves one unit per tick, so it can never jump over a
// floor, and it is "at a floor" exactly when its position is a multiple of
// Stride.
package building

import (
	"fmt"
	"time"
)

const (
	// Stride is the number of units between two adjacent floors.
	Stride = 10

	MinFloor = 1
	MaxFloor = 10

	MinUnit = MinFloor * Stride
	MaxUnit = MaxFloor * Stride

	// DefaultCapacity is the number of passengers an elevator can carry.
	DefaultCapacity = 20

	// DefaultTickPeriod is the pause between two simulation ticks.
	DefaultTickPeriod = 500 * time.Millisecond
)

// Geometry is the unit range an elevator may occupy.
type Geometry struct {
	MinUnit int
	MaxUnit int
}

// Default returns the geometry of the standard ten-floor building.
func Default() Geometry {
	return Geometry{MinUnit: MinUnit, MaxUnit: MaxUnit}
}

// New builds a geometry spanning minFloor..maxFloor inclusive.
func New(minFloor, maxFloor int) (Geometry, error) {
	if minFloor < 0 {
		return Geometry{}, fmt.Errorf("min floor %d must not be negative", minFloor)
	}
	if maxFloor <= minFloor {
		return Geometry{}, fmt.Errorf("max floor %d must be above min floor %d", maxFloor, minFloor)
	}
	return Geometry{MinUnit: FloorToUnit(minFloor), MaxUnit: FloorToUnit(maxFloor)}, nil
}

// MinFloor returns the lowest floor index.
func (g Geometry) MinFloor() int { return UnitToFloor(g.MinUnit) }

// MaxFloor returns the highest floor index.
func (g Geometry) MaxFloor() int { return UnitToFloor(g.MaxUnit) }

// Contains reports whether unit lies inside the building.
func (g Geometry) Contains(unit int) bool {
	return unit >= g.MinUnit && unit <= g.MaxUnit
}

// ContainsFloor reports whether floor is one of the building's floors.
func (g Geometry) ContainsFloor(floor int) bool {
	return g.Contains(FloorToUnit(floor))
}

// FloorToUnit maps a floor index to its position in units.
func FloorToUnit(floor int) int { return floor * Stride }

// UnitToFloor maps a position to the floor at or below it.
func UnitToFloor(unit int) int { return unit / Stride }

// AtFloor reports whether unit is aligned on a floor boundary.
func AtFloor(unit int) bool { return unit%Stride == 0 }
