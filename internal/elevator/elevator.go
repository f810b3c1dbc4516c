// Package elevator holds the per-car state machine and the passengers it
// carries.
//
// An elevator advances once per tick through four named transitions:
//
//	Arrived   -> is there a passenger onboard and are we on a floor boundary?
//	Disembark -> drop everyone whose destination is here, stop
//	Redirect  -> pick the next direction from the first passenger
//	Move      -> one unit in the current direction, stop at the building ends
//
// Boarding is not part of Advance. The engine boards waiting passengers after
// every car has moved, using AddPassenger.
package elevator

import (
	"errors"
	"fmt"

	"github.com/vk/liftsim/internal/building"
)

// Elevator is one car of the fleet. It is not safe for concurrent use; the
// engine's tick loop is its only writer.
type Elevator struct {
	name     string
	geometry building.Geometry
	capacity int

	position   int
	direction  Direction
	passengers []*Passenger
}

// New creates a stopped, empty elevator parked on the given floor.
func New(name string, floor int, geometry building.Geometry, capacity int) (*Elevator, error) {
	if name == "" {
		return nil, errors.New("elevator name must not be empty")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("elevator %q: capacity must be positive, got %d", name, capacity)
	}
	if !geometry.ContainsFloor(floor) {
		return nil, fmt.Errorf("elevator %q: floor %d is outside floors %d..%d",
			name, floor, geometry.MinFloor(), geometry.MaxFloor())
	}

	return &Elevator{
		name:       name,
		geometry:   geometry,
		capacity:   capacity,
		position:   building.FloorToUnit(floor),
		direction:  Stopped,
		passengers: make([]*Passenger, 0, capacity),
	}, nil
}

func (e *Elevator) Name() string { return e.name }
func (e *Elevator) Position() int { return e.position }
func (e *Elevator) Direction() Direction { return e.direction }
func (e *Elevator) Capacity() int { return e.capacity }
func (e *Elevator) Load() int { return len(e.passengers) }
func (e *Elevator) Full() bool { return len(e.passengers) >= e.capacity }

// Floor returns the floor at or below the elevator.
func (e *Elevator) Floor() int { return building.UnitToFloor(e.position) }

// Passengers returns the onboard passengers in boarding order.
func (e *Elevator) Passengers() []*Passenger {
	out := make([]*Passenger, len(e.passengers))
	copy(out, e.passengers)
	return out
}

// Advance runs one tick of the state machine and returns the new position
// together with the passengers that got off.
func (e *Elevator) Advance() (int, []*Passenger) {
	var alighted []*Passenger
	if e.Arrived() {
		alighted = e.Disembark()
		e.Redirect()
	}
	return e.Move(), alighted
}

// Arrived reports whether the elevator carries someone and sits on a floor.
func (e *Elevator) Arrived() bool {
	return len(e.passengers) > 0 && building.AtFloor(e.position)
}

// Disembark removes every passenger whose destination is the current
// position and stops the elevator.
func (e *Elevator) Disembark() []*Passenger {
	var alighted []*Passenger
	remaining := make([]*Passenger, 0, e.capacity)
	for _, p := range e.passengers {
		if p.Destination == e.position {
			alighted = append(alighted, p)
			continue
		}
		remaining = append(remaining, p)
	}
	e.passengers = remaining
	e.direction = Stopped
	return alighted
}

// Redirect keeps the current direction while any passenger still wants it.
// Otherwise the first passenger onboard decides, and an empty car stops.
func (e *Elevator) Redirect() {
	for _, p := range e.passengers {
		if p.Direction == e.direction {
			return
		}
	}
	if len(e.passengers) == 0 {
		e.direction = Stopped
		return
	}
	e.direction = e.passengers[0].Direction
}

// Move shifts the elevator one unit in its direction. Reaching either end of
// the building stops it instead.
func (e *Elevator) Move() int {
	switch e.direction {
	case Ascending:
		if e.position >= e.geometry.MaxUnit {
			e.direction = Stopped
		} else {
			e.position++
		}
	case Descending:
		if e.position <= e.geometry.MinUnit {
			e.direction = Stopped
		} else {
			e.position--
		}
	}
	return e.position
}

// AddPassenger boards p if there is room. It returns false when the car is
// full or p already rode another elevator.
func (e *Elevator) AddPassenger(p *Passenger) bool {
	if e.Full() || p.elevator != nil {
		return false
	}
	e.passengers = append(e.passengers, p)
	p.elevator = e
	return true
}

// Summon sends the elevator toward target.
func (e *Elevator) Summon(target int) Direction {
	e.direction = Toward(e.position, target)
	return e.direction
}

// Park stops the elevator where it is.
func (e *Elevator) Park() { e.direction = Stopped }

func (e *Elevator) String() string {
	return fmt.Sprintf("%s@%d(%s,%d/%d)", e.name, e.position, e.direction, len(e.passengers), e.capacity)
}
