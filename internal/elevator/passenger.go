package elevator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/liftsim/internal/building"
)

// ErrInvalidRequest is returned for a trip that cannot be served, such as one
// that starts and ends on the same floor.
var ErrInvalidRequest = errors.New("invalid request")

// Passenger is a single trip request. Origin and Destination are in units.
type Passenger struct {
	ID          uuid.UUID
	Origin      int
	Destination int
	Direction   Direction

	// Requested is the tick on which the passenger entered the waiting set.
	Requested uint64

	elevator *Elevator
}

// NewPassenger creates a trip between two floor indices.
func NewPassenger(originFloor, destinationFloor int) (*Passenger, error) {
	if originFloor == destinationFloor {
		return nil, fmt.Errorf("%w: origin and destination are both floor %d", ErrInvalidRequest, originFloor)
	}

	p := &Passenger{
		ID:          uuid.New(),
		Origin:      building.FloorToUnit(originFloor),
		Destination: building.FloorToUnit(destinationFloor),
	}
	p.Direction = Toward(p.Origin, p.Destination)
	return p, nil
}

// Elevator returns the elevator the passenger boarded, or nil while waiting.
func (p *Passenger) Elevator() *Elevator { return p.elevator }

// Assigned reports whether the passenger has boarded an elevator.
func (p *Passenger) Assigned() bool { return p.elevator != nil }

func (p *Passenger) String() string {
	return fmt.Sprintf("Passenger [%d -> %d]", p.Origin, p.Destination)
}
