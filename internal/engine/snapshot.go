package engine

import (
	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
	"github.com/vk/liftsim/internal/elevator"
)

// Snapshot is the read-only state of the simulation at the end of a tick.
type Snapshot struct {
	Tick      uint64          `json:"tick"`
	Elevators []ElevatorView  `json:"elevators"`
	Waiting   []PassengerView `json:"waiting"`
	Alighted  []Alighting     `json:"alighted,omitempty"`
	Delivered uint64          `json:"delivered"`
}

// ElevatorView describes one car.
type ElevatorView struct {
	Name           string             `json:"name"`
	Position       int                `json:"position"`
	Floor          int                `json:"floor"`
	Direction      elevator.Direction `json:"direction"`
	PassengerCount int                `json:"passenger_count"`
	Passengers     []PassengerView    `json:"passengers"`
}

// PassengerView describes one trip. Elevator is empty while waiting.
type PassengerView struct {
	ID          uuid.UUID          `json:"id"`
	Origin      int                `json:"origin"`
	Destination int                `json:"destination"`
	Direction   elevator.Direction `json:"direction"`
	Requested   uint64             `json:"requested"`
	Elevator    string             `json:"elevator,omitempty"`
}

// Alighting records a passenger that got off during the tick.
type Alighting struct {
	Passenger PassengerView `json:"passenger"`
	Elevator  string        `json:"elevator"`
}

// Clone returns a deep copy that shares no slices with s.
func (s Snapshot) Clone() (Snapshot, error) {
	var out Snapshot
	if err := deepcopy.Copy(&out, &s); err != nil {
		return Snapshot{}, err
	}
	return out, nil
}

func (e *Engine) snapshot(alighted []Alighting) Snapshot {
	snap := Snapshot{
		Tick:      e.tick,
		Elevators: make([]ElevatorView, 0, len(e.elevators)),
		Waiting:   make([]PassengerView, 0, len(e.waiting)),
		Alighted:  alighted,
		Delivered: e.delivered,
	}
	for _, el := range e.elevators {
		view := ElevatorView{
			Name:           el.Name(),
			Position:       el.Position(),
			Floor:          el.Floor(),
			Direction:      el.Direction(),
			PassengerCount: el.Load(),
			Passengers:     make([]PassengerView, 0, el.Load()),
		}
		for _, p := range el.Passengers() {
			view.Passengers = append(view.Passengers, viewPassenger(p))
		}
		snap.Elevators = append(snap.Elevators, view)
	}
	for _, p := range e.waiting {
		snap.Waiting = append(snap.Waiting, viewPassenger(p))
	}
	return snap
}

func viewPassenger(p *elevator.Passenger) PassengerView {
	v := PassengerView{
		ID:          p.ID,
		Origin:      p.Origin,
		Destination: p.Destination,
		Direction:   p.Direction,
		Requested:   p.Requested,
	}
	if el := p.Elevator(); el != nil {
		v.Elevator = el.Name()
	}
	return v
}
