// Package dispatch decides which idle elevator answers a waiting passenger.
//
// The policy is deliberately simple. A passenger is "covered" when some car is
// already travelling in the passenger's direction and has yet to pass the
// passenger's floor. Every uncovered passenger summons the closest stopped
// car. The policy never looks at where a covering car is actually headed, so
// a covering car may turn around before it arrives; the passenger is then
// reconsidered on the next tick.
package dispatch

import (
	"github.com/vk/liftsim/internal/elevator"
)

// Car is the view of an elevator the policy needs.
type Car interface {
	Name() string
	Position() int
	Direction() elevator.Direction
	Summon(target int) elevator.Direction
}

// Summons records one elevator sent toward a passenger.
type Summons struct {
	Passenger *elevator.Passenger
	Car       Car
	Direction elevator.Direction
}

// Covered reports whether a car already moving in p's direction will pass p's
// floor.
func Covered[C Car](fleet []C, p *elevator.Passenger) bool {
	for _, c := range fleet {
		if c.Direction() != p.Direction {
			continue
		}
		switch p.Direction {
		case elevator.Descending:
			if c.Position() > p.Origin {
				return true
			}
		case elevator.Ascending:
			if c.Position() < p.Origin {
				return true
			}
		}
	}
	return false
}

// Nearest returns the index of the stopped car closest to target. Equal
// distances resolve to the lower fleet index. It returns -1 when every car is
// moving.
func Nearest[C Car](fleet []C, target int) int {
	best, bestDistance := -1, 0
	for i, c := range fleet {
		if c.Direction() != elevator.Stopped {
			continue
		}
		d := distance(c.Position(), target)
		if best == -1 || d < bestDistance {
			best, bestDistance = i, d
		}
	}
	return best
}

// Assign walks the waiting passengers in order and summons a stopped car for
// every one that is not covered. Cars summoned earlier in the pass count as
// moving for the passengers after them.
func Assign[C Car](fleet []C, waiting []*elevator.Passenger) []Summons {
	var summoned []Summons
	for _, p := range waiting {
		if p.Assigned() || Covered(fleet, p) {
			continue
		}
		i := Nearest(fleet, p.Origin)
		if i < 0 {
			continue
		}
		car := fleet[i]
		summoned = append(summoned, Summons{
			Passenger: p,
			Car:       car,
			Direction: car.Summon(p.Origin),
		})
	}
	return summoned
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
