package elevator

import "fmt"

// Direction is the travel state of an elevator, or the travel wish of a
// passenger.
type Direction int

const (
	Stopped Direction = iota
	Ascending
	Descending
)

var directionNames = [...]string{
	Stopped:    "STOPPED",
	Ascending:  "ASCENDING",
	Descending: "DESCENDING",
}

func (d Direction) String() string {
	if d < Stopped || d > Descending {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// MarshalText renders the direction by name so snapshots stay readable in JSON.
func (d Direction) MarshalText() ([]byte, error) {
	if d < Stopped || d > Descending {
		return nil, fmt.Errorf("unknown direction %d", int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (d *Direction) UnmarshalText(text []byte) error {
	for i, name := range directionNames {
		if name == string(text) {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", string(text))
}

// Toward returns the direction that leads from one position to another.
// Equal positions yield Descending.
func Toward(from, to int) Direction {
	if from < to {
		return Ascending
	}
	return Descending
}
