package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a fleet file may contain.
type fileRoot struct {
	Buildings  []*Building  `hcl:"building,block"`
	Elevators  []*Elevator  `hcl:"elevator,block"`
	Passengers []*Passenger `hcl:"passenger,block"`
	Renderers  []*Renderer  `hcl:"renderer,block"`
}

// Building holds literal settings only, since it defines the variables the
// other blocks are evaluated with.
type Building struct {
	MinFloor *int    `hcl:"min_floor,optional"`
	MaxFloor *int    `hcl:"max_floor,optional"`
	Capacity *int    `hcl:"capacity,optional"`
	Tick     *string `hcl:"tick,optional"`
}

type Elevator struct {
	Name  string         `hcl:"name,label"`
	Floor hcl.Expression `hcl:"floor"`
}

type Passenger struct {
	From hcl.Expression `hcl:"from"`
	To   hcl.Expression `hcl:"to"`
}

type Renderer struct {
	Type string   `hcl:"type,label"`
	Body hcl.Body `hcl:",remain"`
}
