package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/engine"
	"github.com/vk/liftsim/internal/registry"
)

const (
	rule        = "=============================================================="
	clearScreen = "\033[H\033[2J"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of a `renderer "console"` block.
type Input struct {
	ClearScreen bool `hcl:"clear_screen,optional"`
}

// Renderer prints the state board after every tick.
type Renderer struct {
	out         io.Writer
	clearScreen bool
}

// New creates a console renderer writing to out.
func New(out io.Writer, input *Input) *Renderer {
	return &Renderer{out: out, clearScreen: input.ClearScreen}
}

// Render writes the board for snap in a single write.
func (r *Renderer) Render(_ context.Context, snap engine.Snapshot) error {
	var b strings.Builder
	if r.clearScreen {
		b.WriteString(clearScreen)
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Tick : %d    Delivered : %d\n\n", snap.Tick, snap.Delivered)
	for _, el := range snap.Elevators {
		fmt.Fprintln(&b, el.Name)
		fmt.Fprintf(&b, "Floor : %d\n", el.Floor)
		fmt.Fprintf(&b, "Persons : %d\n", el.PassengerCount)
		fmt.Fprintf(&b, "State : %s\n", el.Direction)
		fmt.Fprintf(&b, "\t%s\n\n", formatPassengers(el.Passengers))
	}
	b.WriteString(rule + "\n")

	b.WriteString("Waiting Persons : \n")
	for _, p := range snap.Waiting {
		fmt.Fprintln(&b, formatPassenger(p))
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func formatPassenger(p engine.PassengerView) string {
	return fmt.Sprintf("Passenger [%d -> %d]", p.Origin, p.Destination)
}

func formatPassengers(ps []engine.PassengerView) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = formatPassenger(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRenderer("console", &registry.RegisteredRenderer{
		Description: "Prints the elevator state board to the output.",
		New: func(_ context.Context, deps *registry.Deps, spec *config.Renderer) (engine.Renderer, error) {
			input := new(Input)
			if err := registry.DecodeBody(spec, input); err != nil {
				return nil, err
			}
			return New(deps.Out, input), nil
		},
	})
}
