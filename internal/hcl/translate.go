// This file turns decoded HCL blocks into the config model, evaluating
// expressions against the building's floor range.

package hcl

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/liftsim/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

func translateBuilding(b *Building) (config.Building, error) {
	out := config.DefaultBuilding()
	if b == nil {
		return out, nil
	}
	if b.MinFloor != nil {
		out.MinFloor = *b.MinFloor
	}
	if b.MaxFloor != nil {
		out.MaxFloor = *b.MaxFloor
	}
	if b.Capacity != nil {
		out.Capacity = *b.Capacity
	}
	if b.Tick != nil {
		d, err := time.ParseDuration(*b.Tick)
		if err != nil {
			return config.Building{}, fmt.Errorf("building: invalid tick %q: %w", *b.Tick, err)
		}
		out.TickPeriod = d
	}
	return out, nil
}

// newEvalContext exposes the floor range and a few numeric helpers to
// elevator and passenger expressions.
func newEvalContext(b config.Building) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"min_floor": cty.NumberIntVal(int64(b.MinFloor)),
			"max_floor": cty.NumberIntVal(int64(b.MaxFloor)),
		},
		Functions: map[string]function.Function{
			"min": stdlib.MinFunc,
			"max": stdlib.MaxFunc,
		},
	}
}

func translateElevator(e *Elevator, evalCtx *hcl.EvalContext) (*config.Elevator, error) {
	floor, err := evalInt("floor", e.Floor, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("elevator %q: %w", e.Name, err)
	}
	return &config.Elevator{Name: e.Name, Floor: floor}, nil
}

func translatePassenger(p *Passenger, evalCtx *hcl.EvalContext) (*config.Passenger, error) {
	from, err := evalInt("from", p.From, evalCtx)
	if err != nil {
		return nil, err
	}
	to, err := evalInt("to", p.To, evalCtx)
	if err != nil {
		return nil, err
	}
	return &config.Passenger{From: from, To: to}, nil
}

// evalInt evaluates the floor attribute name and converts the result to a
// whole number. gohcl fills an absent attribute with a null expression, so
// null is reported as missing.
func evalInt(name string, expr hcl.Expression, evalCtx *hcl.EvalContext) (int, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, fmt.Errorf("%s: %w", name, diags)
	}
	if val.IsNull() {
		return 0, fmt.Errorf("%s: %s is required", expr.Range(), name)
	}
	if !val.IsWhollyKnown() {
		return 0, fmt.Errorf("%s: %s must be a known number", expr.Range(), name)
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("cannot use %s as %s: %w", val.Type().FriendlyName(), name, err)
	}

	var n int
	if err := gocty.FromCtyValue(num, &n); err != nil {
		return 0, fmt.Errorf("%s must be a whole number: %w", name, err)
	}
	return n, nil
}
