package socketio

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/elevator"
	"github.com/vk/liftsim/internal/engine"
	"github.com/vk/liftsim/internal/registry"
)

func TestParseTrip(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		data     []any
		wantFrom int
		wantTo   int
		errMsg   string
	}{
		{name: "json numbers", data: []any{map[string]any{"from": 3.0, "to": 9.0}}, wantFrom: 3, wantTo: 9},
		{name: "ints", data: []any{map[string]any{"from": 10, "to": int64(1)}}, wantFrom: 10, wantTo: 1},
		{name: "json.Number", data: []any{map[string]any{"from": json.Number("2"), "to": json.Number("5")}}, wantFrom: 2, wantTo: 5},
		{name: "empty", data: nil, errMsg: "empty payload"},
		{name: "not an object", data: []any{"3->9"}, errMsg: "must be an object"},
		{name: "missing to", data: []any{map[string]any{"from": 3.0}}, errMsg: `missing "to"`},
		{name: "fractional", data: []any{map[string]any{"from": 3.5, "to": 1.0}}, errMsg: "whole number"},
		{name: "string floor", data: []any{map[string]any{"from": "3", "to": 1.0}}, errMsg: "must be a number"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			from, to, err := parseTrip(tc.data)
			if tc.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantFrom, from)
			assert.Equal(t, tc.wantTo, to)
		})
	}
}

func TestToPayload(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	snap := engine.Snapshot{
		Tick: 4,
		Elevators: []engine.ElevatorView{
			{Name: "A", Position: 35, Floor: 3, Direction: elevator.Descending, PassengerCount: 0, Passengers: []engine.PassengerView{}},
		},
		Waiting: []engine.PassengerView{{ID: id, Origin: 2, Destination: 8, Direction: elevator.Ascending}},
	}

	payload, err := toPayload(snap)

	require.NoError(t, err)
	assert.Equal(t, float64(4), payload["tick"])
	elevators := payload["elevators"].([]any)
	require.Len(t, elevators, 1)
	assert.Equal(t, "DESCENDING", elevators[0].(map[string]any)["direction"])
	waiting := payload["waiting"].([]any)
	assert.Equal(t, id.String(), waiting[0].(map[string]any)["id"])
	assert.NotContains(t, payload, "alighted")
}

func TestRegister_RequiresURL(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	(&Module{}).Register(reg)

	_, err := reg.Build(context.Background(), &registry.Deps{}, []*config.Renderer{{Type: "socketio"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "url is required")
}

func TestConnect_InvalidTimeout(t *testing.T) {
	t.Parallel()
	_, err := Connect(context.Background(), &Input{URL: "http://localhost:1", ConnectTimeout: "soon"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid connect_timeout")
}
