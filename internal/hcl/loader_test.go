package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vk/liftsim/internal/config"
)

// writeFiles creates the given files in a temp directory and returns it.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up test file")
	}
	return dir
}

var ignoreRendererBodies = cmpopts.IgnoreFields(config.Renderer{}, "Body", "EvalContext")

func TestLoad_FullFleetFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"fleet.hcl": `
building {
  min_floor = 1
  max_floor = 12
  capacity  = 8
  tick      = "250ms"
}

elevator "Elevator 1" {
  floor = min_floor
}

elevator "Elevator 2" {
  floor = 5
}

elevator "Elevator 3" {
  floor = max_floor
}

passenger {
  from = 7
  to   = max_floor
}

passenger {
  from = max(3, 2)
  to   = min_floor
}

renderer "console" {
  clear_screen = false
}
`})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	expected := &config.Model{
		Building: config.Building{MinFloor: 1, MaxFloor: 12, Capacity: 8, TickPeriod: 250 * time.Millisecond},
		Elevators: []*config.Elevator{
			{Name: "Elevator 1", Floor: 1},
			{Name: "Elevator 2", Floor: 5},
			{Name: "Elevator 3", Floor: 12},
		},
		Passengers: []*config.Passenger{
			{From: 7, To: 12},
			{From: 3, To: 1},
		},
		Renderers: []*config.Renderer{{Type: "console"}},
	}
	if diff := cmp.Diff(expected, model, ignoreRendererBodies); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, model.Renderers[0].Body)
	require.NotNil(t, model.Renderers[0].EvalContext)
}

func TestLoad_DefaultsWithoutBuildingBlock(t *testing.T) {
	dir := writeFiles(t, map[string]string{"fleet.hcl": `
elevator "A" {
  floor = 3
}
`})

	model, err := NewLoader().Load(context.Background(), filepath.Join(dir, "fleet.hcl"))
	require.NoError(t, err)

	if diff := cmp.Diff(config.DefaultBuilding(), model.Building); diff != "" {
		t.Errorf("building mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, model.Elevators, 1)
	require.Empty(t, model.Passengers)
	require.Empty(t, model.Renderers)
}

func TestLoad_MergesDirectoryInFileOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a_building.hcl": `building { max_floor = 20 }`,
		"b_fleet.hcl":    `elevator "low" { floor = 1 }`,
		"c_fleet.hcl": `
elevator "high" { floor = max_floor }
passenger {
  from = 20
  to   = 1
}`,
		"notes.txt": `not a fleet file`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	expected := []*config.Elevator{{Name: "low", Floor: 1}, {Name: "high", Floor: 20}}
	if diff := cmp.Diff(expected, model.Elevators); diff != "" {
		t.Errorf("elevators mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []*config.Passenger{{From: 20, To: 1}}, model.Passengers)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "syntax error",
			content: `elevator "A" {`,
			errMsg:  "failed to parse",
		},
		{
			name:    "missing floor",
			content: `elevator "A" {}`,
			errMsg:  "floor is required",
		},
		{
			name:    "missing passenger destination",
			content: "passenger {\n from = 3\n}",
			errMsg:  "to is required",
		},
		{
			name:    "missing passenger origin",
			content: "passenger {\n to = 3\n}",
			errMsg:  "from is required",
		},
		{
			name:    "unknown block",
			content: `escalator "A" { floor = 1 }`,
			errMsg:  "failed to decode",
		},
		{
			name:    "bad tick",
			content: "building {\n tick = \"soon\"\n}\nelevator \"A\" { floor = 1 }",
			errMsg:  "invalid tick",
		},
		{
			name:    "fractional floor",
			content: `elevator "A" { floor = 2.5 }`,
			errMsg:  "whole number",
		},
		{
			name:    "string floor",
			content: `elevator "A" { floor = "lobby" }`,
			errMsg:  "cannot use string",
		},
		{
			name:    "unknown variable",
			content: "passenger {\n from = top_floor\n to = 1\n}",
			errMsg:  "passenger #1",
		},
		{
			name:    "two building blocks",
			content: "building {}\nbuilding {}",
			errMsg:  "only one building block",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"fleet.hcl": tc.content})

			_, err := NewLoader().Load(context.Background(), dir)

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")
}

func TestLoad_EmptyDirectory(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no .hcl files")
}

func TestLoad_MissingAttributeNamesBlockAndFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"fleet.hcl": `
elevator "A" { floor = 1 }
elevator "B" {}
`})

	_, err := NewLoader().Load(context.Background(), dir)

	require.Error(t, err)
	require.Contains(t, err.Error(), `elevator "B": `)
	require.Contains(t, err.Error(), "fleet.hcl:")
	require.Contains(t, err.Error(), "floor is required")
	require.NotContains(t, err.Error(), "known number")
}
