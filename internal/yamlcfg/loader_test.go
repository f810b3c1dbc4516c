package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/liftsim/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up test file")
	return path
}

func TestLoad_FullFleetFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "fleet.yaml", `
building:
  max_floor: 12
  capacity: 8
  tick: 250ms
elevators:
  - name: Elevator 1
    floor: 1
  - name: Elevator 2
    floor: 12
passengers:
  - from: 7
    to: 12
renderers:
  - type: console
    options:
      clear_screen: true
  - type: log
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	expected := &config.Model{
		Building: config.Building{MinFloor: 1, MaxFloor: 12, Capacity: 8, TickPeriod: 250 * time.Millisecond},
		Elevators: []*config.Elevator{
			{Name: "Elevator 1", Floor: 1},
			{Name: "Elevator 2", Floor: 12},
		},
		Passengers: []*config.Passenger{{From: 7, To: 12}},
		Renderers:  []*config.Renderer{{Type: "console"}, {Type: "log"}},
	}
	if diff := cmp.Diff(expected, model, cmpopts.IgnoreFields(config.Renderer{}, "Body", "EvalContext")); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}

	var opts struct {
		ClearScreen bool `hcl:"clear_screen,optional"`
	}
	diags := gohcl.DecodeBody(model.Renderers[0].Body, nil, &opts)
	require.False(t, diags.HasErrors(), diags.Error())
	assert.True(t, opts.ClearScreen)

	var empty struct {
		Level string `hcl:"level,optional"`
	}
	diags = gohcl.DecodeBody(model.Renderers[1].Body, nil, &empty)
	require.False(t, diags.HasErrors(), diags.Error())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown field", content: "lifts: []", errMsg: "failed to decode"},
		{name: "elevator without floor", content: "elevators:\n  - name: A", errMsg: "needs a name and a floor"},
		{name: "passenger without to", content: "passengers:\n  - from: 3", errMsg: "needs from and to"},
		{name: "bad tick", content: "building:\n  tick: soon", errMsg: "invalid tick"},
		{name: "renderer without type", content: "renderers:\n  - options: {}", errMsg: "type is required"},
		{name: "string floor", content: "elevators:\n  - name: A\n    floor: lobby", errMsg: "failed to decode"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, "fleet.yml", tc.content)

			_, err := NewLoader().Load(context.Background(), path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoad_OneBuildingAcrossFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("building:\n  max_floor: 5"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("building:\n  max_floor: 6"), 0600))

	_, err := NewLoader().Load(context.Background(), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one building section")
}

func TestLoad_EmptyFileAndMissingPath(t *testing.T) {
	t.Parallel()
	model, err := NewLoader().Load(context.Background(), writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBuilding(), model.Building)

	_, err = NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestIsYAML(t *testing.T) {
	t.Parallel()
	assert.True(t, IsYAML("fleet.yaml"))
	assert.True(t, IsYAML("dir/fleet.yml"))
	assert.False(t, IsYAML("fleet.hcl"))
	assert.False(t, IsYAML("fleet"))
}
