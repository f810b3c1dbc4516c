package yamlcfg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	hcljson "github.com/hashicorp/hcl/v2/json"
	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Building   *building   `yaml:"building"`
	Elevators  []elevator  `yaml:"elevators"`
	Passengers []passenger `yaml:"passengers"`
	Renderers  []renderer  `yaml:"renderers"`
}

type building struct {
	MinFloor *int    `yaml:"min_floor"`
	MaxFloor *int    `yaml:"max_floor"`
	Capacity *int    `yaml:"capacity"`
	Tick     *string `yaml:"tick"`
}

type elevator struct {
	Name  string `yaml:"name"`
	Floor *int   `yaml:"floor"`
}

type passenger struct {
	From *int `yaml:"from"`
	To   *int `yaml:"to"`
}

type renderer struct {
	Type    string         `yaml:"type"`
	Options map[string]any `yaml:"options"`
}

// Loader reads .yaml and .yml fleet files.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// IsYAML reports whether path names a YAML file.
func IsYAML(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load decodes every YAML file under paths into one Model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findYAMLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .yaml files found in %v", paths)
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{Building: config.DefaultBuilding()}
	seenBuilding := false

	for _, file := range files {
		root, err := decodeFile(file)
		if err != nil {
			return nil, err
		}

		if root.Building != nil {
			if seenBuilding {
				return nil, fmt.Errorf("%s: only one building section is allowed", file)
			}
			seenBuilding = true
			if err := applyBuilding(&model.Building, root.Building); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}

		for i, e := range root.Elevators {
			if e.Name == "" || e.Floor == nil {
				return nil, fmt.Errorf("%s: elevator #%d needs a name and a floor", file, i+1)
			}
			model.Elevators = append(model.Elevators, &config.Elevator{Name: e.Name, Floor: *e.Floor})
		}

		for i, p := range root.Passengers {
			if p.From == nil || p.To == nil {
				return nil, fmt.Errorf("%s: passenger #%d needs from and to", file, i+1)
			}
			model.Passengers = append(model.Passengers, &config.Passenger{From: *p.From, To: *p.To})
		}

		for i, r := range root.Renderers {
			spec, err := translateRenderer(file, r)
			if err != nil {
				return nil, fmt.Errorf("%s: renderer #%d: %w", file, i+1, err)
			}
			model.Renderers = append(model.Renderers, spec)
		}
	}

	logger.Debug("YAML loading complete.",
		"elevators", len(model.Elevators), "passengers", len(model.Passengers), "renderers", len(model.Renderers))
	return model, nil
}

func decodeFile(path string) (*fileRoot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var root fileRoot
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	return &root, nil
}

func applyBuilding(out *config.Building, b *building) error {
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
			return fmt.Errorf("building: invalid tick %q: %w", *b.Tick, err)
		}
		out.TickPeriod = d
	}
	return nil
}

// translateRenderer re-encodes the options as JSON and parses them with the
// HCL JSON syntax, giving modules an hcl.Body to decode.
func translateRenderer(file string, r renderer) (*config.Renderer, error) {
	if r.Type == "" {
		return nil, errors.New("type is required")
	}
	options := r.Options
	if options == nil {
		options = map[string]any{}
	}
	src, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	parsed, diags := hcljson.Parse(src, file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid options: %w", diags)
	}
	return &config.Renderer{Type: r.Type, Body: parsed.Body}, nil
}

func findYAMLFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("fleet path %s does not exist", path)
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if IsYAML(path) {
				files = append(files, path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsYAML(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
