package hcl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses all fleet files under paths. Blocks are merged in file
// discovery order, so elevator order follows the files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	var roots []*fileRoot
	var buildingBlock *Building

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, b := range root.Buildings {
			if buildingBlock != nil {
				return nil, fmt.Errorf("%s: only one building block is allowed", file)
			}
			buildingBlock = b
		}
		roots = append(roots, &root)
	}

	b, err := translateBuilding(buildingBlock)
	if err != nil {
		return nil, err
	}
	evalCtx := newEvalContext(b)
	model := &config.Model{Building: b}

	for _, root := range roots {
		for _, e := range root.Elevators {
			el, err := translateElevator(e, evalCtx)
			if err != nil {
				return nil, err
			}
			model.Elevators = append(model.Elevators, el)
		}
		for i, p := range root.Passengers {
			passenger, err := translatePassenger(p, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("passenger #%d: %w", i+1, err)
			}
			model.Passengers = append(model.Passengers, passenger)
		}
		for _, r := range root.Renderers {
			model.Renderers = append(model.Renderers, &config.Renderer{
				Type:        r.Type,
				Body:        r.Body,
				EvalContext: evalCtx,
			})
		}
	}

	logger.Debug("HCL loading complete.",
		"elevators", len(model.Elevators), "passengers", len(model.Passengers), "renderers", len(model.Renderers))
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("fleet path %s does not exist", path)
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}
