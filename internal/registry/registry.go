package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/ctxlog"
	"github.com/vk/liftsim/internal/engine"
)

// Module is the interface that all renderer modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Deps are the app services a renderer may use.
type Deps struct {
	Out       io.Writer
	Submitter engine.Submitter
}

// RendererFactory builds a renderer from its fleet-file block.
type RendererFactory func(ctx context.Context, deps *Deps, spec *config.Renderer) (engine.Renderer, error)

// RegisteredRenderer is a factory plus a short description for Describe.
type RegisteredRenderer struct {
	Description string
	New         RendererFactory
}

// Registry holds the renderer factories of a single application instance.
type Registry struct {
	RendererRegistry map[string]*RegisteredRenderer
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{RendererRegistry: make(map[string]*RegisteredRenderer)}
}

// RegisterRenderer adds a factory. Registering the same type twice is a
// programming error and panics.
func (r *Registry) RegisterRenderer(rendererType string, rr *RegisteredRenderer) {
	if _, exists := r.RendererRegistry[rendererType]; exists {
		panic(fmt.Sprintf("registry: renderer %q registered twice", rendererType))
	}
	r.RendererRegistry[rendererType] = rr
}

// Types returns the registered renderer types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.RendererRegistry))
	for t := range r.RendererRegistry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Describe writes one line per registered renderer type, in sorted order.
func (r *Registry) Describe(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range r.Types() {
		fmt.Fprintf(tw, "  %s\t%s\n", t, r.RendererRegistry[t].Description)
	}
	return tw.Flush()
}

// Build creates a renderer for every spec, in order. All types are checked
// before any renderer is created. Each factory gets a context whose logger
// carries the renderer type. If a factory fails, the renderers already
// created are closed.
func (r *Registry) Build(ctx context.Context, deps *Deps, specs []*config.Renderer) ([]engine.Renderer, error) {
	for _, spec := range specs {
		if _, ok := r.RendererRegistry[spec.Type]; !ok {
			return nil, fmt.Errorf("unknown renderer %q (available: %v)", spec.Type, r.Types())
		}
	}

	renderers := make([]engine.Renderer, 0, len(specs))
	for _, spec := range specs {
		rctx := ctxlog.With(ctx, "renderer", spec.Type)
		rr, err := r.RendererRegistry[spec.Type].New(rctx, deps, spec)
		if err != nil {
			closeAll(renderers)
			return nil, fmt.Errorf("renderer %q: %w", spec.Type, err)
		}
		renderers = append(renderers, rr)
	}
	return renderers, nil
}

func closeAll(renderers []engine.Renderer) {
	for _, rr := range renderers {
		if c, ok := rr.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

// DecodeBody decodes a renderer block into target. A spec without a body,
// such as the default console renderer, leaves target untouched.
func DecodeBody(spec *config.Renderer, target any) error {
	if spec.Body == nil {
		return nil
	}
	if diags := gohcl.DecodeBody(spec.Body, spec.EvalContext, target); diags.HasErrors() {
		return diags
	}
	return nil
}
