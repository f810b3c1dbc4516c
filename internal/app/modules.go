package app

import (
	"io"

	"github.com/vk/liftsim/internal/registry"
	"github.com/vk/liftsim/modules/console"
	"github.com/vk/liftsim/modules/logsink"
	"github.com/vk/liftsim/modules/socketio"
	"github.com/vk/liftsim/modules/webhook"
)

// coreModules is the definitive list of all renderer modules that are
// compiled into the liftsim binary.
var coreModules = []registry.Module{
	&console.Module{},
	&logsink.Module{},
	&socketio.Module{},
	&webhook.Module{},
}

// DescribeRenderers lists the renderer types compiled into the binary.
func DescribeRenderers(w io.Writer) error {
	reg := registry.New()
	for _, mod := range coreModules {
		mod.Register(reg)
	}
	return reg.Describe(w)
}
