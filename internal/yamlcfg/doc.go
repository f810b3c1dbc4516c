// Package yamlcfg is the YAML implementation of config.Loader. Values are
// plain numbers; there are no expressions. Renderer options are handed to
// the renderer modules as an HCL JSON body so they decode them exactly like
// an HCL renderer block.
//
//	building:
//	  max_floor: 12
//	  tick: 250ms
//	elevators:
//	  - name: Elevator 1
//	    floor: 1
//	passengers:
//	  - from: 7
//	    to: 12
//	renderers:
//	  - type: console
//	    options:
//	      clear_screen: true
package yamlcfg
