// Package hcl is the HCL implementation of config.Loader. It parses fleet
// files, evaluates the expressions they contain against the building's floor
// range, and produces a config.Model.
//
// A fleet file looks like this:
//
//	building {
//	  min_floor = 1
//	  max_floor = 10
//	  capacity  = 20
//	  tick      = "500ms"
//	}
//
//	elevator "Elevator 1" {
//	  floor = min_floor
//	}
//
//	passenger {
//	  from = 7
//	  to   = max_floor
//	}
//
//	renderer "console" {}
package hcl
