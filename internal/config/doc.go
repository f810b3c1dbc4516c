// Package config defines the format-agnostic description of a simulation:
// the building, the fleet, the passengers to seed and the renderers to
// attach. A Loader turns configuration files into a Model; the app turns the
// Model into a running engine.
//
// Loaders for HCL and YAML fleet files live in the hcl and yamlcfg packages.
package config
