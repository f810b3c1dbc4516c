// Package app contains the core application logic. It wires the fleet file,
// the renderer modules and the simulation engine together and owns the run
// lifecycle, decoupled from any specific entrypoint like a CLI.
package app
