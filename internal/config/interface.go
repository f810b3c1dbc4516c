package config

import "context"

// Loader reads simulation configuration from files or directories.
type Loader interface {
	// Load parses every configuration file found under paths and merges them
	// into one Model, in discovery order.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
