package config

import "context"

// Loader is the interface for a format-specific setup table loader.
type Loader interface {
	// Load reads every setup definition found under the given paths and
	// merges them into one table.
	Load(ctx context.Context, paths ...string) (*Table, error)
}
