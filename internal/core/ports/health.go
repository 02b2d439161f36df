package ports

import "context"

// Probe checks one dependency; a nil error means it is reachable.
type Probe func(ctx context.Context) error
