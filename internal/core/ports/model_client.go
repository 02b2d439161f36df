package ports

import "context"

// ModelClient is a single-shot text generation backend.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the backing model for logs and diagnostics.
	Name() string
}
