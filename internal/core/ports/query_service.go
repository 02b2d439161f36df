package ports

import (
	"context"

	"github.com/clientlens/clientlens-api/internal/core/domain"
)

// QueryInput is the DTO passed from the transport layer to QueryService.
// Both fields are validated by the caller before the service is invoked.
type QueryInput struct {
	Query  string
	UserID int64
}

// ModelStatus is the outcome of a model connectivity probe.
type ModelStatus struct {
	Success  bool
	Mode     string
	Message  string
	Response string
	Error    string
}

// QueryService answers natural-language questions over a user's client scope.
type QueryService interface {
	// Ask resolves the user and scope, then runs the answer pipeline.
	// It only fails when the user cannot be resolved or the store is down.
	Ask(ctx context.Context, in QueryInput) (*domain.QueryResult, error)
	// CheckModel probes the configured model with a minimal prompt.
	CheckModel(ctx context.Context) ModelStatus
}

// DirectoryService exposes the plain read paths over the access store.
type DirectoryService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListClients(ctx context.Context, userID int64) ([]domain.Client, error)
}
