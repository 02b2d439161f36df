package ports

import (
	"context"

	"github.com/clientlens/clientlens-api/internal/core/domain"
)

// AccessStore is the read-only source of users and their client grants.
type AccessStore interface {
	// ListUsers returns every known user ordered by name.
	ListUsers(ctx context.Context) ([]domain.User, error)
	// FindUser returns domain.ErrUserNotFound when id does not resolve.
	FindUser(ctx context.Context, id int64) (*domain.User, error)
	// ListAccessibleClients returns the clients granted to userID ordered by
	// client name ascending. Each record carries the grant's access level.
	ListAccessibleClients(ctx context.Context, userID int64) ([]domain.Client, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
