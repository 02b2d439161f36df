package service

import (
	"context"
	"fmt"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/core/ports"
	"github.com/clientlens/clientlens-api/internal/core/privacy"
)

type directoryService struct {
	store ports.AccessStore
}

// NewDirectoryService returns a DirectoryService implementation.
func NewDirectoryService(store ports.AccessStore) ports.DirectoryService {
	return &directoryService{store: store}
}

func (s *directoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListClients returns the user's scope with contact details masked.
// Unknown users yield domain.ErrUserNotFound rather than an empty list.
func (s *directoryService) ListClients(ctx context.Context, userID int64) ([]domain.Client, error) {
	if _, err := s.store.FindUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	clients, err := s.store.ListAccessibleClients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return privacy.RedactAll(clients), nil
}
