package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/pkg/seed"
)

// EnsureIndexes creates the indexes the access queries rely on. The grant
// index is unique so a user holds at most one grant per client.
func (s *AccessStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.grants.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "client_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}); err != nil {
		return fmt.Errorf("ensure grant indexes: %w", err)
	}

	if _, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}

	_, err := s.clients.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}})
	if err != nil {
		return fmt.Errorf("ensure client indexes: %w", err)
	}
	return nil
}

// Seed loads the sample dataset when the users collection is empty. It
// reports whether any documents were written.
func (s *AccessStore) Seed(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, fmt.Errorf("seed: count users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	if _, err := s.users.InsertMany(ctx, userDocs(seed.Users())); err != nil {
		return false, fmt.Errorf("seed: users: %w", err)
	}
	if _, err := s.clients.InsertMany(ctx, clientDocs(seed.Clients())); err != nil {
		return false, fmt.Errorf("seed: clients: %w", err)
	}
	if _, err := s.grants.InsertMany(ctx, grantDocs(seed.Grants())); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, fmt.Errorf("seed: grants: duplicate user/client grant: %w", err)
		}
		return false, fmt.Errorf("seed: grants: %w", err)
	}
	return true, nil
}

func userDocs(users []domain.User) []any {
	out := make([]any, len(users))
	for i, u := range users {
		out[i] = userDoc{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt.Unix()}
	}
	return out
}

func clientDocs(clients []domain.Client) []any {
	out := make([]any, len(clients))
	for i, c := range clients {
		d := clientDoc{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Company:   c.Company,
			Industry:  c.Industry,
			Status:    string(c.Status),
			Value:     c.Value,
			CreatedAt: c.CreatedAt.Unix(),
		}
		if c.LastContact != nil {
			ts := c.LastContact.Unix()
			d.LastContact = &ts
		}
		out[i] = d
	}
	return out
}

func grantDocs(grants []domain.AccessGrant) []any {
	out := make([]any, len(grants))
	for i, g := range grants {
		out[i] = grantDoc{
			UserID:      g.UserID,
			ClientID:    g.ClientID,
			AccessLevel: string(g.AccessLevel),
			AssignedAt:  g.GrantedAt.Unix(),
		}
	}
	return out
}
