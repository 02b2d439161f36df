package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clientlens/clientlens-api/internal/core/domain"
)

const (
	collectionUsers   = "users"
	collectionClients = "clients"
	collectionGrants  = "user_clients"
)

// AccessStore implements ports.AccessStore. Users and clients keep their
// numeric ids as _id; grants reference them by user_id and client_id.
type AccessStore struct {
	db      *mongo.Database
	users   *mongo.Collection
	clients *mongo.Collection
	grants  *mongo.Collection
}

func NewAccessStore(db *mongo.Database) *AccessStore {
	return &AccessStore{
		db:      db,
		users:   db.Collection(collectionUsers),
		clients: db.Collection(collectionClients),
		grants:  db.Collection(collectionGrants),
	}
}

type userDoc struct {
	ID        int64  `bson:"_id"`
	Name      string `bson:"name"`
	Email     string `bson:"email"`
	Role      string `bson:"role,omitempty"`
	CreatedAt int64  `bson:"created_at"`
}

type clientDoc struct {
	ID          int64  `bson:"_id"`
	Name        string `bson:"name"`
	Email       string `bson:"email,omitempty"`
	Phone       string `bson:"phone,omitempty"`
	Company     string `bson:"company,omitempty"`
	Industry    string `bson:"industry,omitempty"`
	Status      string `bson:"status"`
	Value       *int64 `bson:"value,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	LastContact *int64 `bson:"last_contact,omitempty"`
}

type grantDoc struct {
	UserID      int64  `bson:"user_id"`
	ClientID    int64  `bson:"client_id"`
	AccessLevel string `bson:"access_level"`
	AssignedAt  int64  `bson:"assigned_at"`
}

// scopedDoc is one row of the scope aggregation: a grant joined with its client.
type scopedDoc struct {
	AccessLevel string    `bson:"access_level"`
	AssignedAt  int64     `bson:"assigned_at"`
	Client      clientDoc `bson:"client"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Role:      d.Role,
		CreatedAt: unixToTime(d.CreatedAt),
	}
}

func (d scopedDoc) toDomain() domain.Client {
	c := domain.Client{
		ID:          d.Client.ID,
		Name:        d.Client.Name,
		Email:       d.Client.Email,
		Phone:       d.Client.Phone,
		Company:     d.Client.Company,
		Industry:    d.Client.Industry,
		Status:      domain.ClientStatus(d.Client.Status),
		Value:       d.Client.Value,
		CreatedAt:   unixToTime(d.Client.CreatedAt),
		AccessLevel: domain.AccessLevel(d.AccessLevel),
		AssignedAt:  unixToTime(d.AssignedAt),
	}
	if d.Client.LastContact != nil {
		t := unixToTime(*d.Client.LastContact)
		c.LastContact = &t
	}
	return c
}

func (s *AccessStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, len(docs))
	for i, d := range docs {
		users[i] = d.toDomain()
	}
	return users, nil
}

func (s *AccessStore) FindUser(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := d.toDomain()
	return &u, nil
}

// scopePipeline joins a user's grants with their clients, ordered by client name.
func scopePipeline(userID int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionClients,
			"localField":   "client_id",
			"foreignField": "_id",
			"as":           "client",
		}}},
		{{Key: "$unwind", Value: "$client"}},
		{{Key: "$sort", Value: bson.D{{Key: "client.name", Value: 1}}}},
	}
}

func (s *AccessStore) ListAccessibleClients(ctx context.Context, userID int64) ([]domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.grants.Aggregate(ctx, scopePipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	var docs []scopedDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	clients := make([]domain.Client, len(docs))
	for i, d := range docs {
		clients[i] = d.toDomain()
	}
	return clients, nil
}

func (s *AccessStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}
