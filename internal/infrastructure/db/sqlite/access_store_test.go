package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/pkg/seed"
)

func openSeeded(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, Config{Path: filepath.Join(t.TempDir(), "clientlens.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrote, err := Seed(ctx, db)
	require.NoError(t, err)
	require.True(t, wrote)
	return db
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := openSeeded(t)

	wrote, err := Seed(context.Background(), db)
	require.NoError(t, err)
	assert.False(t, wrote)

	var users, clients, grants int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&clients))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM user_clients`).Scan(&grants))
	assert.Equal(t, 5, users)
	assert.Equal(t, 20, clients)
	assert.Equal(t, len(seed.Grants()), grants)
}

func TestGrantsAreUniquePerUserClient(t *testing.T) {
	db := openSeeded(t)
	_, err := db.Exec(`INSERT INTO user_clients (user_id, client_id, access_level, assigned_at) VALUES (1, 1, 'read', '2025-07-28 10:00:00')`)
	assert.Error(t, err)
}

func TestListUsers_OrderedByName(t *testing.T) {
	store := NewAccessStore(openSeeded(t))

	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 5)
	assert.Equal(t, "User 1", users[0].Name)
	assert.Equal(t, "Manager", users[0].Role)
	assert.Equal(t, time.Date(2025, 7, 28, 10, 0, 0, 0, time.UTC), users[0].CreatedAt)
}

func TestFindUser(t *testing.T) {
	store := NewAccessStore(openSeeded(t))

	u, err := store.FindUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "user3@company.com", u.Email)

	_, err = store.FindUser(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListAccessibleClients_MatchesSeedScope(t *testing.T) {
	store := NewAccessStore(openSeeded(t))

	for _, u := range seed.Users() {
		got, err := store.ListAccessibleClients(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, seed.Scope(u.ID), got, "user %d", u.ID)
	}
}

func TestListAccessibleClients_CarriesGrantAndNullableFields(t *testing.T) {
	db := openSeeded(t)
	_, err := db.Exec(`UPDATE clients SET value = NULL, last_contact = NULL WHERE id = 19`)
	require.NoError(t, err)

	clients, err := NewAccessStore(db).ListAccessibleClients(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, clients, 6)

	byName := map[string]domain.Client{}
	for _, c := range clients {
		byName[c.Name] = c
	}
	assert.Equal(t, domain.AccessRead, byName["Client 19"].AccessLevel)
	assert.Nil(t, byName["Client 19"].Value)
	assert.Nil(t, byName["Client 19"].LastContact)
	assert.Equal(t, domain.AccessFull, byName["Client 3"].AccessLevel)
	assert.Equal(t, int64(320000), byName["Client 3"].ValueOrZero())
}

func TestListAccessibleClients_UnknownUserIsEmpty(t *testing.T) {
	clients, err := NewAccessStore(openSeeded(t)).ListAccessibleClients(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestPing(t *testing.T) {
	assert.NoError(t, NewAccessStore(openSeeded(t)).Ping(context.Background()))
}
