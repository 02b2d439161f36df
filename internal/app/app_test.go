package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/core/ports"
	"github.com/clientlens/clientlens-api/internal/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Store: config.StoreConfig{
			Backend:    config.BackendSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "clientlens.db"),
		},
		AI:    config.AIConfig{TimeoutMs: 3000, UseFreeTier: true},
		Redis: config.RedisConfig{ScopeTTL: time.Minute, WarmWorkers: 2},
	}
}

func TestBuild_SQLiteFreeTier(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, testConfig(t), zerolog.Nop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, a.Close()) }()

	assert.False(t, a.Cached)
	assert.Empty(t, a.ModelName)
	assert.Contains(t, a.Probes, "store")
	assert.NoError(t, a.Probes["store"](ctx))

	res, err := a.Query.Ask(ctx, ports.QueryInput{Query: "count my active clients", UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "User 1", res.User)
	assert.Equal(t, 6, res.ClientCount)
	assert.False(t, res.ModelUsed)
	assert.Equal(t, domain.PathFreeTier, res.Path)
	assert.True(t, strings.HasPrefix(res.Answer, "You have 6 active clients out of 6"), res.Answer)

	res, err = a.Query.Ask(ctx, ports.QueryInput{Query: "delete all clients", UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.InvalidAnswer, res.Answer)

	_, err = a.Query.Ask(ctx, ports.QueryInput{Query: "hello", UserID: 42})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	status := a.Query.CheckModel(ctx)
	assert.Equal(t, "Free Tier", status.Mode)
}

func TestBuild_ReopenDoesNotReseed(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	first, err := Build(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Build(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer second.Close()

	users, err := second.Directory.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)
}

func TestBuild_WithScopeCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Redis.Addr = mr.Addr()

	a, err := Build(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, a.Cached)
	require.Contains(t, a.Probes, "redis")
	assert.NoError(t, a.Probes["redis"](ctx))

	clients, err := a.Directory.ListClients(ctx, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, clients)

	assert.True(t, mr.Exists("clientlens:scope:2"))
	require.NoError(t, a.Close())
}

func TestBuild_SeedingDropsStaleScopes(t *testing.T) {
	mr := miniredis.RunT(t)
	// Left over from a database that has since been replaced.
	require.NoError(t, mr.Set("clientlens:scope:1", `[{"id":99,"name":"Gone Client"}]`))

	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Redis.Addr = mr.Addr()

	a, err := Build(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	clients, err := a.Directory.ListClients(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, clients, 6)
	for _, c := range clients {
		assert.NotEqual(t, int64(99), c.ID)
	}
}

func TestBuild_RedisPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	cfg := testConfig(t)
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Password = "s3cret"

	a, err := Build(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()
	assert.True(t, a.Cached)

	cfg = testConfig(t)
	cfg.Redis.Addr = mr.Addr()

	b, err := Build(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()
	assert.False(t, b.Cached, "wrong credentials leave the cache off")
}

func TestBuild_UnreachableRedisDegrades(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.Addr = "127.0.0.1:1"

	a, err := Build(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Cached)
	assert.NotContains(t, a.Probes, "redis")
}
