package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/core/ports"
	"github.com/clientlens/clientlens-api/internal/pkg/metrics"
)

const (
	defaultScopeTTL = 5 * time.Minute
	scopeKeyPrefix  = "clientlens:scope:"
)

// ScopeCache is an AccessStore that keeps each user's client scope in Redis.
// Key format: clientlens:scope:<user_id>. Users are always read through.
//
// A Redis failure is never fatal: the lookup falls back to the wrapped store.
type ScopeCache struct {
	next   ports.AccessStore
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewScopeCache wraps next. A ttl <= 0 uses defaultScopeTTL.
func NewScopeCache(next ports.AccessStore, client *redis.Client, ttl time.Duration, log zerolog.Logger) *ScopeCache {
	if ttl <= 0 {
		ttl = defaultScopeTTL
	}
	return &ScopeCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *ScopeCache) ListUsers(ctx context.Context) ([]domain.User, error) {
	return c.next.ListUsers(ctx)
}

func (c *ScopeCache) FindUser(ctx context.Context, id int64) (*domain.User, error) {
	return c.next.FindUser(ctx, id)
}

func (c *ScopeCache) ListAccessibleClients(ctx context.Context, userID int64) ([]domain.Client, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	switch {
	case err == nil:
		var clients []domain.Client
		if jsonErr := json.Unmarshal(raw, &clients); jsonErr == nil {
			metrics.ScopeCacheTotal.WithLabelValues("hit").Inc()
			return clients, nil
		}
		c.log.Warn().Int64("user_id", userID).Msg("discarding unreadable scope cache entry")
		metrics.ScopeCacheTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.ScopeCacheTotal.WithLabelValues("miss").Inc()
	default:
		c.log.Warn().Err(err).Int64("user_id", userID).Msg("scope cache read failed, using store")
		metrics.ScopeCacheTotal.WithLabelValues("error").Inc()
	}

	return c.load(ctx, userID)
}

// Warm loads userID's scope from the wrapped store into the cache.
func (c *ScopeCache) Warm(ctx context.Context, userID int64) error {
	_, err := c.load(ctx, userID)
	return err
}

// Invalidate drops the cached scope for userID.
func (c *ScopeCache) Invalidate(ctx context.Context, userID int64) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate scope: %w", err)
	}
	return nil
}

// Ping checks both the wrapped store and Redis.
func (c *ScopeCache) Ping(ctx context.Context) error {
	if err := c.next.Ping(ctx); err != nil {
		return err
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *ScopeCache) load(ctx context.Context, userID int64) ([]domain.Client, error) {
	clients, err := c.next.ListAccessibleClients(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(clients)
	if err != nil {
		return clients, nil
	}
	if err := c.client.Set(ctx, c.key(userID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Int64("user_id", userID).Msg("failed to set scope cache entry")
	}
	return clients, nil
}

func (c *ScopeCache) key(userID int64) string {
	return scopeKeyPrefix + strconv.FormatInt(userID, 10)
}
