// Package app wires configuration into the store, the answer pipeline and the
// services shared by the HTTP server and the command-line client.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clientlens/clientlens-api/internal/core/answer"
	"github.com/clientlens/clientlens-api/internal/core/assistant"
	"github.com/clientlens/clientlens-api/internal/core/ports"
	"github.com/clientlens/clientlens-api/internal/core/safety"
	"github.com/clientlens/clientlens-api/internal/core/service"
	mongostore "github.com/clientlens/clientlens-api/internal/infrastructure/db/mongo"
	redisstore "github.com/clientlens/clientlens-api/internal/infrastructure/db/redis"
	"github.com/clientlens/clientlens-api/internal/infrastructure/db/sqlite"
	"github.com/clientlens/clientlens-api/internal/infrastructure/llm"
	"github.com/clientlens/clientlens-api/internal/infrastructure/queue"
	"github.com/clientlens/clientlens-api/internal/pkg/config"
	"github.com/clientlens/clientlens-api/pkg/logger"
)

const closeTimeout = 5 * time.Second

// App holds the services built from one Config. Close releases every
// connection it opened, in reverse order.
type App struct {
	Query     ports.QueryService
	Directory ports.DirectoryService
	Probes    map[string]ports.Probe
	Settings  assistant.Settings
	ModelName string
	Cached    bool

	closers []func(context.Context) error
}

// Build opens the configured store, seeds it on first run and assembles the
// answer pipeline. A Redis or model failure degrades the app; a store
// failure is fatal.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Probes: make(map[string]ports.Probe)}

	store, seeded, err := a.openStore(ctx, cfg, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Probes["store"] = store.Ping

	if cfg.CacheEnabled() {
		if cached, ok := a.openCache(ctx, cfg, store, seeded, log); ok {
			store = cached
			a.Cached = true
		}
	}

	settings := cfg.Model()
	a.Settings = settings

	var client ports.ModelClient
	if !settings.FreeTier() {
		gemini, err := llm.NewGemini(ctx, llm.Config{APIKey: settings.APIKey, Model: settings.Model})
		if err != nil {
			log.Warn().Err(err).Msg("model client unavailable, using heuristic answers")
		} else {
			client = gemini
			a.ModelName = gemini.Name()
		}
	}

	filter := safety.NewFilter(logger.Component(log, "safety"))
	engine := answer.NewEngine(filter, logger.Component(log, "answer"))
	adapter := assistant.NewAdapter(client, settings, logger.Component(log, "model"))
	orchestrator := assistant.NewOrchestrator(filter, engine, adapter, logger.Component(log, "orchestrator"))

	a.Query = service.NewQueryService(store, orchestrator, adapter, logger.Component(log, "query"))
	a.Directory = service.NewDirectoryService(store)
	return a, nil
}

// openStore opens the configured backend and seeds it when empty. The
// bool reports whether this call wrote the seed data.
func (a *App) openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.AccessStore, bool, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, false, err
		}
		a.closers = append(a.closers, client.Disconnect)

		ms := mongostore.NewAccessStore(db)
		if err := ms.EnsureIndexes(ctx); err != nil {
			return nil, false, err
		}
		seeded, err := ms.Seed(ctx)
		if err != nil {
			return nil, false, err
		}
		log.Info().Str("backend", cfg.Store.Backend).Str("database", cfg.Mongo.Database).Bool("seeded", seeded).Msg("access store ready")
		return ms, seeded, nil

	default:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Store.SQLitePath})
		if err != nil {
			return nil, false, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })

		seeded, err := sqlite.Seed(ctx, db)
		if err != nil {
			return nil, false, err
		}
		log.Info().Str("backend", cfg.Store.Backend).Str("path", cfg.Store.SQLitePath).Bool("seeded", seeded).Msg("access store ready")
		return sqlite.NewAccessStore(db), seeded, nil
	}
}

// openCache wraps store with the Redis scope cache and warms every user's
// scope in the background. A freshly seeded store invalidates the scopes
// Redis still holds from a previous database. It reports false when Redis
// is unreachable.
func (a *App) openCache(ctx context.Context, cfg *config.Config, store ports.AccessStore, seeded bool, log zerolog.Logger) (ports.AccessStore, bool) {
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("scope cache disabled")
		return nil, false
	}
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	a.Probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

	cache := redisstore.NewScopeCache(store, rdb, cfg.Redis.ScopeTTL, logger.Component(log, "scope_cache"))

	users, err := store.ListUsers(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("scope warm-up skipped")
		return cache, true
	}
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
		if seeded {
			if err := cache.Invalidate(ctx, u.ID); err != nil {
				log.Warn().Err(err).Int64("user_id", u.ID).Msg("stale scope not dropped")
			}
		}
	}

	warmCtx, cancel := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Redis.WarmWorkers, cache, logger.Component(log, "warmup"))
	dispatcher.Start(warmCtx)
	dispatcher.EnqueueBatch(ids)
	a.closers = append(a.closers, func(context.Context) error {
		cancel()
		dispatcher.Close()
		return nil
	})

	log.Info().Str("addr", cfg.Redis.Addr).Int("users", len(ids)).Dur("ttl", cfg.Redis.ScopeTTL).Msg("scope cache enabled")
	return cache, true
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("app close: %w", err)
	}
	return nil
}
