// Command server runs the ClientLens HTTP API.
//
// @title        ClientLens API
// @version      1.0
// @description  Answers natural-language questions about a user's client book, with safety filtering and contact redaction.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clientlens/clientlens-api/internal/api"
	"github.com/clientlens/clientlens-api/internal/api/middleware"
	"github.com/clientlens/clientlens-api/internal/app"
	httpserver "github.com/clientlens/clientlens-api/internal/infrastructure/http"
	"github.com/clientlens/clientlens-api/internal/infrastructure/tracing"
	"github.com/clientlens/clientlens-api/internal/pkg/config"
	"github.com/clientlens/clientlens-api/pkg/logger"
)

const serviceName = "clientlens-api"

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	shutdownTracing, err := tracing.Init(ctx, log, cfg.OTLPEndpoint, serviceName, cfg.Env)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("closing resources")
		}
	}()

	e := api.NewRouter(api.Deps{
		Query:      a.Query,
		Directory:  a.Directory,
		Probes:     a.Probes,
		Limiters:   middleware.NewLimiters(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		IPLimiters: middleware.NewLimiters(cfg.RateLimit.IPRPS, cfg.RateLimit.IPBurst),
		ClientURL:  cfg.ClientURL,
		Log:        log,
	})

	mode := "free tier"
	if a.ModelName != "" {
		mode = a.ModelName
	}
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("store", cfg.Store.Backend).
		Bool("scope_cache", a.Cached).
		Str("ai_mode", mode).
		Dur("ai_timeout", a.Settings.Timeout).
		Bool("token_optimization", a.Settings.TokenOptimization).
		Msg("clientlens api starting")

	return httpserver.NewServer(e, cfg.Port, log).Run(ctx)
}
