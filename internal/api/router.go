package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/clientlens/clientlens-api/docs"
	"github.com/clientlens/clientlens-api/internal/api/handler"
	"github.com/clientlens/clientlens-api/internal/api/middleware"
	"github.com/clientlens/clientlens-api/internal/core/ports"
)

const bodyLimit = "64K"

// Deps are the services and probes the HTTP layer is built from.
type Deps struct {
	Query     ports.QueryService
	Directory ports.DirectoryService
	// Probes are checked by the readiness endpoint, keyed by dependency name.
	Probes map[string]ports.Probe
	// Limiters buckets queries per user and IPLimiters per client address.
	Limiters   *middleware.Limiters
	IPLimiters *middleware.Limiters
	ClientURL  string
	Log        zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{d.ClientURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
	}))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	var (
		reg      prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		reg, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "clientlens",
		Registerer: reg,
	}))

	// --- Handlers ---
	queryHandler := handler.NewQueryHandler(d.Query)
	directoryHandler := handler.NewDirectoryHandler(d.Directory)
	healthHandler := handler.NewHealthHandler(d.Probes)

	limiters := d.Limiters
	if limiters == nil {
		limiters = middleware.NewLimiters(5, 10)
	}
	ipLimiters := d.IPLimiters
	if ipLimiters == nil {
		ipLimiters = middleware.NewLimiters(20, 40)
	}

	// --- API routes ---
	g := e.Group("/api")
	g.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	g.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	g.GET("/test-model", queryHandler.TestModel)    // model connectivity
	g.GET("/test-gemini", queryHandler.TestModel)   // legacy alias
	g.GET("/users", directoryHandler.ListUsers)
	g.GET("/clients/:userId", directoryHandler.ListClients)
	g.POST("/query", queryHandler.Ask, middleware.RateLimit(
		middleware.Rule{Limiters: limiters, Key: middleware.UserKey},
		middleware.Rule{Limiters: ipLimiters, Key: middleware.IPKey},
	))

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
