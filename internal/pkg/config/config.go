package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/clientlens/clientlens-api/internal/core/assistant"
)

const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

type Config struct {
	Port      string `env:"PORT,       default=3001"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	ClientURL string `env:"CLIENT_URL, default=http://localhost:3000"`

	AI        AIConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type AIConfig struct {
	APIKey         string `env:"GEMINI_API_KEY"`
	Model          string `env:"GEMINI_MODEL,    default=gemini-1.5-flash"`
	TimeoutMs      int    `env:"AI_TIMEOUT_MS,   default=3000"`
	OptimizeTokens bool   `env:"OPTIMIZE_TOKENS, default=false"`
	UseFreeTier    bool   `env:"USE_FREE_TIER,   default=false"`
}

type StoreConfig struct {
	Backend    string `env:"STORE_BACKEND, default=sqlite"`
	SQLitePath string `env:"SQLITE_PATH,   default=clientlens.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clientlens"`
}

// RedisConfig configures the scope cache. An empty Addr disables it.
type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB,        default=0"`
	ScopeTTL    time.Duration `env:"SCOPE_CACHE_TTL, default=5m"`
	WarmWorkers int           `env:"WARM_WORKERS,    default=4"`
}

// RateLimitConfig sizes the per-user and per-client-IP query buckets. A
// query needs a token from both.
type RateLimitConfig struct {
	RPS     float64 `env:"RATE_LIMIT_RPS,      default=5"`
	Burst   int     `env:"RATE_LIMIT_BURST,    default=10"`
	IPRPS   float64 `env:"RATE_LIMIT_IP_RPS,   default=20"`
	IPBurst int     `env:"RATE_LIMIT_IP_BURST, default=40"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// MustLoad is Load for process entry points; it panics on invalid input.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendMongo:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendSQLite, BackendMongo, c.Store.Backend)
	}
	if c.AI.TimeoutMs <= 0 {
		return fmt.Errorf("AI_TIMEOUT_MS must be positive, got %d", c.AI.TimeoutMs)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.RateLimit.IPRPS <= 0 || c.RateLimit.IPBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_IP_RPS and RATE_LIMIT_IP_BURST must be positive")
	}
	return nil
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool { return c.Env == "production" }

// CacheEnabled reports whether the Redis scope cache should be used.
func (c *Config) CacheEnabled() bool { return c.Redis.Addr != "" }

// Model builds the immutable model settings handed to the assistant.
func (c *Config) Model() assistant.Settings {
	return assistant.Settings{
		APIKey:            c.AI.APIKey,
		Model:             c.AI.Model,
		Timeout:           time.Duration(c.AI.TimeoutMs) * time.Millisecond,
		TokenOptimization: c.AI.OptimizeTokens,
		ForceFreeTier:     c.AI.UseFreeTier,
	}
}
