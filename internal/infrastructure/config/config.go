package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=5000"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"ACCESS_TOKEN_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=8760h"`

	// TokenDenylist enables server-side revocation on logout. Requires Redis.
	TokenDenylist bool `env:"TOKEN_DENYLIST, default=false"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:5173"`

	RateLimit RateLimitConfig
	Bids      BidsConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS,   default=5"`
	Burst int     `env:"RATE_LIMIT_BURST, default=10"`
}

type BidsConfig struct {
	Workers int `env:"BID_WORKERS, default=8"`
}

type MongoConfig struct {
	URI            string `env:"MONGO_URI,             default=mongodb://localhost:27017"`
	Database       string `env:"MONGO_DB,              default=NewSolosphereDB"`
	JobsCollection string `env:"MONGO_JOBS_COLLECTION, default=solosphereJOBS"`
	BidsCollection string `env:"MONGO_BIDS_COLLECTION, default=solosphereBIDJOBS"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether cookies must be issued cross-site
// (Secure, SameSite=None).
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET must not be blank")
	}
	return &cfg, nil
}
