package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Redis    RedisConfig

	// RecomputeProspectTimestamp controls whether deleting an interaction
	// resets the parent prospect's date_update from the remaining history.
	RecomputeProspectTimestamp bool `env:"RECOMPUTE_PROSPECT_TIMESTAMP, default=false"`
}

type DatabaseConfig struct {
	Host        string        `env:"DB_HOST,          default=localhost"`
	Port        int           `env:"DB_PORT,          default=3306"`
	User        string        `env:"DB_USER"`
	Password    string        `env:"DB_PASSWORD"`
	Name        string        `env:"DB_NAME,          default=Prospectius"`
	MaxRetries  int           `env:"DB_MAX_RETRIES,   default=3"`
	MaxPoolSize int           `env:"DB_MAX_POOL_SIZE, default=10"`
	Backoff     time.Duration `env:"DB_RETRY_BACKOFF, default=5s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
	// Enabled gates the login throttle; without Redis the service falls
	// back to a no-op throttle.
	Enabled bool `env:"REDIS_ENABLED, default=true"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
