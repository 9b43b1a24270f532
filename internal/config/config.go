// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the jobs service.
type Config struct {
	HTTPPort string `env:"JOBS_HTTP_PORT" envDefault:"8083"`
	GRPCPort string `env:"JOBS_GRPC_PORT" envDefault:"9083"`

	DatabaseURL    string  `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns     int32   `env:"DB_MAX_CONNS"     envDefault:"10"`
	DBMinConns     int32   `env:"DB_MIN_CONNS"     envDefault:"0"`
	RedisURL       string  `env:"REDIS_URL,required,notEmpty"`
	LogLevel       string  `env:"LOG_LEVEL"        envDefault:"info"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT"`
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`

	DigestIntervalHours int `env:"DIGEST_INTERVAL_HOURS" envDefault:"24"`
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.DigestIntervalHours < 1 {
		return nil, fmt.Errorf("DIGEST_INTERVAL_HOURS must be a positive integer, got %d", cfg.DigestIntervalHours)
	}
	if cfg.DBMaxConns < 1 || cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("invalid pool bounds: DB_MIN_CONNS=%d DB_MAX_CONNS=%d", cfg.DBMinConns, cfg.DBMaxConns)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}
