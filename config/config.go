package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"
)

type Config struct {
	Port             int    `env:"PORT,default=3000"`
	EncryptionKey    string `env:"ENCRYPTION_KEY,required"`
	MySQLDSN         string `env:"MYSQL_DSN"`
	SessionSecretKey string `env:"SESSION_SECRET_KEY,required"`
	// TargetAPIURL is the upstream profile endpoint. Empty runs in mock mode.
	TargetAPIURL       string `env:"TARGET_API_URL"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE,default=30"`
	RedisAddr          string `env:"REDIS_ADDR"`
	LogLevel           string `env:"LOG_LEVEL,default=info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.EncryptionKey) != 64 {
		return fmt.Errorf("ENCRYPTION_KEY must be 32 bytes (64 hex chars)")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", s)
}
