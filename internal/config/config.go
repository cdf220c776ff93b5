package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App    AppConfig
	Auth   AuthConfig
	PubSub PubSubConfig
	Redis  RedisConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string
	// TokenExpiry is how long issued tokens stay valid.
	TokenExpiry time.Duration
	// LoginPassword is the single shared login secret. Users carry no
	// per-user credentials; login succeeds only with this value.
	LoginPassword string
}

type PubSubConfig struct {
	// Driver selects the notification broker: "memory" (default) or "redis".
	Driver string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	tokenExpiry, err := time.ParseDuration(getEnv("AUTH_TOKEN_EXPIRY", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_EXPIRY: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "4000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			TokenExpiry:   tokenExpiry,
			LoginPassword: getEnv("AUTH_PASSWORD", "secret"),
		},
		PubSub: PubSubConfig{
			Driver: getEnv("PUBSUB_DRIVER", "memory"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config is usable for the selected environment.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Auth.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Auth.LoginPassword == "secret" {
			return fmt.Errorf("AUTH_PASSWORD must be set in production")
		}
	}

	switch c.PubSub.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown PUBSUB_DRIVER %q (want memory or redis)", c.PubSub.Driver)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
