// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A '.env' file in the
working directory, when present, is loaded first with 'joho/godotenv'; real
environment variables always win over the file.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// minSecretLength is the shortest SECRET_KEY accepted in production.
const minSecretLength = 32

// # Configuration Schema

// Config holds all runtime configuration for the Kanoon API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"APP_ENV"      envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"25"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), used for the login throttle
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Token signing
	SecretKey string        `env:"SECRET_KEY,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"100h"`

	// Basic-auth throttle on the token endpoint
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginLockout     time.Duration `env:"LOGIN_LOCKOUT"      envDefault:"15m"`

	// Message broker for domain events. Empty disables publishing.
	AMQPURL        string `env:"AMQP_URL"`
	EventsExchange string `env:"EVENTS_EXCHANGE" envDefault:"kanoon.events"`

	// Object Storage (S3-compatible) holding documents, forms and report media
	S3Bucket       string        `env:"S3_BUCKET"`
	S3Region       string        `env:"S3_REGION"   envDefault:"us-east-1"`
	S3Endpoint     string        `env:"S3_ENDPOINT"`
	DownloadURLTTL time.Duration `env:"DOWNLOAD_URL_TTL" envDefault:"15m"`

	// Cross-Origin Resource Sharing (comma separated)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env: %w", err)
	}

	return Parse()
}

// Parse maps the current environment into a [Config] and validates it.
func Parse() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	if c.IsProduction() && len(c.SecretKey) < minSecretLength {
		return fmt.Errorf("config: SECRET_KEY must be at least %d characters in production", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	if c.LoginMaxAttempts < 1 {
		return errors.New("config: LOGIN_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins splits ExtraOrigins into a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
