// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// devDBPassword is the development default that must not reach production.
const devDBPassword = "changeme"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string `env:"APP_HOST" env-default:"0.0.0.0"`
	Port string `env:"APP_PORT" env-default:"8080"`
	Env  string `env:"APP_ENV"  env-default:"development"` // "development", "production", "testing"

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  env-default:"info"`
	LogFormat string `env:"LOG_FORMAT"` // "text" or "json"; empty picks by environment

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST"     env-default:"localhost"`
	DBPort     string `env:"POSTGRES_PORT"     env-default:"5432"`
	DBUser     string `env:"POSTGRES_USER"     env-default:"interiorai"`
	DBPassword string `env:"POSTGRES_PASSWORD" env-default:"changeme"`
	DBName     string `env:"POSTGRES_DB"       env-default:"interiorai"`

	// Valkey (Redis-compatible session store)
	ValkeyHost     string `env:"VALKEY_HOST"     env-default:"localhost"`
	ValkeyPort     string `env:"VALKEY_PORT"     env-default:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// Image generation
	AIProvider        string        `env:"AI_PROVIDER"         env-default:"pollinations"`
	ProviderTimeout   time.Duration `env:"PROVIDER_TIMEOUT"    env-default:"120s"`
	GenerationPacing  time.Duration `env:"GENERATION_PACING"   env-default:"1s"`
	MaxUploadBytes    int64         `env:"MAX_UPLOAD_BYTES"    env-default:"20971520"`
	GenerateRateLimit int           `env:"GENERATE_RATE_LIMIT" env-default:"10"` // requests per minute per client

	PollinationsBaseURL string `env:"POLLINATIONS_BASE_URL"`

	SegmindAPIKey  string `env:"SEGMIND_API_KEY"`
	SegmindModel   string `env:"SEGMIND_MODEL"`
	SegmindBaseURL string `env:"SEGMIND_BASE_URL"`

	HuggingFaceAPIKey  string `env:"HUGGINGFACE_API_KEY"`
	HuggingFaceModel   string `env:"HUGGINGFACE_MODEL"`
	HuggingFaceBaseURL string `env:"HUGGINGFACE_BASE_URL"`

	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIImageModel string `env:"OPENAI_IMAGE_MODEL"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`

	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	GeminiImageModel string `env:"GEMINI_IMAGE_MODEL"`
	GeminiBaseURL    string `env:"GEMINI_BASE_URL"`

	// S3-compatible storage for liked images (optional)
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3Region       string `env:"S3_REGION"        env-default:"fsn1"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3BucketPublic string `env:"S3_BUCKET_PUBLIC" env-default:"interiorai-public"`
	S3PublicURL    string `env:"S3_PUBLIC_URL"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if the result is
// unusable, for example when critical values are missing in production.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints cleanenv cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Env == "production" && c.DBPassword == devDBPassword {
		errs = append(errs, errors.New("POSTGRES_PASSWORD must be set in production"))
	}
	if c.ProviderTimeout <= 0 {
		errs = append(errs, errors.New("PROVIDER_TIMEOUT must be positive"))
	}
	if c.GenerationPacing < 0 {
		errs = append(errs, errors.New("GENERATION_PACING must not be negative"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if c.GenerateRateLimit <= 0 {
		errs = append(errs, errors.New("GENERATE_RATE_LIMIT must be positive"))
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q is not one of text, json", c.LogFormat))
	}

	return errors.Join(errs...)
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// JSONLogs reports whether logs should be written as JSON.
func (c *Config) JSONLogs() bool {
	if c.LogFormat != "" {
		return c.LogFormat == "json"
	}
	return !c.IsDev()
}
