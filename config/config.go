package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret    string `env:"JWT_SECRET,required"  validate:"required,min=32"`
	ResendAPIKey string `env:"RESEND_API_KEY"       validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"          validate:"required_if=Env production,required_if=Env staging"`
	BaseURL      string `env:"BASE_URL"             envDefault:"http://localhost:8080"`

	SerpAPIKey   string `env:"SERP_API_KEY,required"   validate:"required"`
	RapidAPIKey  string `env:"RAPIDAPI_KEY,required"   validate:"required"`
	GeminiAPIKey string `env:"GEMINI_API_KEY,required" validate:"required"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	ScrapeConcurrency int `env:"SCRAPE_CONCURRENCY" envDefault:"4"  validate:"min=1,max=32"`
	ScrapeTimeoutSec  int `env:"SCRAPE_TIMEOUT_SEC" envDefault:"30" validate:"min=1,max=300"`

	TokenTTLMin    int    `env:"TOKEN_TTL_MIN"    envDefault:"1440" validate:"min=1"`
	TokenPurgeCron string `env:"TOKEN_PURGE_CRON" envDefault:"0 * * * *"`

	// Scrape cache. With no bucket configured raw pages land on local disk.
	CacheDir    string `env:"CACHE_DIR" envDefault:"serp-cache"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
