// Package config provides configuration loading and validation for the
// offer service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/santoshgudeti/skillmatrix-offers/internal/compositing"
	"github.com/santoshgudeti/skillmatrix-offers/internal/notify"
	"github.com/santoshgudeti/skillmatrix-offers/internal/storage"
)

// Config holds the service settings, read from the environment. A .env
// file loaded at startup feeds the same variables in development.
type Config struct {
	Port        int
	DatabaseURL string

	Storage storage.MinioConfig
	SMTP    notify.SMTPConfig

	// Letterhead exclusion bands in points.
	HeaderBand float64
	FooterBand float64

	// SignedURLTTL bounds how long download links stay valid.
	SignedURLTTL time.Duration

	// LetterheadRetention controls how long superseded letterheads are
	// kept before cleanup removes them.
	LetterheadRetention time.Duration
}

// Load reads the configuration from environment variables and validates
// it. DATABASE_URL and the MinIO settings are required for serving;
// SMTP settings are optional and the service logs notifications when
// they are absent.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        intEnv("PORT", 8080),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Storage: storage.MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    envDefault("MINIO_BUCKET", "offer-letters"),
			Region:    envDefault("MINIO_REGION", "us-east-1"),
			Secure:    boolEnv("MINIO_USE_SSL", false),
		},
		SMTP: notify.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     intEnv("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		HeaderBand:          floatEnv("LETTERHEAD_HEADER_PT", compositing.DefaultBands().Header),
		FooterBand:          floatEnv("LETTERHEAD_FOOTER_PT", compositing.DefaultBands().Footer),
		SignedURLTTL:        durationEnv("SIGNED_URL_TTL", time.Hour),
		LetterheadRetention: durationEnv("LETTERHEAD_RETENTION", 30*24*time.Hour),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.Storage.Endpoint == "" {
		return fmt.Errorf("MINIO_ENDPOINT is required but not set")
	}
	if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
		return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required but not set")
	}
	if c.HeaderBand < 0 || c.FooterBand < 0 {
		return fmt.Errorf("exclusion bands must be non-negative")
	}
	if c.SignedURLTTL < time.Minute {
		return fmt.Errorf("SIGNED_URL_TTL must be at least one minute, got %s", c.SignedURLTTL)
	}
	return nil
}

// Bands returns the configured letterhead exclusion bands.
func (c *Config) Bands() compositing.Bands {
	return compositing.Bands{Header: c.HeaderBand, Footer: c.FooterBand}
}

// MailConfigured reports whether SMTP delivery is set up.
func (c *Config) MailConfigured() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func boolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
