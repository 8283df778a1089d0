package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr       = ":8080"
	defaultAppURL     = "http://localhost:3000"
	defaultJWTTTL     = "24h"
	defaultSQLitePath = "roomreserve.db"
)

// Config is the runtime configuration, read once from the environment at
// startup. DatabaseURL and JWTSecret are required; the LINE settings may be
// empty, in which case the chat surfaces answer with a configuration error
// instead of failing the whole process.
type Config struct {
	Addr        string
	DatabaseURL string
	AppURL      string

	JWTSecret string
	JWTTTL    time.Duration

	LineChannelSecret string
	LineChannelToken  string
	LineLIFFID        string
	LineBasicID       string
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:        getEnv("ADDR", defaultAddr),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AppURL:      strings.TrimRight(getEnv("APP_URL", defaultAppURL), "/"),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),

		LineChannelSecret: strings.TrimSpace(os.Getenv("LINE_CHANNEL_SECRET")),
		LineChannelToken:  strings.TrimSpace(os.Getenv("LINE_CHANNEL_ACCESS_TOKEN")),
		LineLIFFID:        strings.TrimSpace(os.Getenv("LINE_LIFF_ID")),
		LineBasicID:       strings.TrimSpace(os.Getenv("LINE_BASIC_ID")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultSQLitePath
	}

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	return nil
}

// LineConfigured reports whether the messaging credentials are present.
// Without them the webhook and push paths are registered but answer 500.
func (c *Config) LineConfigured() bool {
	return c.LineChannelSecret != "" && c.LineChannelToken != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
