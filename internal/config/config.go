package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"github.com/example/timesync/internal/timezone"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR,default=:8080"`
	BaseURL    string `env:"BASE_URL,default=http://localhost:8080"`

	Env      string `env:"APP_ENV,default=dev"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	// meeting search
	ReferenceZone  string `env:"REFERENCE_ZONE,default=UTC"`
	AttendeeDomain string `env:"ATTENDEE_DOMAIN,default=company.com"`
	MeetingTitle   string `env:"MEETING_TITLE,default=Team Meeting"`
	TopN           int    `env:"TOP_N,default=3"`

	// web
	CookieHashKeyB64     string `env:"COOKIE_HASH_KEY"`
	CookieBlockKeyB64    string `env:"COOKIE_BLOCK_KEY"`
	AccessPasswordBcrypt string `env:"ACCESS_PASSWORD_BCRYPT"`

	// derived in normalize
	CookieHashKey  []byte
	CookieBlockKey []byte
	Reference      *time.Location
}

// FromEnv reads the environment, after loading ./.env when it exists.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf(".env: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	loc, err := timezone.Default().Load(c.ReferenceZone)
	if err != nil {
		return fmt.Errorf("REFERENCE_ZONE: %w", err)
	}
	c.Reference = loc

	if c.TopN < 1 {
		return fmt.Errorf("invalid TOP_N %d (want >= 1)", c.TopN)
	}
	if strings.TrimSpace(c.AttendeeDomain) == "" {
		return fmt.Errorf("ATTENDEE_DOMAIN must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if c.CookieHashKeyB64 != "" {
		if c.CookieHashKey, err = decodeB64(c.CookieHashKeyB64); err != nil {
			return fmt.Errorf("COOKIE_HASH_KEY: %w", err)
		}
	}
	if c.CookieBlockKeyB64 != "" {
		if c.CookieBlockKey, err = decodeB64(c.CookieBlockKeyB64); err != nil {
			return fmt.Errorf("COOKIE_BLOCK_KEY: %w", err)
		}
	}
	return nil
}

// RequireCookieKeys is checked by the web server only; CLI commands run without keys.
func (c Config) RequireCookieKeys() error {
	if len(c.CookieHashKey) == 0 || len(c.CookieBlockKey) == 0 {
		return fmt.Errorf("COOKIE_HASH_KEY and COOKIE_BLOCK_KEY are required (32 and 16/24/32 bytes base64, see `timesync keys`)")
	}
	switch len(c.CookieBlockKey) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes (got %d)", len(c.CookieBlockKey))
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return lvl, nil
}

func decodeB64(s string) ([]byte, error) {
	b, err := os.ReadFile(s)
	if err == nil {
		// allow pointing to file path for k8s secret mounts
		s = string(b)
	}
	s = strings.TrimSpace(s)
	if dec, err := base64.StdEncoding.DecodeString(s); err == nil {
		return dec, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
