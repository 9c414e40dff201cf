package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the development API host used when no configuration or
// environment variable selects one.
const DefaultBaseURL = "http://localhost:8000"

// EnvBaseURL overrides the API host regardless of the config file.
const EnvBaseURL = "LEXIBEL_API_URL"

// envPrefix scopes the generic environment overrides, e.g.
// LEXCTL_AUTH__STORAGE=keyring maps to auth.storage.
const envPrefix = "LEXCTL_"

// TokenStorage selects where the token pair is persisted.
type TokenStorage string

const (
	TokenStorageDB      TokenStorage = "db"
	TokenStorageKeyring TokenStorage = "keyring"
)

// APIConfig holds settings for reaching the LexiBel API.
type APIConfig struct {
	BaseURL        string `koanf:"base_url" validate:"required,url"`
	Tenant         string `koanf:"tenant"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"gte=1,lte=300"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// AuthConfig selects the token storage backend.
type AuthConfig struct {
	Storage        TokenStorage `koanf:"storage" validate:"oneof=db keyring"`
	KeyringAccount string       `koanf:"keyring_account" validate:"required_if=Storage keyring"`
}

// StreamConfig tunes the SSE reconnect behavior.
type StreamConfig struct {
	InitialBackoffSeconds int `koanf:"initial_backoff_seconds" validate:"gte=1"`
	MaxBackoffSeconds     int `koanf:"max_backoff_seconds" validate:"gte=1"`
}

// Config is the full lexctl configuration.
type Config struct {
	API    APIConfig    `koanf:"api"`
	Auth   AuthConfig   `koanf:"auth"`
	Stream StreamConfig `koanf:"stream"`
}

// DefaultPath is where Load looks for a config file when none is given.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".lexctl", "config.yaml")
}

func defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 30,
		},
		Auth: AuthConfig{
			Storage: TokenStorageDB,
		},
		Stream: StreamConfig{
			InitialBackoffSeconds: 1,
			MaxBackoffSeconds:     30,
		},
	}
}

// Load reads the configuration from the YAML file at path (skipped when the
// file does not exist), then applies environment overrides, then validates.
func Load(path string) (*Config, error) {
	cfg := defaults()

	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else {
			log.Debug().Str("path", path).Msg("No config file found, using defaults")
		}
	}

	// Environment overrides the file: LEXCTL_AUTH__STORAGE -> auth.storage.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	// The single documented base-URL variable wins over everything.
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = v
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
