package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"polyglot/internal/domain/valueobject"
	"polyglot/pkg/tz"
)

// Bundle sources.
const (
	SourceEmbedded = "embedded"
	SourceDir      = "dir"
	SourcePostgres = "postgres"
)

type Config struct {
	Source        string `env:"POLYGLOT_SOURCE" envDefault:"embedded"`
	BundleDir     string `env:"POLYGLOT_BUNDLE_DIR"`
	DatabaseURL   string `env:"DATABASE_URL"`
	LogLevel      string `env:"POLYGLOT_LOG_LEVEL" envDefault:"info"`
	DefaultLocale string `env:"POLYGLOT_DEFAULT_LOCALE" envDefault:"en"`
	Timezone      string `env:"POLYGLOT_TIMEZONE" envDefault:"UTC"`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, ...).
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Locale returns the parsed default locale.
func (c *Config) Locale() valueobject.Locale {
	l, err := valueobject.ParseLocale(c.DefaultLocale)
	if err != nil {
		return valueobject.English
	}
	return l
}

func (c *Config) validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	switch c.Source {
	case SourceEmbedded:
	case SourceDir:
		if strings.TrimSpace(c.BundleDir) == "" {
			return fmt.Errorf("config: POLYGLOT_BUNDLE_DIR is required when POLYGLOT_SOURCE=dir")
		}
	case SourcePostgres:
		if err := c.validateDatabaseURL(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("config: POLYGLOT_SOURCE must be embedded, dir or postgres (got %q)", c.Source)
	}

	if c.DatabaseURL != "" {
		if err := c.validateDatabaseURL(); err != nil {
			return err
		}
	}

	if _, err := tz.Load(c.Timezone); err != nil {
		return fmt.Errorf("config: POLYGLOT_TIMEZONE invalid: %w", err)
	}

	if _, err := valueobject.ParseLocale(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: POLYGLOT_DEFAULT_LOCALE invalid (%q): %w", c.DefaultLocale, err)
	}
	return nil
}

func (c *Config) validateDatabaseURL() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("config: DATABASE_URL is required when POLYGLOT_SOURCE=postgres")
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
	}
	return nil
}
