// Package config loads legostore settings from a YAML file, a .env file and
// the process environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

const (
	EnvCatalog        = "LEGOSTORE_CATALOG"
	EnvCurrency       = "LEGOSTORE_CURRENCY"
	EnvLogLevel       = "LEGOSTORE_LOG_LEVEL"
	EnvLogFile        = "LEGOSTORE_LOG_FILE"
	EnvShowTotalPrice = "LEGOSTORE_SHOW_TOTAL_PRICE"
)

// Config holds all legostore configuration.
type Config struct {
	// Path to a YAML catalog; the bundled catalog is used when empty.
	CatalogPath string `yaml:"catalog_path"`

	// Currency, when set, must match the catalog's currency. Empty accepts
	// whatever the catalog is priced in.
	Currency string `yaml:"currency"`

	// ShowTotalPrice derives the cart's total price from its contents.
	// Off by default: the storefront prints a fixed 0.
	ShowTotalPrice bool `yaml:"show_total_price"`

	Log LogConfig `yaml:"log"`
	UI  UIConfig  `yaml:"ui"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty disables logging
}

type UIConfig struct {
	Category string   `yaml:"category"` // category shown at start
	Nav      []string `yaml:"nav"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Category: "Ninjago",
			Nav: []string{
				"City",
				"Ninjago",
				"Castles & Knights",
				"Marine & Pirates",
				"Movie characters",
			},
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies .env and
// environment overrides, then validates the result.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("os.ReadFile: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
		}
	}

	// a missing .env is fine, variables may come from the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, fmt.Errorf("applyEnv: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvCatalog); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		c.Currency = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvShowTotalPrice); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s[%s] is not a bool: %w", EnvShowTotalPrice, v, err)
		}
		c.ShowTotalPrice = show
	}

	return nil
}

func (c Config) Validate() error {
	if _, err := c.CurrencyUnit(); err != nil {
		return err
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// CurrencyUnit parses Currency. The zero Unit is returned when it is empty.
func (c Config) CurrencyUnit() (currency.Unit, error) {
	if c.Currency == "" {
		return currency.Unit{}, nil
	}

	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}

	return unit, nil
}

func (c Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level[%s] is not valid: %w", c.Log.Level, err)
	}

	return level, nil
}
