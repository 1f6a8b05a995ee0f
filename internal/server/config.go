package server

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/render"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "ISOSTACK"

// Config is the server configuration, read from ISOSTACK_* variables.
type Config struct {
	Addr          string  `envconfig:"ADDR" default:":8080"`
	Store         string  `envconfig:"STORE" default:"memory"`
	StoreDSN      string  `envconfig:"STORE_DSN"`
	StoreDatabase string  `envconfig:"STORE_DATABASE"`
	Library       string  `envconfig:"LIBRARY"`
	Width         float64 `envconfig:"WIDTH" default:"800"`
	Height        float64 `envconfig:"HEIGHT" default:"600"`
	CacheEntries  int     `envconfig:"CACHE_ENTRIES" default:"512"`
	MaxBodyBytes  int64   `envconfig:"MAX_BODY_BYTES" default:"4194304"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s_* environment", EnvPrefix)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values envconfig cannot.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max body size must be positive")
	}
	return nil
}

// Canvas is the canvas diagrams are compiled against.
func (c Config) Canvas() render.Canvas {
	return render.Canvas{Width: c.Width, Height: c.Height}
}
