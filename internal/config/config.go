// Package config loads the harness configuration from the environment,
// optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/utkarsh5026/bestprice/internal/logger"
	"github.com/utkarsh5026/bestprice/money"
)

// Prefix is prepended to every variable name, e.g. BESTPRICE_PRODUCT.
const Prefix = "BESTPRICE_"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every setting of the demo harness.
type Config struct {
	Product   string        `env:"PRODUCT" envDefault:"myPhone"`
	Shops     []string      `env:"SHOPS" envDefault:"BestPrice,LetsSaveBig,MyFavoriteShop,BuyItAll" envSeparator:","`
	TimeUnit  time.Duration `env:"TIME_UNIT" envDefault:"1s"`
	Seed      int64         `env:"SEED" envDefault:"0"`
	Currency  string        `env:"CURRENCY" envDefault:"EUR"`
	RateLimit float64       `env:"RATE_LIMIT" envDefault:"0"`
	Log       logger.Config `envPrefix:"LOG_"`
}

// Load reads the configuration. Values come from the process environment,
// falling back to the given .env files, then to defaults. With no files,
// ./.env is used if present.
func Load(files ...string) (*Config, error) {
	environ, err := readEnvFiles(files)
	if err != nil {
		return nil, err
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      Prefix,
		Environment: environ,
	}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.Log.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		// The default file is optional.
		m, err := godotenv.Read()
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading .env: %w", err)
		}
		return m, nil
	}

	m, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("reading env files: %w", err)
	}
	return m, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Product) < 2 {
		errs = append(errs, fmt.Errorf("product must have at least two characters (got: %q)", c.Product))
	}
	if len(c.Shops) == 0 {
		errs = append(errs, errors.New("at least one shop is required"))
	}
	for _, name := range c.Shops {
		if name == "" || strings.Contains(name, ":") {
			errs = append(errs, fmt.Errorf("shop name %q must be non-empty and contain no ':'", name))
		}
	}
	if c.TimeUnit < 0 {
		errs = append(errs, fmt.Errorf("time unit must not be negative (got: %v)", c.TimeUnit))
	}
	if _, err := money.ParseCurrency(c.Currency); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative (got: %v)", c.RateLimit))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// CurrencyValue returns the parsed target currency.
func (c *Config) CurrencyValue() money.Currency {
	cur, _ := money.ParseCurrency(c.Currency)
	return cur
}
