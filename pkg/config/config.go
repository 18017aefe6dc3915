package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvCartAPIBaseURL = "STOREFRONT_CART_API_BASE_URL"
)

type Config struct {
	App     AppConfig
	CartAPI CartAPIConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.CartAPI.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CartAPIConfig struct {
	BaseURL        string        `envconfig:"STOREFRONT_CART_API_BASE_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"STOREFRONT_CART_API_TIMEOUT" default:"15s"`
}

func (c CartAPIConfig) validate() error {
	trimmed := strings.TrimSpace(c.BaseURL)
	if trimmed == "" {
		return fmt.Errorf("%s is required", EnvCartAPIBaseURL)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL", EnvCartAPIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("cart api timeout must be positive")
	}
	return nil
}
