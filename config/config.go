package config

import (
	"time"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

//Config represents service configuration for dp-frontend-catalogue-controller
type Config struct {
	BindAddr                   string        `envconfig:"BIND_ADDR"`
	SearchAPIURL               string        `envconfig:"SEARCH_API_URL"`
	SearchAPITimeout           time.Duration `envconfig:"SEARCH_API_TIMEOUT"`
	RendererURL                string        `envconfig:"RENDERER_URL"`
	DefaultPageSize            int           `envconfig:"DEFAULT_PAGE_SIZE"`
	SessionTTL                 time.Duration `envconfig:"SESSION_TTL"`
	GracefulShutdownTimeout    time.Duration `envconfig:"GRACEFUL_SHUTDOWN_TIMEOUT"`
	HealthCheckInterval        time.Duration `envconfig:"HEALTHCHECK_INTERVAL"`
	HealthCheckCriticalTimeout time.Duration `envconfig:"HEALTHCHECK_CRITICAL_TIMEOUT"`
}

// Get returns the default config with any modifications through environment
// variables
func Get() (cfg *Config, err error) {

	cfg = &Config{
		BindAddr:                   ":26500",
		SearchAPIURL:               "https://api.datakeep.civicdays.in",
		SearchAPITimeout:           10 * time.Second,
		RendererURL:                "http://localhost:20010",
		DefaultPageSize:            catalogue.DefaultPageSize,
		SessionTTL:                 30 * time.Minute,
		GracefulShutdownTimeout:    5 * time.Second,
		HealthCheckInterval:        30 * time.Second,
		HealthCheckCriticalTimeout: 90 * time.Second,
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	if !catalogue.ValidPageSize(cfg.DefaultPageSize) {
		return nil, errors.Wrapf(catalogue.ErrInvalidPageSize, "DEFAULT_PAGE_SIZE %d", cfg.DefaultPageSize)
	}

	return cfg, nil
}
