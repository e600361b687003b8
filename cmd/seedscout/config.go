package main

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/seedscout/internal/openalex"
	"github.com/pdiddy/seedscout/internal/scholar"
	"github.com/pdiddy/seedscout/internal/secrets"
	"github.com/pdiddy/seedscout/pkg/types"
)

// setDefaults registers viper defaults for every config key. Flags
// override the config file; the config file overrides these.
func setDefaults() {
	viper.SetDefault("scholar.enabled", true)
	viper.SetDefault("scholar.max_results", 15)
	viper.SetDefault("scholar.min_delay", "2s")
	viper.SetDefault("scholar.max_delay", "5s")
	viper.SetDefault("scholar.timeout", "30s")

	viper.SetDefault("openalex.max_results", 10)
	viper.SetDefault("openalex.requests_per_second", 1.0)
	viper.SetDefault("openalex.timeout", "30s")

	viper.SetDefault("match.max_matches", 3)

	viper.SetDefault("harvest.output_dir", "seed-papers")
	viper.SetDefault("harvest.top_papers", 5)
	viper.SetDefault("harvest.excel", true)
	viper.SetDefault("harvest.csl", true)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// loadConfig assembles the configuration from defaults, config file, and
// environment, falls back to the secrets dir for the OpenAlex contact
// address, and validates the result.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.OpenAlex.Mailto == "" {
		cfg.OpenAlex.Mailto = secrets.Get(loadedSecrets, "openalex-mailto")
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newScholarSearcher(cfg types.Config) *scholar.Searcher {
	return &scholar.Searcher{
		Client: &http.Client{Timeout: cfg.Scholar.Timeout},
		Config: cfg.Scholar,
		Logger: logger.With().Str("component", "scholar").Logger(),
	}
}

func newOpenAlexClient(cfg types.Config) *openalex.Client {
	client := &http.Client{Timeout: cfg.OpenAlex.Timeout}
	return openalex.New(client, cfg.OpenAlex, logger.With().Str("component", "openalex").Logger())
}
