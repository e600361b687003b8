package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ScholarConfig holds settings for the search-results scraper.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Enabled controls whether the scrape pass runs at all. The results
	// page deploys anti-bot measures, so harvests may disable it and rely
	// on the bibliographic API alone.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// MaxResults is the maximum number of papers kept per query (default 15).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"min=0"`

	// MinDelay and MaxDelay bound the randomized politeness delay applied
	// before each request (defaults 2s and 5s).
	MinDelay time.Duration `json:"min_delay" yaml:"min_delay" mapstructure:"min_delay"`
	MaxDelay time.Duration `json:"max_delay" yaml:"max_delay" mapstructure:"max_delay"`
}

// OpenAlexConfig holds settings for the bibliographic API client.
type OpenAlexConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Mailto is the contact email sent with every request for polite-pool
	// access. Falls back to the OPENALEX_MAILTO secret when empty.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto" validate:"omitempty,email"`

	// MaxResults is the total number of records fetched per topic, split
	// evenly across the search strategies (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"min=0"`

	// RequestsPerSecond is the sustained request rate (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second" validate:"min=0"`
}

// MatchConfig holds settings for scrape-to-record linkage.
type MatchConfig struct {
	// MaxMatches is the number of API candidates fetched per scraped paper (default 3).
	MaxMatches int `json:"max_matches" yaml:"max_matches" mapstructure:"max_matches" validate:"min=0"`
}

// HarvestConfig holds settings for a full harvest run.
type HarvestConfig struct {
	// OutputDir is the directory for all report files (default "seed-papers").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir" validate:"required"`

	// TopPapers is the number of top papers recorded per source per topic (default 5).
	TopPapers int `json:"top_papers" yaml:"top_papers" mapstructure:"top_papers" validate:"min=1"`

	// Excel controls whether the joint workbook is written (default true).
	Excel bool `json:"excel" yaml:"excel" mapstructure:"excel"`

	// CSL controls whether the CSL-JSON bibliography is written (default true).
	CSL bool `json:"csl" yaml:"csl" mapstructure:"csl"`

	// OnlyTopic restricts the run to a single catalog topic ID (0 = all topics).
	OnlyTopic int `json:"only_topic,omitempty" yaml:"only_topic,omitempty" mapstructure:"only_topic" validate:"min=0"`
}

// LogConfig holds settings for diagnostics logging.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, or error (default "info").
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`

	// Format is the output format: console or json (default "console").
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"omitempty,oneof=console json"`
}

// Config groups all stage configurations for the pipeline.
type Config struct {
	Scholar  ScholarConfig  `json:"scholar" yaml:"scholar" mapstructure:"scholar"`
	OpenAlex OpenAlexConfig `json:"openalex" yaml:"openalex" mapstructure:"openalex"`
	Match    MatchConfig    `json:"match" yaml:"match" mapstructure:"match"`
	Harvest  HarvestConfig  `json:"harvest" yaml:"harvest" mapstructure:"harvest"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}
