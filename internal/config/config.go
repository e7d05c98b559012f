package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the market data manager.
type Config struct {
	Storage Storage     `yaml:"storage"`
	GitHub  GitHub      `yaml:"github"`
	Fetch   FetchConfig `yaml:"fetch"`
	Logging Logging     `yaml:"logging"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir     string `yaml:"data_dir"`
	JournalPath string `yaml:"journal_path"`
}

// GitHub holds credentials and coordinates for the repository the documents
// are republished to. Publishing is disabled when Token or Repo is empty.
type GitHub struct {
	Token   string `yaml:"token"`
	Repo    string `yaml:"repo"` // "owner/name"
	BaseURL string `yaml:"base_url"`
	Path    string `yaml:"path"` // directory inside the repo
}

// FetchConfig controls the upstream data sources.
type FetchConfig struct {
	YahooBaseURL string `yaml:"yahoo_base_url"`
	FREDBaseURL  string `yaml:"fred_base_url"`
	QuotePauseMS int    `yaml:"quote_pause_ms"` // pause after each Yahoo request
	RatePauseMS  int    `yaml:"rate_pause_ms"`  // pause after each FRED request
	TimeoutSec   int    `yaml:"timeout_sec"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, fills in defaults, and applies environment variable
// overrides. A missing file is not an error: defaults plus environment
// overrides are returned, so the binary runs without any config file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyDefaults fills zero-valued fields with working defaults.
func applyDefaults(cfg *Config) {
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "market_data"
	}
	if cfg.GitHub.BaseURL == "" {
		cfg.GitHub.BaseURL = "https://api.github.com"
	}
	if cfg.GitHub.Path == "" {
		cfg.GitHub.Path = "market_data"
	}
	if cfg.Fetch.YahooBaseURL == "" {
		cfg.Fetch.YahooBaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.Fetch.FREDBaseURL == "" {
		cfg.Fetch.FREDBaseURL = "https://fred.stlouisfed.org"
	}
	if cfg.Fetch.QuotePauseMS == 0 {
		cfg.Fetch.QuotePauseMS = 300
	}
	if cfg.Fetch.RatePauseMS == 0 {
		cfg.Fetch.RatePauseMS = 500
	}
	if cfg.Fetch.TimeoutSec == 0 {
		cfg.Fetch.TimeoutSec = 30
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("JOURNAL_PATH"); v != "" {
		cfg.Storage.JournalPath = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_REPO"); v != "" {
		cfg.GitHub.Repo = v
	}
	if v := os.Getenv("GITHUB_BASE_URL"); v != "" {
		cfg.GitHub.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
