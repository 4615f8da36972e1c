// Package config loads client settings. Precedence, highest first:
// bound CLI flags, FACTGUARD_* environment (including a .env file),
// ~/.factguard/config.yaml, defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abelbrown/factguard/internal/factcheck"
	"github.com/abelbrown/factguard/internal/ui/form"
	"github.com/abelbrown/factguard/internal/ui/results"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. FACTGUARD_API_BASE_URL.
const EnvPrefix = "FACTGUARD"

// Config is the persistent client configuration.
type Config struct {
	API APIConfig `mapstructure:"api" yaml:"api"`
	UI  UIConfig  `mapstructure:"ui" yaml:"ui"`
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// APIConfig describes how to reach the fact-checking service.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RateLimit time.Duration `mapstructure:"rate_limit" yaml:"rate_limit"` // min gap between requests, 0 disables
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	ReviewPageSize   int           `mapstructure:"review_page_size" yaml:"review_page_size"`
	ResultsPageSize  int           `mapstructure:"results_page_size" yaml:"results_page_size"`
	ProgressInterval time.Duration `mapstructure:"progress_interval" yaml:"progress_interval"`
	Markdown         bool          `mapstructure:"markdown" yaml:"markdown"` // render explanations with glamour
	Theme            string        `mapstructure:"theme" yaml:"theme"`       // glamour style: "dark", "light", "auto"
}

// LogConfig controls the file logger and event log.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Events bool   `mapstructure:"events" yaml:"events"` // write events.jsonl
}

// DefaultConfig returns the defaults of the client and both panels.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   factcheck.DefaultBaseURL,
			Timeout:   120 * time.Second,
			RateLimit: 250 * time.Millisecond,
		},
		UI: UIConfig{
			ReviewPageSize:   form.DefaultPageSize,
			ResultsPageSize:  results.DefaultPageSize,
			ProgressInterval: form.DefaultInterval,
			Markdown:         true,
			Theme:            "dark",
		},
		Log: LogConfig{
			Level:  "info",
			Events: true,
		},
	}
}

// DataDir returns ~/.factguard, the home of config, logs and events.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".factguard"
	}
	return filepath.Join(home, ".factguard")
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// NewViper returns a viper instance seeded with defaults and wired to the
// environment. Callers may bind flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.rate_limit", d.API.RateLimit)
	v.SetDefault("ui.review_page_size", d.UI.ReviewPageSize)
	v.SetDefault("ui.results_page_size", d.UI.ResultsPageSize)
	v.SetDefault("ui.progress_interval", d.UI.ProgressInterval)
	v.SetDefault("ui.markdown", d.UI.Markdown)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.events", d.Log.Events)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (ConfigPath() when empty) into v and
// decodes the merged result. A missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	// .env is optional; values already in the environment win.
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = ConfigPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			if explicit {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.UI.ReviewPageSize < 1 {
		return fmt.Errorf("ui.review_page_size must be at least 1")
	}
	if c.UI.ResultsPageSize < 1 {
		return fmt.Errorf("ui.results_page_size must be at least 1")
	}
	if c.UI.ProgressInterval <= 0 {
		return fmt.Errorf("ui.progress_interval must be positive")
	}
	return nil
}

// YAML renders the config the way Save writes it.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := c.YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
