package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"

	"github.com/Bella040/facebook-reel-scraper/pkg/datetime"
	"github.com/Bella040/facebook-reel-scraper/pkg/proxy"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Formats accepted by the exporter
var Formats = []string{"json", "csv", "excel", "html"}

// Config holds all configuration options for the reel scraper
type Config struct {
	// HTTP transport settings
	HTTP HTTPConfig `yaml:"http" json:"http"`

	// Outgoing proxy
	Proxy ProxyConfig `yaml:"proxy" json:"proxy"`

	// Per-page scraping behavior
	Scrape ScrapeConfig `yaml:"scrape" json:"scrape"`

	// Export target
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// HTTPConfig holds fetcher settings
type HTTPConfig struct {
	UserAgent         string `yaml:"user_agent" json:"user_agent"`
	TimeoutSec        int    `yaml:"timeout_sec" json:"timeout_sec"`
	MaxRetries        int    `yaml:"max_retries" json:"max_retries"`
	RequestsPerMinute int    `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// ProxyConfig holds proxy settings. Only the first proxy is used.
type ProxyConfig struct {
	Enabled bool         `yaml:"enabled" json:"enabled"`
	Proxies []proxy.Spec `yaml:"proxies,omitempty" json:"proxies,omitempty"`
}

// ScrapeConfig holds extraction settings
type ScrapeConfig struct {
	// MaxReelsPerPage caps discovered links per page; nil means no cap
	MaxReelsPerPage *int   `yaml:"max_reels_per_page" json:"max_reels_per_page"`
	Timezone        string `yaml:"timezone" json:"timezone"`
}

// OutputConfig holds export settings
type OutputConfig struct {
	Format     string `yaml:"format" json:"format"`
	Path       string `yaml:"path" json:"path"`
	SamplePath string `yaml:"sample_path" json:"sample_path"`
	SkipSample bool   `yaml:"skip_sample" json:"skip_sample"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			UserAgent:  DefaultUserAgent,
			TimeoutSec: 25,
			MaxRetries: 3,
		},
		Scrape: ScrapeConfig{
			Timezone: datetime.DefaultZone,
		},
		Output: OutputConfig{
			Format:     "json",
			Path:       filepath.Join("data", "output.json"),
			SamplePath: filepath.Join("data", "output_sample.json"),
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if ua := os.Getenv("REELSCRAPER_USER_AGENT"); ua != "" {
		c.HTTP.UserAgent = ua
	}
	envInt := func(key string, dst *int) {
		raw := os.Getenv(key)
		if raw == "" {
			return
		}
		val, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = val
	}
	envInt("REELSCRAPER_TIMEOUT_SEC", &c.HTTP.TimeoutSec)
	envInt("REELSCRAPER_MAX_RETRIES", &c.HTTP.MaxRetries)
	envInt("REELSCRAPER_REQUESTS_PER_MINUTE", &c.HTTP.RequestsPerMinute)

	if raw := os.Getenv("REELSCRAPER_MAX_REELS"); raw != "" {
		var n int
		envInt("REELSCRAPER_MAX_REELS", &n)
		c.Scrape.MaxReelsPerPage = &n
	}

	if p := os.Getenv("REELSCRAPER_PROXY"); p != "" {
		c.Proxy.Enabled = true
		c.Proxy.Proxies = []proxy.Spec{proxy.FromString(p)}
	}

	// SCRAPER_TZ wins over the prefixed variable
	if tz := os.Getenv("REELSCRAPER_TIMEZONE"); tz != "" {
		c.Scrape.Timezone = tz
	}
	if tz := os.Getenv(datetime.EnvZone); tz != "" {
		c.Scrape.Timezone = tz
	}

	if format := os.Getenv("REELSCRAPER_OUTPUT_FORMAT"); format != "" {
		c.Output.Format = format
	}
	if path := os.Getenv("REELSCRAPER_OUTPUT_PATH"); path != "" {
		c.Output.Path = path
	}
	if level := os.Getenv("REELSCRAPER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML, JSON or JSON5 file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".json5":
		err = decodeJSON5(data, c)
	default:
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// decodeJSON5 reads relaxed JSON and decodes it with encoding/json semantics
func decodeJSON5(data []byte, v interface{}) error {
	var raw interface{}
	if err := json5.Unmarshal(data, &raw); err != nil {
		return err
	}
	strict, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(strict, v)
}

func findConfigFile() string {
	home, _ := os.UserHomeDir()
	locations := []string{
		".reelscraper.yaml",
		".reelscraper.yml",
		filepath.Join(home, ".config", "reelscraper", "config.yaml"),
		filepath.Join(home, ".config", "reelscraper", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.HTTP.TimeoutSec <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.HTTP.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}
	if c.HTTP.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("requests per minute cannot be negative"))
	}

	if c.Proxy.Enabled {
		for i, p := range c.Proxy.Proxies {
			if err := p.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("proxy #%d: %w", i+1, err))
			}
		}
	}

	if _, err := datetime.LoadZone(c.Scrape.Timezone); err != nil {
		errs = append(errs, err)
	}

	if c.Output.Path == "" {
		errs = append(errs, errors.New("output path is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// ProxySpecs returns the proxies to use, or nil when proxying is disabled
func (c *Config) ProxySpecs() []proxy.Spec {
	if !c.Proxy.Enabled {
		return nil
	}
	return c.Proxy.Proxies
}

// Save saves the configuration to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge applies the non-zero fields of override on top of c
func (c *Config) Merge(override *Config) error {
	if override == nil {
		return nil
	}
	if err := mergo.Merge(c, override, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge overrides: %w", err)
	}
	// mergo skips a zero value behind a pointer, so an explicit cap of 0 is copied by hand
	if override.Scrape.MaxReelsPerPage != nil {
		n := *override.Scrape.MaxReelsPerPage
		c.Scrape.MaxReelsPerPage = &n
	}
	return nil
}

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// ConfigPath is a YAML/JSON config file; empty searches default locations
	ConfigPath string
	// SettingsPath is an optional settings.json in the legacy camelCase layout
	SettingsPath string
	// Overrides carries command line flags
	Overrides *Config
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Settings file > Config file > Defaults
func Load(opts LoadOptions) (*Config, error) {
	_ = godotenv.Load(".env")
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".reelscraper.env"))
	}

	config := DefaultConfig()

	if err := config.LoadFromFile(opts.ConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if opts.SettingsPath != "" {
		if err := config.LoadSettings(opts.SettingsPath); err != nil {
			return nil, fmt.Errorf("failed to load settings file: %w", err)
		}
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := config.Merge(opts.Overrides); err != nil {
		return nil, err
	}

	config.Output.Format = strings.ToLower(strings.TrimSpace(config.Output.Format))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}
