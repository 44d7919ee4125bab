package config

import (
	"fmt"
	"os"

	"github.com/Bella040/facebook-reel-scraper/pkg/proxy"
)

// Settings is the flat camelCase settings.json layout:
//
//	{
//	  "userAgent": null,
//	  "timeoutSec": 25,
//	  "useProxies": false,
//	  "proxies": ["user:pass@gw.example.com:10000"],
//	  "output": {"format": "json", "path": "data/output.json"},
//	  "maxReelsPerPage": 10,
//	  "timezone": "Asia/Karachi"
//	}
type Settings struct {
	UserAgent       *string         `json:"userAgent"`
	TimeoutSec      *int            `json:"timeoutSec"`
	UseProxies      *bool           `json:"useProxies"`
	Proxies         []proxy.Spec    `json:"proxies"`
	Output          *SettingsOutput `json:"output"`
	MaxReelsPerPage *int            `json:"maxReelsPerPage"`
	Timezone        *string         `json:"timezone"`
}

// SettingsOutput is the output block of Settings
type SettingsOutput struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

// LoadSettings reads a settings.json file and applies it to c
func (c *Config) LoadSettings(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	var s Settings
	if err := decodeJSON5(data, &s); err != nil {
		return fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	s.Apply(c)
	return nil
}

// Apply copies every value present in s onto c
func (s Settings) Apply(c *Config) {
	if s.UserAgent != nil && *s.UserAgent != "" {
		c.HTTP.UserAgent = *s.UserAgent
	}
	if s.TimeoutSec != nil {
		c.HTTP.TimeoutSec = *s.TimeoutSec
	}
	if s.UseProxies != nil {
		c.Proxy.Enabled = *s.UseProxies
	}
	if s.Proxies != nil {
		c.Proxy.Proxies = s.Proxies
	}
	if s.Output != nil {
		if s.Output.Format != "" {
			c.Output.Format = s.Output.Format
		}
		if s.Output.Path != "" {
			c.Output.Path = s.Output.Path
		}
	}
	if s.MaxReelsPerPage != nil {
		n := *s.MaxReelsPerPage
		c.Scrape.MaxReelsPerPage = &n
	}
	if s.Timezone != nil && *s.Timezone != "" {
		c.Scrape.Timezone = *s.Timezone
	}
}
