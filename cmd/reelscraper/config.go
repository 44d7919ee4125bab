package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Bella040/facebook-reel-scraper/pkg/config"
	"github.com/Bella040/facebook-reel-scraper/pkg/proxy"
	"github.com/Bella040/facebook-reel-scraper/pkg/ui"
)

const defaultConfigPath = "reelscraper.yaml"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage Facebook Reel Scraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (REELSCRAPER_*)
  - .env file
  - settings.json (--settings)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'reelscraper.yaml'
unless a different path is specified with the --config flag.`,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration after all sources are merged.

Proxy credentials are masked.`,
	RunE: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Load every configuration source and report invalid values.

This command checks:
  - YAML/JSON syntax
  - Timeout, retry and rate limit ranges
  - Proxy addresses
  - Timezone name
  - Log level and log file location`,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

const exampleConfig = `# Facebook Reel Scraper configuration
#
# Every option can also be set with an environment variable prefixed with
# REELSCRAPER_, for example REELSCRAPER_TIMEZONE or REELSCRAPER_OUTPUT_FORMAT.

http:
  # Browser user agent sent with every request
  user_agent: ""
  # Request timeout in seconds
  timeout_sec: 25
  # Retries for network errors, 429 and 5xx responses
  max_retries: 3
  # Requests per minute, 0 disables throttling
  requests_per_minute: 0

proxy:
  enabled: false
  # host:port, user:pass@host:port, a URL or a map with host/port/username/password
  # Only the first entry is used
  proxies:
    - "user:pass@gw.example.com:10000"

scrape:
  # Default cap on reels per page, null for no cap
  max_reels_per_page: null
  # IANA timezone used to normalize publish dates
  timezone: "Asia/Karachi"

output:
  # json, csv, excel or html
  format: "json"
  path: "data/output.json"
  # First records of a run, written once
  sample_path: "data/output_sample.json"
  skip_sample: false

logging:
  # debug, info, warn, error, disabled
  level: "warn"
  # Optional JSON log file
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.Printf("To overwrite, first remove the existing file:\n  rm %s\n\n", configPath)
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	ui.Printf("\nNext steps:\n")
	ui.Printf("1. Edit the configuration file\n")
	ui.Printf("2. Run 'reelscraper config validate' to check it\n")
	ui.Printf("3. Start scraping with 'reelscraper scrape -i pages.json'\n")
	return nil
}

// redacted returns a copy of cfg with proxy credentials masked
func redacted(cfg *config.Config) *config.Config {
	display := *cfg
	display.Proxy.Proxies = make([]proxy.Spec, len(cfg.Proxy.Proxies))
	for i, p := range cfg.Proxy.Proxies {
		display.Proxy.Proxies[i] = proxy.FromString(p.String())
	}
	return &display
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath:   configFile,
		SettingsPath: settingsFile,
	})
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(redacted(cfg))
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	ui.Printf("\n%s", data)

	ui.Printf("\nConfiguration sources (in order of priority):\n")
	ui.Printf("1. Command line flags\n")
	ui.Printf("2. Environment variables (REELSCRAPER_*)\n")
	ui.Printf("3. .env file\n")
	if settingsFile != "" {
		ui.Printf("4. Settings file: %s\n", settingsFile)
	} else {
		ui.Printf("4. Settings file: (not specified)\n")
	}
	if configFile != "" {
		ui.Printf("5. Configuration file: %s\n", configFile)
	} else {
		ui.Printf("5. Configuration file: (searched default locations)\n")
	}
	ui.Printf("6. Default values\n")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		ui.PrintInfo("Validating configuration", configFile)
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath:   configFile,
		SettingsPath: settingsFile,
	})
	if err != nil {
		return err
	}

	var warnings []string
	if cfg.Proxy.Enabled && len(cfg.Proxy.Proxies) == 0 {
		warnings = append(warnings, "proxy is enabled but no proxies are listed")
	}
	if len(cfg.Proxy.Proxies) > 1 {
		warnings = append(warnings, "only the first proxy is used")
	}
	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			warnings = append(warnings, fmt.Sprintf("cannot create log directory: %v", err))
		}
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings")
		for _, w := range warnings {
			ui.Printf("  - %s\n", w)
		}
		ui.Printf("\n")
	}

	ui.PrintSuccess("Configuration is valid")

	maxReelsText := "no cap"
	if cfg.Scrape.MaxReelsPerPage != nil {
		maxReelsText = fmt.Sprintf("%d", *cfg.Scrape.MaxReelsPerPage)
	}
	ui.Printf("\nConfiguration summary:\n")
	ui.Printf("  Output: %s (%s)\n", cfg.Output.Path, cfg.Output.Format)
	ui.Printf("  Timeout: %ds, retries: %d\n", cfg.HTTP.TimeoutSec, cfg.HTTP.MaxRetries)
	ui.Printf("  Rate limit: %d requests/minute\n", cfg.HTTP.RequestsPerMinute)
	ui.Printf("  Max reels per page: %s\n", maxReelsText)
	ui.Printf("  Timezone: %s\n", cfg.Scrape.Timezone)
	ui.Printf("  Log level: %s\n", cfg.Logging.Level)
	return nil
}
