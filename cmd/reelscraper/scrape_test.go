package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Bella040/facebook-reel-scraper/pkg/config"
	"github.com/Bella040/facebook-reel-scraper/pkg/proxy"
)

func newFlagCommand(t *testing.T) *cobra.Command {
	t.Helper()
	logLevel, verbosity = "", 0
	cmd := &cobra.Command{Use: "test"}
	addScrapeFlags(cmd)
	return cmd
}

func TestOverridesOnlyCarryChangedFlags(t *testing.T) {
	cmd := newFlagCommand(t)

	o := overridesFromFlags(cmd)
	assert.Equal(t, &config.Config{}, o)
}

func TestOverridesFromFlags(t *testing.T) {
	cmd := newFlagCommand(t)
	require.NoError(t, cmd.Flags().Set("format", "csv"))
	require.NoError(t, cmd.Flags().Set("max-reels", "0"))
	require.NoError(t, cmd.Flags().Set("proxy", "user:pass@gw.example.com:10000"))
	require.NoError(t, cmd.Flags().Set("timeout", "40"))
	require.NoError(t, cmd.Flags().Set("no-sample", "true"))
	verbosity = 2

	o := overridesFromFlags(cmd)
	assert.Equal(t, "csv", o.Output.Format)
	require.NotNil(t, o.Scrape.MaxReelsPerPage)
	assert.Equal(t, 0, *o.Scrape.MaxReelsPerPage)
	assert.True(t, o.Proxy.Enabled)
	assert.Equal(t, []proxy.Spec{proxy.FromString("user:pass@gw.example.com:10000")}, o.Proxy.Proxies)
	assert.Equal(t, 40, o.HTTP.TimeoutSec)
	assert.True(t, o.Output.SkipSample)
	assert.Equal(t, "debug", o.Logging.Level)
	assert.Empty(t, o.Output.Path)
}

func TestNegativeMaxReelsIsNotAnOverride(t *testing.T) {
	cmd := newFlagCommand(t)
	require.NoError(t, cmd.Flags().Set("max-reels", "-1"))

	assert.Nil(t, overridesFromFlags(cmd).Scrape.MaxReelsPerPage)
}

func TestExplicitLogLevelWinsOverVerbosity(t *testing.T) {
	cmd := newFlagCommand(t)
	logLevel, verbosity = "error", 2

	assert.Equal(t, "error", overridesFromFlags(cmd).Logging.Level)
}

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		format string
		want   string
	}{
		{"default json", filepath.Join("data", "output.json"), "json", filepath.Join("data", "output.json")},
		{"default follows csv", filepath.Join("data", "output.json"), "csv", filepath.Join("data", "output.csv")},
		{"default follows excel", filepath.Join("data", "output.json"), "excel", filepath.Join("data", "output.xlsx")},
		{"unknown format stays json", filepath.Join("data", "output.json"), "yaml", filepath.Join("data", "output.json")},
		{"explicit path kept", "reels.txt", "csv", "reels.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Output.Path = tt.path
			cfg.Output.Format = tt.format
			assert.Equal(t, tt.want, resolveOutputPath(cfg))
		})
	}
}

func TestRedactedMasksProxyPassword(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Proxy.Enabled = true
	cfg.Proxy.Proxies = []proxy.Spec{proxy.FromString("user:secret@gw.example.com:10000")}

	data, err := yaml.Marshal(redacted(cfg))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.Contains(t, string(data), "gw.example.com:10000")

	assert.Equal(t, "user:secret@gw.example.com:10000", cfg.Proxy.Proxies[0].Raw, "original config must not change")
}

func TestExampleConfigLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "reelscraper.yaml")

	configFile = path
	t.Cleanup(func() { configFile = "" })
	require.NoError(t, runConfigInit(initCmd, nil))
	assert.Error(t, runConfigInit(initCmd, nil), "init must not overwrite")

	cfg, err := config.Load(config.LoadOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Proxy.Enabled)
	assert.Nil(t, cfg.Scrape.MaxReelsPerPage)
}

type stubDashboard struct {
	err error
}

func (d stubDashboard) Start() error { return d.err }

func TestRunWithDashboardCancelsScrapeWhenUIFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopped := make(chan struct{})
	err := runWithDashboard(stubDashboard{err: errors.New("no tty")}, cancel, func() {
		select {
		case <-ctx.Done():
			close(stopped)
		case <-time.After(5 * time.Second):
		}
	})

	assert.EqualError(t, err, "no tty")
	select {
	case <-stopped:
	default:
		t.Fatal("scrape kept running after the dashboard failed")
	}
}

func TestRunWithDashboardWaitsForScrape(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	finished := false
	err := runWithDashboard(stubDashboard{}, cancel, func() {
		time.Sleep(10 * time.Millisecond)
		finished = true
	})

	require.NoError(t, err)
	assert.True(t, finished)
	assert.NoError(t, ctx.Err(), "a clean dashboard exit must not cancel the scrape")
}
