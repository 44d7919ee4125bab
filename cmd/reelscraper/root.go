package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Bella040/facebook-reel-scraper/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile   string
	settingsFile string
	logLevel     string
	verbosity    int
	quiet        bool
	noColor      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reelscraper",
	Short: "Collect reel metadata from public Facebook pages",
	Long: `Facebook Reel Scraper visits public Facebook pages, follows the reel links
found on them and extracts one metadata record per reel: caption, owner,
play/like/comment/share counts, duration, music and publish time.

Records are exported as JSON, CSV, Excel or an HTML report.

Running the bare command with scrape flags is the same as 'reelscraper scrape'.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetQuietMode(quiet)
		ui.SetColor(!noColor && ui.IsTerminal(os.Stdout))

		if cmd.Name() != "version" && cmd.Name() != "help" && !useTUI {
			ui.PrintLogo()
		}
	},
	RunE:          runScrape,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.SetQuietMode(false)
		ui.PrintError("Error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./.reelscraper.yaml or ~/.config/reelscraper/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&settingsFile, "settings", "s", "", "settings.json in the flat camelCase layout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	addScrapeFlags(rootCmd)

	rootCmd.SetVersionTemplate(`Facebook Reel Scraper {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
