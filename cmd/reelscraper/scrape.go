package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Bella040/facebook-reel-scraper/pkg/config"
	"github.com/Bella040/facebook-reel-scraper/pkg/datetime"
	"github.com/Bella040/facebook-reel-scraper/pkg/export"
	"github.com/Bella040/facebook-reel-scraper/pkg/facebook"
	"github.com/Bella040/facebook-reel-scraper/pkg/input"
	"github.com/Bella040/facebook-reel-scraper/pkg/logger"
	"github.com/Bella040/facebook-reel-scraper/pkg/proxy"
	"github.com/Bella040/facebook-reel-scraper/pkg/reel"
	"github.com/Bella040/facebook-reel-scraper/pkg/scraper"
	"github.com/Bella040/facebook-reel-scraper/pkg/ui"
	"github.com/Bella040/facebook-reel-scraper/pkg/ui/tui"
)

const defaultInputPath = "data/sample_input.json"

var (
	// Scrape command flags
	inputPath   string
	outputPath  string
	format      string
	maxReels    int
	timezone    string
	proxyRaw    string
	timeoutSec  int
	maxRetries  int
	rateLimit   int
	noSample    bool
	showSummary bool
	useTUI      bool
	notify      bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape reel metadata from the pages listed in an input file",
	Long: `Scrape every page listed in the input file and export one record per reel.

The input file is JSON (comments and trailing commas allowed) holding either a
list of pages or an object with a "pages" list. Each page is a URL string or an
object with "url" and an optional "maxReels" cap (null means no cap).

Pages that fail are logged and skipped. The export is always written, even
when nothing was scraped.`,
	Example: `  # Scrape the pages in data/sample_input.json and write data/output.json
  reelscraper scrape

  # Write an Excel workbook with at most 5 reels per page
  reelscraper scrape -i pages.json -f excel -o data/reels.xlsx --max-reels 5

  # Go through a proxy and normalize dates to UTC
  reelscraper -i pages.json --proxy user:pass@gw.example.com:10000 --timezone UTC

  # Follow progress in the terminal dashboard
  reelscraper scrape --tui`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	addScrapeFlags(scrapeCmd)
}

// addScrapeFlags registers the scrape flags on cmd so the bare root command
// accepts them too
func addScrapeFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&inputPath, "input", "i", defaultInputPath, "input file listing the pages to scrape")
	fs.StringVarP(&outputPath, "output", "o", "", "output file (default data/output.<format>)")
	fs.StringVarP(&format, "format", "f", "", "output format: "+strings.Join(export.Formats(), ", "))
	fs.IntVar(&maxReels, "max-reels", 0, "default cap on reels per page (negative for no cap)")
	fs.StringVar(&timezone, "timezone", "", "IANA timezone used to normalize dates (default "+datetime.DefaultZone+")")
	fs.StringVar(&proxyRaw, "proxy", "", "proxy as host:port, user:pass@host:port or a URL")
	fs.IntVar(&timeoutSec, "timeout", 0, "request timeout in seconds")
	fs.IntVar(&maxRetries, "max-retries", 0, "maximum number of retry attempts per request")
	fs.IntVar(&rateLimit, "rate-limit", 0, "requests per minute (0 for unlimited)")
	fs.BoolVar(&noSample, "no-sample", false, "do not write the sample output file")
	fs.BoolVar(&showSummary, "summary", true, "print a summary table after the run")
	fs.BoolVar(&useTUI, "tui", false, "use interactive terminal UI with real-time progress")
	fs.BoolVar(&notify, "notify", false, "send a desktop notification when the run ends")
}

// overridesFromFlags builds a config holding only the flags the user set
func overridesFromFlags(cmd *cobra.Command) *config.Config {
	changed := cmd.Flags().Changed
	o := &config.Config{}

	if changed("output") {
		o.Output.Path = outputPath
	}
	if changed("format") {
		o.Output.Format = format
	}
	if changed("max-reels") && maxReels >= 0 {
		n := maxReels
		o.Scrape.MaxReelsPerPage = &n
	}
	if changed("timezone") {
		o.Scrape.Timezone = timezone
	}
	if changed("proxy") && proxyRaw != "" {
		o.Proxy.Enabled = true
		o.Proxy.Proxies = []proxy.Spec{proxy.FromString(proxyRaw)}
	}
	if changed("timeout") {
		o.HTTP.TimeoutSec = timeoutSec
	}
	if changed("max-retries") {
		o.HTTP.MaxRetries = maxRetries
	}
	if changed("rate-limit") {
		o.HTTP.RequestsPerMinute = rateLimit
	}
	if noSample {
		o.Output.SkipSample = true
	}

	if logLevel != "" {
		o.Logging.Level = logLevel
	} else if verbosity > 0 {
		o.Logging.Level = logger.LevelForVerbosity(verbosity)
	}
	return o
}

// resolveOutputPath keeps the default output file name in step with the format
func resolveOutputPath(cfg *config.Config) string {
	path := cfg.Output.Path
	if path != config.DefaultConfig().Output.Path {
		return path
	}
	resolved, _ := export.Resolve(cfg.Output.Format)
	ext := resolved
	if resolved == export.FormatExcel {
		ext = "xlsx"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath:   configFile,
		SettingsPath: settingsFile,
		Overrides:    overridesFromFlags(cmd),
	})
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-reels") && maxReels < 0 {
		cfg.Scrape.MaxReelsPerPage = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	var dash *tui.TUI
	var log logger.Logger
	if useTUI {
		dash = tui.New(cancelRun)
		log, err = logger.NewConsole(&cfg.Logging, dash)
	} else {
		log, err = logger.New(&cfg.Logging)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	runID := uuid.NewString()
	log = log.WithField("run_id", runID)
	logger.SetLogger(log)

	targets, err := input.Load(inputPath, cfg.Scrape.MaxReelsPerPage)
	if err != nil {
		return err
	}

	client, err := facebook.NewClientFromConfig(cfg, log)
	if err != nil {
		return err
	}
	extractor := reel.NewExtractor(
		reel.WithNormalizer(datetime.NewForZone(cfg.Scrape.Timezone)),
		reel.WithLogger(log),
	)

	var tracker ui.Tracker = ui.NopTracker{}
	switch {
	case dash != nil:
		tracker = dash
	case !ui.IsQuietMode():
		tracker = ui.NewProgressDisplay(verbosity > 0)
	}

	s := scraper.New(client, extractor, scraper.WithTracker(tracker), scraper.WithLogger(log))

	var records []reel.Record
	if dash != nil {
		if err := runWithDashboard(dash, cancelRun, func() {
			records = s.Run(runCtx, targets)
		}); err != nil {
			return fmt.Errorf("terminal UI failed: %w", err)
		}

		// The dashboard is gone, later lines go to stderr
		if log, err = logger.New(&config.LoggingConfig{Level: cfg.Logging.Level}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log = log.WithField("run_id", runID)
		logger.SetLogger(log)
	} else {
		records = s.Run(runCtx, targets)
	}
	interrupted := ctx.Err() != nil || (dash != nil && !dash.Finished())

	path := resolveOutputPath(cfg)
	if err := export.Write(path, cfg.Output.Format, records, log); err != nil {
		if notify {
			ui.NewNotifier().SendError("Reel scrape failed", err.Error())
		}
		return err
	}
	if !cfg.Output.SkipSample {
		export.WriteSample(cfg.Output.SamplePath, records, log)
	}

	if showSummary && !ui.IsQuietMode() {
		printSummary(s.Stats(), path)
	}

	msg := fmt.Sprintf("Exported %d records to: %s", len(records), path)
	if interrupted {
		ui.PrintWarning("Run interrupted, partial results kept")
	}
	ui.PrintSuccess("Done. " + msg)
	if notify {
		ui.NewNotifier().SendSuccess("Reel scrape finished", msg)
	}
	return nil
}

// dashboard is the part of the terminal UI that owns the foreground
type dashboard interface {
	Start() error
}

// runWithDashboard runs scrape in the background while dash holds the
// terminal. If the dashboard fails, cancel stops the scrape before returning.
func runWithDashboard(dash dashboard, cancel context.CancelFunc, scrape func()) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		scrape()
	}()

	err := dash.Start()
	if err != nil {
		cancel()
	}
	<-done
	return err
}

func printSummary(stats scraper.Stats, path string) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Scrape summary")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Pages", stats.Pages},
		{"Failed pages", stats.FailedPages},
		{"Reel links", stats.Links},
		{"Records", stats.Records},
		{"Failed reels", stats.FailedReels},
		{"Duration", stats.Duration.Round(time.Millisecond).String()},
		{"Output", path},
	})
	ui.Printf("\n%s\n\n", t.Render())
}
