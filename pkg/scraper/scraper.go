// Package scraper walks listing pages, follows the reel links found on them
// and extracts one record per reel.
package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/Bella040/facebook-reel-scraper/pkg/facebook"
	"github.com/Bella040/facebook-reel-scraper/pkg/input"
	"github.com/Bella040/facebook-reel-scraper/pkg/logger"
	"github.com/Bella040/facebook-reel-scraper/pkg/reel"
	"github.com/Bella040/facebook-reel-scraper/pkg/ui"
)

// Stats summarizes the most recent Run
type Stats struct {
	Pages       int
	FailedPages int
	Links       int
	Records     int
	FailedReels int
	Duration    time.Duration
}

// Scraper orchestrates fetching and extraction
type Scraper struct {
	fetcher   PageFetcher
	extractor RecordExtractor
	tracker   ui.Tracker
	logger    logger.Logger
	stats     Stats
}

// Option configures a Scraper
type Option func(*Scraper)

// WithTracker reports progress to t
func WithTracker(t ui.Tracker) Option {
	return func(s *Scraper) { s.tracker = t }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(s *Scraper) { s.logger = l }
}

// New creates a new Scraper instance
func New(fetcher PageFetcher, extractor RecordExtractor, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:   fetcher,
		extractor: extractor,
		tracker:   ui.NopTracker{},
		logger:    logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns counters from the last Run
func (s *Scraper) Stats() Stats {
	return s.stats
}

// Run scrapes every target in order and returns all extracted records.
// Failures are logged and skipped; cancellation returns what was collected.
func (s *Scraper) Run(ctx context.Context, targets []input.Target) []reel.Record {
	start := time.Now()
	s.stats = Stats{}
	records := make([]reel.Record, 0)

	s.logger.InfoWithFields("Starting scrape", map[string]interface{}{
		"pages": len(targets),
	})

	for _, target := range targets {
		if ctx.Err() != nil {
			s.logger.Warn("Scrape cancelled")
			break
		}
		if err := facebook.ValidatePageURL(target.URL); err != nil {
			s.logger.WithError(err).WithField("page", target.URL).Warn("Skipping invalid page URL")
			s.tracker.FailPage(target.URL, err)
			continue
		}

		s.stats.Pages++
		pageRecords, err := s.ScrapePage(ctx, target)
		if err != nil {
			s.stats.FailedPages++
			s.logger.WithError(err).WithField("page", target.URL).Warn("Failed to scrape page")
			s.tracker.FailPage(target.URL, err)
		}
		records = append(records, pageRecords...)
	}

	s.stats.Records = len(records)
	s.stats.Duration = time.Since(start)
	s.tracker.Finish(len(records))

	s.logger.InfoWithFields("Scrape finished", map[string]interface{}{
		"pages":        s.stats.Pages,
		"failed_pages": s.stats.FailedPages,
		"records":      s.stats.Records,
		"failed_reels": s.stats.FailedReels,
		"duration":     s.stats.Duration,
	})
	return records
}

// ScrapePage fetches one listing page and extracts every reel it links to.
// An error is returned only when the listing page itself cannot be fetched.
func (s *Scraper) ScrapePage(ctx context.Context, target input.Target) ([]reel.Record, error) {
	markup, err := s.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	links := reel.DiscoverLinks(target.URL, markup, target.MaxReels)
	s.stats.Links += len(links)
	s.tracker.StartPage(target.URL, len(links))
	s.logger.InfoWithFields("Discovered reel links", map[string]interface{}{
		"page":  target.URL,
		"links": len(links),
	})

	records := make([]reel.Record, 0, len(links))
	for i, link := range links {
		if ctx.Err() != nil {
			break
		}

		rec, err := s.scrapeReel(ctx, link)
		if err != nil {
			s.stats.FailedReels++
			s.logger.WithError(err).WithField("reel", link).Warn("Failed to scrape reel")
			s.tracker.FailReel(target.URL, link, err)
		} else {
			records = append(records, rec)
			s.tracker.CompleteReel(target.URL, link, rec.String())
		}
		logger.LogPageProgress(s.logger, target.URL, i+1, len(links))
	}
	return records, nil
}

func (s *Scraper) scrapeReel(ctx context.Context, link string) (reel.Record, error) {
	markup, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return reel.Record{}, err
	}
	return s.extractSafely(markup, link)
}

// extractSafely turns a panic inside extraction into an error for this reel only
func (s *Scraper) extractSafely(markup, link string) (rec reel.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.DebugWithFields("Recovered from extraction panic", map[string]interface{}{
				"reel":  link,
				"panic": fmt.Sprint(r),
			})
			err = fmt.Errorf("extraction panicked: %v", r)
		}
	}()
	return s.extractor.Extract(markup, link), nil
}
