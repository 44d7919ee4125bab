package scraper

import (
	"context"

	"github.com/Bella040/facebook-reel-scraper/pkg/reel"
)

// PageFetcher defines the interface for retrieving page markup
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RecordExtractor defines the interface for turning reel markup into a record
type RecordExtractor interface {
	Extract(markup, pageURL string) reel.Record
}
