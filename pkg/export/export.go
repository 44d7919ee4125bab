// Package export writes scraped reel records as JSON, CSV, Excel or HTML.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Bella040/facebook-reel-scraper/pkg/logger"
	"github.com/Bella040/facebook-reel-scraper/pkg/reel"
	"github.com/Bella040/facebook-reel-scraper/pkg/storage"
)

// Supported output formats
const (
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatHTML  = "html"
)

// SampleSize is the number of records kept in the sample file
const SampleSize = 2

// Encoder renders records to w
type Encoder func(w io.Writer, records []reel.Record) error

var encoders = map[string]Encoder{
	FormatJSON:  JSON,
	FormatCSV:   CSV,
	FormatExcel: Excel,
	FormatHTML:  HTML,
}

// Formats lists the supported format names
func Formats() []string {
	return []string{FormatJSON, FormatCSV, FormatExcel, FormatHTML}
}

// Resolve returns the canonical format for name and whether it is known.
// Unknown names resolve to JSON.
func Resolve(name string) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(name))
	if _, ok := encoders[format]; ok {
		return format, true
	}
	return FormatJSON, false
}

// Write atomically writes records to path in the given format. An unknown
// format is logged as a warning and written as JSON.
func Write(path, format string, records []reel.Record, log logger.Logger) error {
	if log == nil {
		log = logger.GetLogger()
	}
	resolved, ok := Resolve(format)
	if !ok {
		log.WarnWithFields("Unknown output format, defaulting to JSON", map[string]interface{}{
			"format": format,
		})
	}

	log.InfoWithFields("Exporting records", map[string]interface{}{
		"records": len(records),
		"path":    path,
		"format":  resolved,
	})

	encode := encoders[resolved]
	if err := storage.WriteAtomic(path, func(w io.Writer) error {
		return encode(w, records)
	}); err != nil {
		return fmt.Errorf("failed to export %s: %w", resolved, err)
	}
	return nil
}

// WriteSample stores the first SampleSize records as JSON at path unless a
// file already exists there. Failures are logged and otherwise ignored.
func WriteSample(path string, records []reel.Record, log logger.Logger) {
	if log == nil {
		log = logger.GetLogger()
	}
	if path == "" || storage.Exists(path) {
		return
	}

	sample := records
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	if err := storage.WriteAtomic(path, func(w io.Writer) error {
		return JSON(w, sample)
	}); err != nil {
		log.WithError(err).Debug("Failed to write sample output")
	}
}
