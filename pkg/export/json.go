package export

import (
	"encoding/json"
	"io"

	"github.com/Bella040/facebook-reel-scraper/pkg/reel"
)

// JSON writes records as an indented array. Non-ASCII text and HTML
// characters are kept as is.
func JSON(w io.Writer, records []reel.Record) error {
	if records == nil {
		records = []reel.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
