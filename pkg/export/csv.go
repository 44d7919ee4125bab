package export

import (
	"encoding/csv"
	"io"

	"github.com/Bella040/facebook-reel-scraper/pkg/reel"
)

// CSV writes a header row of record keys followed by one row per record.
// Null fields become empty cells.
func CSV(w io.Writer, records []reel.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reel.Columns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
