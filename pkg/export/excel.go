package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Bella040/facebook-reel-scraper/pkg/reel"
)

// SheetName is the worksheet holding the records
const SheetName = "Reels"

// Excel writes an .xlsx workbook with a bold header row and one row per
// record. Null fields are left blank.
func Excel(w io.Writer, records []reel.Record) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(reel.Columns))
	for i, key := range reel.Columns {
		header[i] = key
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return err
	}

	for i, rec := range records {
		row := make([]interface{}, len(reel.Columns))
		for j, key := range reel.Columns {
			if v, ok := rec.Get(key); ok {
				row[j] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
