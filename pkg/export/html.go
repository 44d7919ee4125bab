package export

import (
	"html/template"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Bella040/facebook-reel-scraper/pkg/reel"
)

// ReportTitle is the title of the HTML report
const ReportTitle = "Facebook Reel Scraper Results"

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; }
th { background: #f4f4f4; text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Table}}
</body>
</html>
`))

// HTML writes a standalone page containing a table of all records
func HTML(w io.Writer, records []reel.Record) error {
	return reportTemplate.Execute(w, struct {
		Title string
		Table template.HTML
	}{
		Title: ReportTitle,
		Table: template.HTML(renderTable(records)),
	})
}

// renderTable renders records as an escaped HTML table
func renderTable(records []reel.Record) string {
	t := table.NewWriter()
	t.Style().HTML = table.HTMLOptions{
		CSSClass:   "reels",
		EscapeText: true,
		Newline:    "<br/>",
	}
	t.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(reel.Columns))
	for i, key := range reel.Columns {
		header[i] = key
	}
	t.AppendHeader(header)

	for _, rec := range records {
		values := rec.Row()
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = v
		}
		t.AppendRow(row)
	}
	return t.RenderHTML()
}
