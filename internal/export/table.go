package export

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hied-data/deitrack/pkg/models"
)

const cellTruncateAt = 60

// PrintTable renders up to maxRows records as a terminal table on
// stdout. Long cells are truncated; the full values live in the file
// exports.
func PrintTable(records []models.Record, maxRows int) {
	if len(records) == 0 {
		fmt.Println("No records to display")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Institution", "State", "Impacts", "Source", "Details"})

	shown := len(records)
	if maxRows > 0 && shown > maxRows {
		shown = maxRows
	}
	for _, rec := range records[:shown] {
		t.AppendRow(table.Row{
			truncate(rec.Institution),
			rec.State,
			truncate(rec.Impacts),
			truncate(rec.Source),
			truncate(rec.Details),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	if remaining := len(records) - shown; remaining > 0 {
		fmt.Printf("... and %d more rows\n", remaining)
	}
}

func truncate(s string) string {
	if len(s) <= cellTruncateAt {
		return s
	}
	return s[:cellTruncateAt-3] + "..."
}
