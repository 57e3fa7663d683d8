// Package export writes scraped records to the configured output
// formats. Each format is attempted independently so a locked XLSX file
// does not cost the CSV and JSON outputs.
package export

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hied-data/deitrack/pkg/models"
)

// Options selects output targets. An empty path disables that format.
type Options struct {
	CSVPath      string
	JSONPath     string
	XLSXPath     string
	MarkdownPath string
	DisplayTable bool
	DisplayRows  int
	BaseURL      string
}

// Run writes records to every enabled format, best effort. It returns an
// error only when every enabled file format failed.
func Run(records []models.Record, opts Options) error {
	type attempt struct {
		name string
		path string
		fn   func() error
	}

	attempts := []attempt{}
	if opts.CSVPath != "" {
		attempts = append(attempts, attempt{"csv", opts.CSVPath, func() error { return SaveCSV(records, opts.CSVPath) }})
	}
	if opts.JSONPath != "" {
		attempts = append(attempts, attempt{"json", opts.JSONPath, func() error { return SaveJSON(records, opts.JSONPath) }})
	}
	if opts.XLSXPath != "" {
		attempts = append(attempts, attempt{"xlsx", opts.XLSXPath, func() error { return SaveXLSX(records, opts.XLSXPath) }})
	}
	if opts.MarkdownPath != "" {
		attempts = append(attempts, attempt{"markdown", opts.MarkdownPath, func() error {
			return SaveMarkdown(records, opts.MarkdownPath, opts.BaseURL)
		}})
	}

	failed := 0
	for _, a := range attempts {
		if err := a.fn(); err != nil {
			failed++
			log.Error().Err(err).Str("format", a.name).Str("path", a.path).Msg("Export failed")
			continue
		}
		log.Info().Str("format", a.name).Str("path", a.path).Int("records", len(records)).Msg("Export written")
	}

	if opts.DisplayTable {
		PrintTable(records, opts.DisplayRows)
	}

	if len(attempts) > 0 && failed == len(attempts) {
		return fmt.Errorf("all %d export formats failed", failed)
	}
	return nil
}
