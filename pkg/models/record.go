package models

import "strings"

// Record is one extracted row of the tracking table. It is constructed
// once per row per page visit and never mutated afterwards.
type Record struct {
	Institution string   `json:"institution"`
	State       string   `json:"state"`
	Impacts     string   `json:"impacts"`
	Source      string   `json:"source"`
	SourceLinks []string `json:"source_links"`
	Details     string   `json:"details"`
	StateStatus string   `json:"state_status"`
	RowID       string   `json:"row_id"`

	// DetailsHTML carries the raw markup of the detail cell for the
	// Markdown exporter. It is not part of the record schema.
	DetailsHTML string `json:"-"`
}

// FieldNames is the canonical column order for flat exports (CSV, XLSX).
var FieldNames = []string{
	"institution",
	"state",
	"impacts",
	"source",
	"source_links",
	"details",
	"state_status",
	"row_id",
}

// LinkSeparator joins source_links in flat formats.
const LinkSeparator = "; "

// Row returns the record's values in FieldNames order, with source
// links joined for flat formats.
func (r Record) Row() []string {
	return []string{
		r.Institution,
		r.State,
		r.Impacts,
		r.Source,
		strings.Join(r.SourceLinks, LinkSeparator),
		r.Details,
		r.StateStatus,
		r.RowID,
	}
}
