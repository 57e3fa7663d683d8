// Package parser turns a captured page snapshot into records.
//
// The whole page is parsed once per visit; extracting each row from a
// single snapshot is far cheaper than a browser round-trip per row, and
// it reads a consistent DOM even if the page keeps mutating afterwards.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	urlutil "github.com/hied-data/deitrack/internal/utils/url"
	"github.com/hied-data/deitrack/pkg/models"
)

var (
	// ErrNoRowID marks a row without a usable identifier.
	ErrNoRowID = errors.New("row has no id")
	// ErrTooFewCells marks a row with fewer than the minimum data cells.
	ErrTooFewCells = errors.New("row has fewer than 3 cells")
)

// ParsePage extracts every data row from a full page snapshot. Rows that
// fail extraction are skipped, not fatal. baseURL resolves relative
// source links.
func ParsePage(pageHTML, baseURL string) ([]models.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	rows := doc.Find("tr.result")
	if rows.Length() == 0 {
		// Markup drift fallback: any identified row with enough cells.
		rows = doc.Find("tr[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			id, _ := s.Attr("id")
			return isDigits(id) && s.Find("td").Length() >= 4
		})
	}

	records := make([]models.Record, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		id, _ := row.Attr("id")
		details := doc.Find(fmt.Sprintf("tr[id=%q]", "details_"+id))
		rec, err := ExtractRecord(row, details, baseURL)
		if err != nil {
			log.Debug().Err(err).Str("row_id", id).Msg("Skipping row")
			return
		}
		records = append(records, rec)
	})

	log.Debug().Int("rows", rows.Length()).Int("records", len(records)).Msg("Page parsed")
	return records, nil
}

// ExtractRecord builds a Record from a main row and its optional detail
// row. Main cells are positional: institution, state, impacts, source.
// A row without an id or with fewer than 3 cells yields no Record; a
// missing detail row yields empty detail fields, not a missing Record.
func ExtractRecord(row, details *goquery.Selection, baseURL string) (models.Record, error) {
	id, _ := row.Attr("id")
	if id == "" {
		return models.Record{}, ErrNoRowID
	}

	cells := row.Find("td")
	if cells.Length() < 3 {
		return models.Record{}, ErrTooFewCells
	}

	rec := models.Record{
		RowID:       id,
		Institution: strings.TrimSpace(cells.Eq(0).Text()),
		State:       strings.TrimSpace(cells.Eq(1).Text()),
		Impacts:     strings.TrimSpace(cells.Eq(2).Text()),
		SourceLinks: []string{},
	}

	if cells.Length() > 3 {
		source := cells.Eq(3)
		rec.Source = strings.TrimSpace(source.Text())
		// Document order, duplicates preserved.
		source.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if href != "" {
				rec.SourceLinks = append(rec.SourceLinks, urlutil.Resolve(baseURL, href))
			}
		})
	}

	rec.Details, rec.StateStatus, rec.DetailsHTML = extractDetails(details)
	return rec, nil
}

// extractDetails pulls the free-text fields out of the detail cell,
// attempting the structured marker walk first and filling any fields
// still empty from the line-oriented fallback. A non-empty structured
// value is never overwritten by the fallback.
func extractDetails(details *goquery.Selection) (detailsText, statusText, rawHTML string) {
	if details == nil || details.Length() == 0 {
		return "", "", ""
	}
	cell := details.Find("td.details").First()
	if cell.Length() == 0 {
		return "", "", ""
	}

	rawHTML, _ = cell.Html()

	detailsText = structuredDetails(cell)
	statusText = structuredStatus(cell)

	if detailsText == "" || statusText == "" {
		fbDetails, fbStatus := classifyLines(textLines(cell))
		if detailsText == "" {
			detailsText = fbDetails
		}
		if statusText == "" {
			statusText = fbStatus
		}
	}
	return detailsText, statusText, rawHTML
}

// structuredDetails gathers the text between the bold "Details" marker
// and the bold "status:" marker, dropping line breaks and surrounding
// quote characters.
func structuredDetails(cell *goquery.Selection) string {
	marker := findMarker(cell, func(text string) bool {
		return strings.Contains(text, "Details")
	})
	if marker == nil {
		return ""
	}

	var parts []string
	for n := marker.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.Data == "br" {
			continue
		}
		if n.Type == html.ElementNode && n.Data == "b" &&
			strings.Contains(strings.ToLower(nodeText(n)), "status:") {
			break
		}
		text := strings.TrimSpace(nodeText(n))
		if text == "" || strings.Contains(strings.ToLower(text), "status:") {
			continue
		}
		parts = append(parts, strings.Trim(text, `"`))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// structuredStatus reads the value of the bold "status:" marker,
// preferring an inline value after the colon and otherwise taking the
// next non-empty sibling text.
func structuredStatus(cell *goquery.Selection) string {
	marker := findMarker(cell, func(text string) bool {
		return strings.Contains(strings.ToLower(text), "status:")
	})
	if marker == nil {
		return ""
	}

	var status string
	markerText := nodeText(marker)
	if idx := strings.Index(markerText, ":"); idx >= 0 {
		status = strings.TrimSpace(markerText[idx+1:])
	}

	for n := marker.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.Data == "br" {
			continue
		}
		text := strings.Trim(strings.TrimSpace(nodeText(n)), `"`)
		if text != "" {
			status = text
			break
		}
	}
	return status
}

// findMarker returns the first <b> node in the cell whose text satisfies
// match.
func findMarker(cell *goquery.Selection, match func(string) bool) *html.Node {
	var marker *html.Node
	cell.Find("b").EachWithBreak(func(_ int, b *goquery.Selection) bool {
		if len(b.Nodes) > 0 && match(b.Text()) {
			marker = b.Nodes[0]
			return false
		}
		return true
	})
	return marker
}

// textLines renders the cell as non-empty trimmed lines, one per text
// node, for the line-oriented fallback.
func textLines(cell *goquery.Selection) []string {
	var lines []string
	for _, root := range cell.Nodes {
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.TextNode {
				if text := strings.TrimSpace(n.Data); text != "" {
					lines = append(lines, text)
				}
				return
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(root)
	}
	return lines
}

// classifyLines buckets rendered lines into details and status text. A
// line containing "Details" switches to details mode; a line containing
// "status:" switches to status mode, with any text after the first colon
// used as the initial status value.
func classifyLines(lines []string) (detailsText, statusText string) {
	var inDetails, inStatus bool
	var detailsParts, statusParts []string

	for _, line := range lines {
		if strings.Contains(line, "Details") && !inDetails {
			inDetails, inStatus = true, false
			continue
		}
		if strings.Contains(strings.ToLower(line), "status:") {
			inDetails, inStatus = false, true
			if idx := strings.Index(line, ":"); idx >= 0 {
				if v := strings.Trim(strings.TrimSpace(line[idx+1:]), `"`); v != "" {
					statusParts = append(statusParts, v)
				}
			}
			continue
		}
		if inDetails {
			detailsParts = append(detailsParts, strings.Trim(line, `"`))
		} else if inStatus {
			statusParts = append(statusParts, strings.Trim(line, `"`))
		}
	}
	return strings.Join(detailsParts, " "), strings.Join(statusParts, " ")
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
