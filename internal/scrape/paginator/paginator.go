// Package paginator determines page bounds and advances the results table.
package paginator

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hied-data/deitrack/internal/scrape/script"
)

// PageSize is the fixed number of rows per page on the target table.
const PageSize = 25

var totalPattern = regexp.MustCompile(`of\s+(\d+)`)

// Evaluator dispatches a JS expression to the live page.
type Evaluator interface {
	Eval(ctx context.Context, expr string, res interface{}) error
}

// Source captures the current page markup.
type Source interface {
	HTML(ctx context.Context) (string, error)
}

// Config sets the settle delays around a page advance.
type Config struct {
	// ScrollSettle is the pause after scrolling the pagination controls
	// into the rendered viewport.
	ScrollSettle time.Duration
	// AfterAdvance is the pause after a successful next-page click,
	// letting the new page render.
	AfterAdvance time.Duration
}

// Paginator inspects and drives the table's pagination controls.
type Paginator struct {
	eval   Evaluator
	source Source
	cfg    Config
}

// New creates a Paginator bound to the given page.
func New(eval Evaluator, source Source, cfg Config) *Paginator {
	return &Paginator{eval: eval, source: source, cfg: cfg}
}

// PagesFromSummary parses a pagination summary like "Showing 1–25 of 300"
// and returns the page count at PageSize rows per page, rounded up.
func PagesFromSummary(text string) (int, bool) {
	m := totalPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	total, err := strconv.Atoi(m[1])
	if err != nil || total <= 0 {
		return 0, false
	}
	return int(math.Ceil(float64(total) / PageSize)), true
}

// TotalPagesFromDoc determines the page count from a page snapshot:
// summary text first, then a count of page-number controls, then 1,
// leaving the caller to iterate until Advance fails.
func TotalPagesFromDoc(doc *goquery.Document) int {
	summary := doc.Find(".pagination-info, [class*='pagination'], [class*='count']").First()
	if summary.Length() > 0 {
		if pages, ok := PagesFromSummary(summary.Text()); ok {
			return pages
		}
	}

	if controls := doc.Find(".page-number, [class*='page']").Length(); controls > 0 {
		return controls
	}

	log.Warn().Msg("Could not determine total pages, will scrape until no more data")
	return 1
}

// TotalPages captures the current page and determines the page count.
func (p *Paginator) TotalPages(ctx context.Context) int {
	pageHTML, err := p.source.HTML(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Could not capture page for pagination summary")
		return 1
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		log.Debug().Err(err).Msg("Could not parse page for pagination summary")
		return 1
	}
	return TotalPagesFromDoc(doc)
}

// Advance clicks the next-page control and waits for the new page to
// settle. It returns false when no enabled control exists or every click
// attempt failed; that is the normal end-of-data condition, not an error.
func (p *Paginator) Advance(ctx context.Context) bool {
	if err := p.eval.Eval(ctx, script.ScrollToBottom(), nil); err != nil {
		log.Debug().Err(err).Msg("Could not scroll to pagination controls")
		return false
	}
	time.Sleep(p.cfg.ScrollSettle)

	snippet := script.ClickNext()
	if err := script.Check(snippet); err != nil {
		log.Error().Err(err).Msg("Next-page snippet failed validation")
		return false
	}

	var clicked bool
	if err := p.eval.Eval(ctx, snippet, &clicked); err != nil {
		log.Debug().Err(err).Msg("Next-page click dispatch failed")
		return false
	}
	if !clicked {
		log.Warn().Msg("Could not find or click next page button")
		return false
	}

	time.Sleep(p.cfg.AfterAdvance)
	log.Info().Msg("Advanced to next page")
	return true
}
