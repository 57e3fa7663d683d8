// Package expander reveals the hidden detail rows of the results table.
package expander

import (
	"context"
	"time"

	"github.com/hied-data/deitrack/internal/scrape/script"
	"github.com/rs/zerolog/log"
)

// Evaluator dispatches a JS expression to the live page.
type Evaluator interface {
	Eval(ctx context.Context, expr string, res interface{}) error
}

// Config sets the settle delays used between expansion actions.
type Config struct {
	// AfterClick is the pause after a dispatched click, letting the
	// detail row render asynchronously.
	AfterClick time.Duration
	// BetweenRows is the pause between consecutive row expansions.
	BetweenRows time.Duration
}

// Expander expands all data rows on the current page.
type Expander struct {
	eval Evaluator
	cfg  Config
}

// New creates an Expander bound to the given page evaluator.
func New(eval Evaluator, cfg Config) *Expander {
	return &Expander{eval: eval, cfg: cfg}
}

// ExpandAll expands every currently visible data row and returns how many
// expand actions were dispatched. Rows are addressed by index and
// re-queried inside the page on each action; a row whose every click
// strategy fails is skipped, leaving its detail fields empty rather than
// aborting the page.
func (e *Expander) ExpandAll(ctx context.Context) int {
	var count int
	if err := e.eval.Eval(ctx, script.RowCount(), &count); err != nil {
		log.Debug().Err(err).Msg("Could not count data rows")
		return 0
	}
	if count == 0 {
		return 0
	}

	log.Info().Int("rows", count).Msg("Expanding rows")

	expanded := 0
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return expanded
		}
		action, err := e.expandRow(ctx, i)
		if err != nil {
			log.Debug().Err(err).Int("row", i).Msg("Could not expand row")
			continue
		}
		switch action {
		case "missing":
			// The live row set shrank underneath us; stop.
			return expanded
		case "opened":
			// Already expanded, nothing dispatched.
		default:
			expanded++
			time.Sleep(e.cfg.AfterClick)
		}
		time.Sleep(e.cfg.BetweenRows)
	}
	return expanded
}

func (e *Expander) expandRow(ctx context.Context, index int) (string, error) {
	snippet := script.ExpandRow(index)
	if err := script.Check(snippet); err != nil {
		return "", err
	}
	var action string
	if err := e.eval.Eval(ctx, snippet, &action); err != nil {
		return "", err
	}
	return action, nil
}
