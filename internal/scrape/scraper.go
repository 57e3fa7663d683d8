// Package scrape orchestrates a full crawl of the tracker table: login,
// row expansion, page capture and pagination.
package scrape

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/hied-data/deitrack/internal/browser"
	"github.com/hied-data/deitrack/internal/config"
	"github.com/hied-data/deitrack/internal/ratelimit"
	"github.com/hied-data/deitrack/internal/scrape/expander"
	"github.com/hied-data/deitrack/internal/scrape/locator"
	"github.com/hied-data/deitrack/internal/scrape/paginator"
	"github.com/hied-data/deitrack/internal/scrape/parser"
	"github.com/hied-data/deitrack/pkg/models"
)

// HardPageCap bounds any single run regardless of the reported page
// count, protecting against a next control that never disables.
const HardPageCap = 20

// Prompter blocks until the operator signals they have finished a manual
// step in the visible browser window.
type Prompter interface {
	Pause(message string) error
}

// StdinPrompter prompts on stderr and waits for Enter on stdin.
type StdinPrompter struct{}

// Pause prints message and blocks until a line is read from stdin.
func (StdinPrompter) Pause(message string) error {
	fmt.Fprintf(os.Stderr, "\n%s\nPress Enter when ready to continue...", message)
	_, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	fmt.Fprintln(os.Stderr)
	return nil
}

type browserSession interface {
	Ctx() context.Context
	Navigate(url string) error
	HTML(ctx context.Context) (string, error)
	Eval(ctx context.Context, expr string, res interface{}) error
}

type rowExpander interface {
	ExpandAll(ctx context.Context) int
}

type pageNavigator interface {
	TotalPages(ctx context.Context) int
	Advance(ctx context.Context) bool
}

// Scraper drives one end-to-end crawl of the configured page.
type Scraper struct {
	cfg      *config.Config
	session  browserSession
	limiter  *ratelimit.Limiter
	delays   Delays
	expander rowExpander
	pager    pageNavigator

	// ready blocks until the results table is present; swapped in tests.
	ready func() error

	// Prompter handles manual-intervention pauses; replace for tests.
	Prompter Prompter
}

// New creates a Scraper over an open browser session.
func New(cfg *config.Config, session *browser.Session, limiter *ratelimit.Limiter) *Scraper {
	delays := NewDelays(cfg.Fast)
	s := &Scraper{
		cfg:     cfg,
		session: session,
		limiter: limiter,
		delays:  delays,
		expander: expander.New(session, expander.Config{
			AfterClick:  delays.AfterClick,
			BetweenRows: delays.ExpandGap,
		}),
		pager: paginator.New(session, session, paginator.Config{
			ScrollSettle: delays.Scroll,
			AfterAdvance: delays.Advance,
		}),
		Prompter: StdinPrompter{},
	}
	s.ready = s.waitForTable
	return s
}

// Open navigates to the target page and waits for the initial render.
func (s *Scraper) Open(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	log.Info().Str("url", s.cfg.TargetURL).Msg("Navigating to target page")
	if err := s.session.Navigate(s.cfg.TargetURL); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", s.cfg.TargetURL, err)
	}
	time.Sleep(s.delays.Initial)
	return nil
}

// Login authenticates against the site. With empty credentials it hands
// control to the operator immediately. Automated login degrades to a
// manual pause rather than failing: not finding the form on an already
// authenticated session is normal.
func (s *Scraper) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		log.Info().Msg("No credentials provided, switching to manual login")
		return s.Prompter.Pause("Please log in manually in the browser window.")
	}

	bctx := s.session.Ctx()

	loginLinks := []locator.Spec{
		locator.CSS("a[href*='login']"),
		locator.CSS("a[href*='sign-in']"),
		locator.CSS(".login"),
		locator.CSS("#login"),
		locator.CSS("[data-testid='login']"),
		locator.Text("a", "Log In"),
		locator.Text("button", "Sign In"),
	}
	if node, spec, ok := locator.FirstVisible(bctx, loginLinks, 2*time.Second); ok {
		log.Debug().Stringer("spec", spec).Msg("Opening login form")
		if err := locator.Click(bctx, node); err != nil {
			log.Debug().Err(err).Msg("Login link click failed")
		}
		time.Sleep(s.delays.LoginNav)
	}

	emailFields := []locator.Spec{
		locator.CSS("input[type='email']"),
		locator.CSS("input[name='email']"),
		locator.CSS("input[name='username']"),
		locator.CSS("#email"),
		locator.CSS("#username"),
		locator.CSS("input[autocomplete='email']"),
	}
	emailNode, _, ok := locator.FirstVisible(bctx, emailFields, s.cfg.WaitTime)
	if !ok {
		log.Warn().Msg("Could not find login form, falling back to manual login")
		return s.Prompter.Pause("Please log in manually in the browser window.")
	}
	if err := locator.Fill(bctx, emailNode, email); err != nil {
		return fmt.Errorf("failed to enter email: %w", err)
	}
	time.Sleep(s.delays.LoginStep)

	passwordFields := []locator.Spec{
		locator.CSS("input[type='password']"),
		locator.CSS("input[name='password']"),
		locator.CSS("#password"),
	}
	passwordNode, _, ok := locator.FirstVisible(bctx, passwordFields, s.cfg.WaitTime)
	if !ok {
		log.Warn().Msg("Could not find password field, falling back to manual login")
		return s.Prompter.Pause("Please finish logging in manually in the browser window.")
	}
	if err := locator.Fill(bctx, passwordNode, password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}
	time.Sleep(s.delays.LoginStep)

	submits := []locator.Spec{
		locator.CSS("button[type='submit']"),
		locator.CSS("input[type='submit']"),
		locator.Text("button", "Log In"),
		locator.Text("button", "Sign In"),
		locator.Text("button", "Continue"),
		locator.CSS(".submit-button"),
	}
	submitNode, _, ok := locator.FirstVisible(bctx, submits, s.cfg.WaitTime)
	if !ok {
		log.Warn().Msg("Could not find submit button, falling back to manual login")
		return s.Prompter.Pause("Please submit the login form manually in the browser window.")
	}
	if err := locator.Click(bctx, submitNode); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	log.Info().Msg("Credentials submitted, waiting for session")
	time.Sleep(s.delays.Submit)
	return nil
}

// Run crawls every page of the table and returns the collected records.
// On error the records gathered so far are still returned so the caller
// can export partial results.
func (s *Scraper) Run(ctx context.Context) ([]models.Record, error) {
	records := []models.Record{}

	if err := s.ready(); err != nil {
		return records, err
	}
	time.Sleep(s.delays.Table)

	totalPages := s.pager.TotalPages(ctx)
	pagesToScrape := totalPages
	if s.cfg.MaxPages > 0 && s.cfg.MaxPages < pagesToScrape {
		pagesToScrape = s.cfg.MaxPages
	}
	if pagesToScrape > HardPageCap {
		pagesToScrape = HardPageCap
	}
	log.Info().Int("total_pages", totalPages).Int("scraping", pagesToScrape).Msg("Starting scrape")

	bar := s.newProgressBar(pagesToScrape)

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Int("page", page).Msg("Scrape interrupted")
			return records, err
		}

		log.Info().Int("page", page).Msg("Scraping page")

		if s.cfg.ExpandRows {
			expanded := s.expander.ExpandAll(ctx)
			log.Debug().Int("expanded", expanded).Msg("Row expansion finished")
			time.Sleep(s.delays.Render)
		}

		pageHTML, err := s.session.HTML(ctx)
		if err != nil {
			log.Error().Err(err).Int("page", page).Msg("Could not capture page")
			return records, fmt.Errorf("failed to capture page %d: %w", page, err)
		}

		pageRecords, err := parser.ParsePage(pageHTML, s.cfg.TargetURL)
		if err != nil {
			log.Error().Err(err).Int("page", page).Msg("Could not parse page, continuing")
		} else {
			records = append(records, pageRecords...)
			log.Info().Int("page", page).Int("records", len(pageRecords)).Int("total", len(records)).Msg("Page scraped")
		}
		_ = bar.Add(1)

		if s.cfg.MaxPages > 0 && page >= s.cfg.MaxPages {
			log.Info().Int("max_pages", s.cfg.MaxPages).Msg("Reached page limit")
			break
		}
		if page >= HardPageCap {
			log.Warn().Int("cap", HardPageCap).Msg("Reached hard page cap")
			break
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return records, err
		}
		if !s.pager.Advance(ctx) {
			break
		}
	}
	_ = bar.Finish()

	if len(records) == 0 {
		log.Warn().Msg("No records extracted; if rows failed to expand, retry with --no-expand to capture main columns only")
	}
	return records, nil
}

func (s *Scraper) waitForTable() error {
	tables := []locator.Spec{
		locator.CSS("table"),
		locator.CSS(".table"),
		locator.CSS("[data-testid='table']"),
		locator.CSS(".data-table"),
		locator.CSS("tbody"),
	}
	if _, spec, ok := locator.FirstPresent(s.session.Ctx(), tables, s.cfg.WaitTime); ok {
		log.Debug().Stringer("spec", spec).Msg("Results table located")
		return nil
	}
	return fmt.Errorf("results table did not appear within %s", s.cfg.WaitTime)
}

func (s *Scraper) newProgressBar(pages int) *progressbar.ProgressBar {
	out := io.Writer(os.Stderr)
	if s.cfg.JSONLog {
		out = io.Discard
	}
	return progressbar.NewOptions(pages,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Scraping pages"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
