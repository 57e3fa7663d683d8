// internal/browser/session.go
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Session owns the single Chrome instance used for the whole run.
// All browser interaction is synchronous and goes through this one
// session; it must not be shared between goroutines.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// Options configures the browser session
type Options struct {
	Headless   bool
	UserAgent  string
	ChromePath string
}

// NewSession launches Chrome and warms it up on a blank page.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("log-level", "3"),
		// Automation fingerprint reduction; the target gates content
		// behind auth and serves bots a degraded page.
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", "1920,1080"),
	}

	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"), chromedp.Flag("disable-gpu", true))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	log.Debug().Bool("headless", opts.Headless).Str("chrome", chromePath).Msg("Browser session ready")

	return &Session{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
	}, nil
}

// Ctx returns the chromedp context for running actions.
func (s *Session) Ctx() context.Context {
	return s.ctx
}

// Navigate loads the given URL.
func (s *Session) Navigate(url string) error {
	if err := chromedp.Run(s.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// HTML captures the full rendered page markup in one round-trip. The
// action runs on the session's own chromedp context, which is derived
// from the caller's lifecycle context; ctx is only consulted for
// cancellation.
func (s *Session) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to capture page HTML: %w", err)
	}
	return html, nil
}

// Eval runs a JavaScript expression in the page, storing the result in res.
// A nil res discards the result.
func (s *Session) Eval(ctx context.Context, expr string, res interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(s.ctx, chromedp.Evaluate(expr, res))
}

// Close shuts the browser down. Safe to call once the run is over,
// including after an interrupt or failure.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
	log.Info().Msg("Browser closed")
}
