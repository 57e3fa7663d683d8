package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hied-data/deitrack/internal/app"
	"github.com/hied-data/deitrack/internal/auth"
	"github.com/hied-data/deitrack/internal/config"
	"github.com/hied-data/deitrack/internal/export"
	"github.com/hied-data/deitrack/internal/scrape"
	"github.com/hied-data/deitrack/internal/ui"
	"github.com/hied-data/deitrack/pkg/models"
)

// runScrape performs the full crawl and export. Whatever records were
// collected by the time an error or interrupt lands are still exported.
func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	email, password := resolveCredentials(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	scraper := scrape.New(cfg, application.Browser, application.Limiter)

	records, runErr := func() ([]models.Record, error) {
		if err := scraper.Open(ctx); err != nil {
			return nil, err
		}
		if err := scraper.Login(ctx, email, password); err != nil {
			return nil, err
		}
		return scraper.Run(ctx)
	}()

	// A nil slice means the run failed before the table was reached;
	// don't overwrite earlier exports with empty files in that case.
	if records != nil {
		if exportErr := export.Run(records, export.Options{
			CSVPath:      cfg.CSVPath,
			JSONPath:     cfg.JSONPath,
			XLSXPath:     cfg.XLSXPath,
			MarkdownPath: cfg.MarkdownPath,
			DisplayTable: cfg.DisplayTable,
			DisplayRows:  cfg.DisplayRows,
			BaseURL:      cfg.TargetURL,
		}); exportErr != nil && runErr == nil {
			runErr = exportErr
		}
		fmt.Println(ui.Bold(fmt.Sprintf("Scraped %d records", len(records))))
	}

	if errors.Is(runErr, context.Canceled) {
		log.Warn().Msg("Interrupted; partial results exported")
		return nil
	}
	return runErr
}

// resolveCredentials prefers explicit config values and falls back to
// stored credentials.
func resolveCredentials(cfg *config.Config) (string, string) {
	if cfg.Email != "" && cfg.Password != "" {
		return cfg.Email, cfg.Password
	}
	creds, err := auth.LoadCredentials()
	if err != nil {
		log.Debug().Err(err).Msg("No stored credentials")
		return cfg.Email, cfg.Password
	}
	log.Info().Str("email", creds.Email).Msg("Using stored credentials")
	return creds.Email, creds.Password
}
