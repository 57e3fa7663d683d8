// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hied-data/deitrack/internal/browser"
	"github.com/hied-data/deitrack/internal/config"
	"github.com/hied-data/deitrack/internal/ratelimit"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Browser   *browser.Session
	Limiter   *ratelimit.Limiter
	startTime time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It configures logging, creates the navigation rate limiter and starts
// the browser session. If the browser fails to start, an error is
// returned and nothing is left running.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := setupLogger(cfg)

	limiter := ratelimit.New(cfg.NavRPS, cfg.NavBurst)
	logger.Debug().
		Float64("nav_rps", cfg.NavRPS).
		Int("nav_burst", cfg.NavBurst).
		Msg("Rate limiter initialized")

	chromePath := cfg.ChromePath
	if chromePath == "" {
		chromePath = browser.FindChrome()
	}

	session, err := browser.NewSession(ctx, browser.Options{
		Headless:   cfg.Headless,
		UserAgent:  cfg.UserAgent,
		ChromePath: chromePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	logger.Debug().
		Bool("headless", cfg.Headless).
		Str("chrome", chromePath).
		Msg("Browser session started")

	app := &Application{
		Config:    cfg,
		Logger:    &logger,
		Browser:   session,
		Limiter:   limiter,
		startTime: time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

func setupLogger(cfg *config.Config) zerolog.Logger {
	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")
	return logger
}

// Close gracefully shuts down the application and all its resources.
//
// Errors during shutdown are logged but do not prevent other shutdown
// steps.
func (a *Application) Close() error {
	a.Logger.Info().Msg("Shutting down application")

	if a.Browser != nil {
		a.Browser.Close()
	}

	uptime := time.Since(a.startTime)
	a.Logger.Info().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
