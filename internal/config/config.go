package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Target
	TargetURL string
	UserAgent string

	// Credentials (optional; empty triggers keyring lookup, then manual login)
	Email    string
	Password string

	// Browser
	Headless   bool
	ChromePath string
	WaitTime   time.Duration

	// Scrape behavior
	ExpandRows bool
	Fast       bool
	MaxPages   int // 0 means all detected pages

	// Navigation throttling
	NavRPS   float64
	NavBurst int

	// Output
	CSVPath      string
	JSONPath     string
	XLSXPath     string
	MarkdownPath string
	DisplayTable bool
	DisplayRows  int
}

// Load builds a Config by combining defaults, environment variables, and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:     DefaultLogLevel,
		JSONLog:      DefaultJSONLog,
		TargetURL:    DefaultTargetURL,
		UserAgent:    DefaultUserAgent,
		Headless:     DefaultHeadless,
		WaitTime:     DefaultWaitTime,
		ExpandRows:   DefaultExpandRows,
		NavRPS:       DefaultNavRPS,
		NavBurst:     DefaultNavBurst,
		CSVPath:      DefaultCSVPath,
		JSONPath:     DefaultJSONPath,
		XLSXPath:     DefaultXLSXPath,
		DisplayTable: true,
		DisplayRows:  DefaultDisplayRows,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("DEITRACK_URL"); v != "" {
		cfg.TargetURL = v
	}
	if v := os.Getenv("DEITRACK_EMAIL"); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv("DEITRACK_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("DEITRACK_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("DEITRACK_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		readFlags(cmd, cfg)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func readFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()

	if s, err := flags.GetString("url"); err == nil && s != "" {
		cfg.TargetURL = s
	}
	if s, err := flags.GetString("email"); err == nil && s != "" {
		cfg.Email = s
	}
	if s, err := flags.GetString("password"); err == nil && s != "" {
		cfg.Password = s
	}
	if s, err := flags.GetString("chrome-path"); err == nil && s != "" {
		cfg.ChromePath = s
	}
	if s, err := flags.GetString("user-agent"); err == nil && s != "" {
		cfg.UserAgent = s
	}
	if s, err := flags.GetString("wait"); err == nil && s != "" {
		if d, perr := time.ParseDuration(s); perr == nil {
			cfg.WaitTime = d
		}
	}
	if b, err := flags.GetBool("headless"); err == nil {
		cfg.Headless = b
	}
	if b, err := flags.GetBool("no-expand"); err == nil && b {
		cfg.ExpandRows = false
	}
	if b, err := flags.GetBool("no-display"); err == nil && b {
		cfg.DisplayTable = false
	}
	if b, err := flags.GetBool("fast"); err == nil {
		cfg.Fast = b
	}
	if n, err := flags.GetInt("max-pages"); err == nil && n > 0 {
		cfg.MaxPages = n
	}
	// Output paths honor an explicit empty value, which disables the format.
	if flags.Changed("output-csv") {
		if s, err := flags.GetString("output-csv"); err == nil {
			cfg.CSVPath = s
		}
	}
	if flags.Changed("output-json") {
		if s, err := flags.GetString("output-json"); err == nil {
			cfg.JSONPath = s
		}
	}
	if flags.Changed("output-xlsx") {
		if s, err := flags.GetString("output-xlsx"); err == nil {
			cfg.XLSXPath = s
		}
	}
	if s, err := flags.GetString("output-md"); err == nil {
		cfg.MarkdownPath = s
	}
	if b, err := flags.GetBool("json"); err == nil && b {
		cfg.JSONLog = true
	}
	if b, err := flags.GetBool("verbose"); err == nil && b {
		cfg.LogLevel = "debug"
	}
	if b, err := flags.GetBool("quiet"); err == nil && b {
		cfg.LogLevel = "error"
	}
}
