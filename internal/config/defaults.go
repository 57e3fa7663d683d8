package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "info"
	DefaultJSONLog   = false
	DefaultTargetURL = "https://www.chronicle.com/article/tracking-higher-eds-dismantling-of-dei"
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultWaitTime bounds each individual wait-for-element probe.
	// Exhausting it means "not found", never a fatal error.
	DefaultWaitTime = 10 * time.Second

	DefaultHeadless    = false
	DefaultExpandRows  = true
	DefaultDisplayRows = 50

	// DefaultNavRPS throttles browser navigations (initial load and
	// page advances). Settle delays are separate fixed constants.
	DefaultNavRPS   = 1.0
	DefaultNavBurst = 2

	DefaultCSVPath  = "chronicle_dei_data.csv"
	DefaultJSONPath = "chronicle_dei_data.json"
	DefaultXLSXPath = "chronicle_dei_data.xlsx"
)
