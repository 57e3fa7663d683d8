package config

import "github.com/spf13/cobra"

// RegisterFlags registers the scrape flags on the provided command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")

	cmd.Flags().String("url", "", "Tracking page URL (defaults to the Chronicle DEI table)")
	cmd.Flags().String("email", "", "Account email (omit to use stored credentials or manual login)")
	cmd.Flags().String("password", "", "Account password")
	cmd.Flags().Bool("headless", DefaultHeadless, "Run browser headless (manual login needs a visible browser)")
	cmd.Flags().String("chrome-path", "", "Path to Chrome/Chromium executable (auto-detected if empty)")
	cmd.Flags().String("user-agent", "", "Custom user agent string")
	cmd.Flags().String("wait", DefaultWaitTime.String(), "Per-element wait timeout")
	cmd.Flags().Bool("no-expand", false, "Do not expand rows for details")
	cmd.Flags().Bool("no-display", false, "Do not render the results table in the terminal")
	cmd.Flags().Bool("fast", false, "Shorter settle delays (faster scrape, higher risk of missed content)")
	cmd.Flags().Int("max-pages", 0, "Stop after this many pages (0 = all)")
	cmd.Flags().String("output-csv", DefaultCSVPath, "Output CSV filename (empty to skip)")
	cmd.Flags().String("output-json", DefaultJSONPath, "Output JSON filename (empty to skip)")
	cmd.Flags().String("output-xlsx", DefaultXLSXPath, "Output spreadsheet filename (empty to skip)")
	cmd.Flags().String("output-md", "", "Optional Markdown report filename")
}
