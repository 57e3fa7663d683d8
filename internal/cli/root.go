// Package cli defines the deitrack command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hied-data/deitrack/internal/config"
)

// rootCmd represents the base command; running it without a subcommand
// performs a full scrape.
var rootCmd = &cobra.Command{
	Use:   "deitrack",
	Short: "Scrape the higher-ed DEI legislation tracker into CSV, JSON and XLSX",
	Long: `Deitrack drives a real Chrome session against the Chronicle's DEI
legislation tracker: it logs in, expands every row of the paginated
table, and exports the extracted records.

Credentials come from flags, DEITRACK_EMAIL/DEITRACK_PASSWORD, or the
system keyring (see "deitrack login"). With no credentials the browser
window stays open for a manual login.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	RunE:         runScrape,
}

// Execute runs the command tree. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
