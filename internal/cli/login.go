package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hied-data/deitrack/internal/auth"
	"github.com/hied-data/deitrack/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store site credentials in the system keyring",
	Long: `Store the email and password used for automated login. Credentials go
to the OS keyring when one is available, otherwise to a file under
~/.deitrack.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		reader := bufio.NewReader(os.Stdin)
		if email == "" {
			fmt.Print("Email: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read email: %w", err)
			}
			email = strings.TrimSpace(line)
		}
		if password == "" {
			fmt.Print("Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimSpace(line)
		}
		if email == "" || password == "" {
			return fmt.Errorf("email and password are required")
		}

		if err := auth.SaveCredentials(&auth.Credentials{Email: email, Password: password}); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}
		fmt.Println(ui.Success("Credentials saved for " + email))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored site credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.DeleteCredentials(); err != nil {
			return fmt.Errorf("failed to delete credentials: %w", err)
		}
		fmt.Println(ui.Info("Stored credentials removed"))
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Account email (prompted when omitted)")
	loginCmd.Flags().String("password", "", "Account password (prompted when omitted)")
}
