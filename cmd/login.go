package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wazuh-tools/wazuh-cli/internal/display"
)

// NewLoginCmd creates the login command.
func NewLoginCmd(app *App) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Wazuh API",
		Long: `Authenticate with the Wazuh API and persist the session token.

Credentials come from flags, the WAZUH_USER/WAZUH_PASSWORD environment
variables, or the configuration file, in that order. The issued token is
saved to the configuration file so subsequent commands reuse the session.

Examples:
  wazuh-cli login -u wazuh
  WAZUH_PASSWORD=secret wazuh-cli login -u wazuh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username != "" {
				app.cfg.Auth.Username = username
			}
			if password != "" {
				app.cfg.Auth.Password = password
			}

			if app.cfg.Auth.Username == "" {
				return fmt.Errorf("username required (use --username or WAZUH_USER)")
			}
			if app.cfg.Auth.Password == "" {
				pw, err := promptPassword("Password: ")
				if err != nil {
					return err
				}
				app.cfg.Auth.Password = pw
			}

			// Force a fresh login rather than probing an old session.
			app.cfg.ClearToken()

			c, err := app.newClient()
			if err != nil {
				return err
			}

			sp := display.NewSpinner("Authenticating...")
			sp.Start()
			err = c.Authenticate(cmd.Context())
			sp.Stop()
			if err != nil {
				return err
			}

			app.persistToken(c)
			display.ShowSuccess(fmt.Sprintf("Logged in to %s as %s", app.cfg.APIURL(), app.cfg.Auth.Username))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "API username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "API password (prompted when omitted)")

	return cmd
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.cfg.IsAuthenticated() {
				fmt.Println("Not currently logged in.")
				return nil
			}

			app.cfg.ClearToken()
			if err := app.cfg.Save(app.configPath); err != nil {
				return fmt.Errorf("failed to clear session token: %w", err)
			}

			display.ShowSuccess("Logged out")
			return nil
		},
	}
}

// NewStatusCmd creates the status command.
func NewStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Authentication Status:")
			fmt.Println()
			fmt.Printf("  API: %s\n", app.cfg.APIURL())

			if !app.cfg.IsAuthenticated() {
				fmt.Println("  Session: no stored token")
				fmt.Println("  Run 'wazuh-cli login' to authenticate")
				return nil
			}

			fmt.Println("  Session: token stored")

			// Probe the API so "stored" and "still accepted" are not
			// conflated.
			c, err := app.newClient()
			if err != nil {
				return err
			}
			if err := c.Authenticate(cmd.Context()); err != nil {
				fmt.Printf("  Validity: rejected (%v)\n", err)
				return nil
			}
			app.persistToken(c)
			fmt.Println("  Validity: accepted by the API")
			return nil
		},
	}
}

// promptPassword reads a password without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}
