package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wazuh-tools/wazuh-cli/internal/client"
	"github.com/wazuh-tools/wazuh-cli/internal/config"
	"github.com/wazuh-tools/wazuh-cli/internal/display"
	"github.com/wazuh-tools/wazuh-cli/internal/logging"
)

// App holds the state shared by all commands.
type App struct {
	cfg        *config.Config
	configPath string
	jsonOut    bool
	verbose    bool
}

// NewApp creates a new App instance with default configuration.
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command.
func Execute() {
	app := NewApp()

	rootCmd := &cobra.Command{
		Use:   "wazuh-cli",
		Short: "Modern CLI for Wazuh SIEM management",
		Long: `A command-line interface for managing the Wazuh security platform.
Supports agent management, service control, and configuration.

Examples:
  wazuh-cli agent list --status active
  wazuh-cli agent get 001
  wazuh-cli control status
  wazuh-cli login -u wazuh
  wazuh-cli -i                          # Interactive mode`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand starts the interactive shell.
			return app.runInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&app.jsonOut, "json", "j", false, "Output JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewAgentCmd(app))
	rootCmd.AddCommand(NewControlCmd(app))
	rootCmd.AddCommand(NewConfigCmd(app))
	rootCmd.AddCommand(NewInteractiveCmd(app))
	rootCmd.AddCommand(NewLoginCmd(app))
	rootCmd.AddCommand(NewLogoutCmd(app))
	rootCmd.AddCommand(NewStatusCmd(app))

	if err := rootCmd.Execute(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}
}

// setup loads configuration and wires logging. It runs before every
// command.
func (app *App) setup() error {
	if app.verbose {
		logging.DefaultLogger.SetLevel(logging.LevelDebug)
	}

	cfg, err := config.Load(app.configPath)
	if err != nil {
		return err
	}
	app.cfg = cfg

	if app.cfg.Output.Format == "json" {
		app.jsonOut = true
	}

	logging.Debug("configuration loaded", logging.Fields{"url": app.cfg.APIURL()})
	return nil
}

// newClient builds an API client from the loaded configuration.
func (app *App) newClient() (*client.Client, error) {
	return client.New(client.Options{
		BaseURL: app.cfg.APIURL(),
		Timeout: app.cfg.Timeout(),
		TLS: client.TLSOptions{
			Verify:     app.cfg.TLS.Verify,
			CACert:     app.cfg.TLS.CACert,
			ClientCert: app.cfg.TLS.ClientCert,
			ClientKey:  app.cfg.TLS.ClientKey,
		},
		Username: app.cfg.Auth.Username,
		Password: app.cfg.Auth.Password,
		Token:    app.cfg.Auth.Token,
		Debug:    app.verbose,
	})
}

// persistToken writes a freshly issued token back to the config file so
// later invocations can reuse the session. Failures are reported but do
// not fail the command that obtained the token.
func (app *App) persistToken(c *client.Client) {
	token, ok := c.Store().Token()
	if !ok || token == app.cfg.Auth.Token {
		return
	}
	app.cfg.UpdateToken(token)
	if err := app.cfg.Save(app.configPath); err != nil {
		display.ShowWarning("could not persist session token: " + err.Error())
	}
}
