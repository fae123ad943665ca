package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/wazuh-tools/wazuh-cli/internal/config"
	"github.com/wazuh-tools/wazuh-cli/internal/display"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Manage configuration",
	}

	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigGetCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	cmd.AddCommand(newConfigInitCmd(app))
	cmd.AddCommand(newConfigEditCmd(app))
	cmd.AddCommand(newConfigPathCmd(app))

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.jsonOut {
				return display.PrintJSON(redactedView(app.cfg))
			}

			fmt.Println("Current Configuration")
			fmt.Println()
			fmt.Println("API Settings:")
			fmt.Printf("  Host: %s\n", app.cfg.API.Host)
			fmt.Printf("  Port: %d\n", app.cfg.API.Port)
			fmt.Printf("  Protocol: %s\n", app.cfg.API.Protocol)
			fmt.Printf("  Timeout: %d seconds\n", app.cfg.API.Timeout)
			fmt.Println()
			fmt.Println("Authentication:")
			fmt.Printf("  Username: %s\n", orNotSet(app.cfg.Auth.Username))
			fmt.Printf("  Password: %s\n", maskSecret(app.cfg.Auth.Password))
			fmt.Printf("  Token: %s\n", setOrNot(app.cfg.Auth.Token))
			fmt.Println()
			fmt.Println("Output Settings:")
			fmt.Printf("  Format: %s\n", app.cfg.Output.Format)
			fmt.Printf("  Color: %t\n", app.cfg.Output.Color)
			fmt.Println()
			fmt.Println("TLS Settings:")
			fmt.Printf("  Verify: %t\n", app.cfg.TLS.Verify)
			fmt.Printf("  CA Certificate: %s\n", orNotSet(app.cfg.TLS.CACert))
			fmt.Printf("  Client Certificate: %s\n", orNotSet(app.cfg.TLS.ClientCert))
			fmt.Printf("  Client Key: %s\n", orNotSet(app.cfg.TLS.ClientKey))
			return nil
		},
	}
}

func newConfigGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok := app.cfg.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown configuration key %q", args[0])
			}
			if app.jsonOut {
				return display.PrintJSON(map[string]string{args[0]: value})
			}
			fmt.Printf("%s = %s\n", args[0], value)
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := app.cfg.Save(app.configPath); err != nil {
				return err
			}
			display.ShowSuccess(fmt.Sprintf("Set %s = %s", args[0], args[1]))
			return nil
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile(force)
			if err != nil {
				if path != "" {
					display.ShowError(err.Error())
					fmt.Println("Use --force to overwrite")
					return nil
				}
				return err
			}
			display.ShowSuccess("Configuration initialized at: " + path)
			display.ShowInfo("Edit the configuration file to set your Wazuh API credentials")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")

	return cmd
}

func newConfigEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration file in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.configPath
			if path == "" {
				path = config.FindConfigFile()
			}
			if path == "" {
				return fmt.Errorf("configuration file not found; run 'wazuh-cli config init' first")
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				if runtime.GOOS == "windows" {
					editor = "notepad"
				} else {
					editor = "nano"
				}
			}

			display.ShowInfo("Opening configuration file with " + editor)

			edit := exec.Command(editor, path)
			edit.Stdin = os.Stdin
			edit.Stdout = os.Stdout
			edit.Stderr = os.Stderr
			if err := edit.Run(); err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			return nil
		},
	}
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.configPath != "" {
				fmt.Println(app.configPath)
				return nil
			}
			if path := config.FindConfigFile(); path != "" {
				fmt.Println(path)
				return nil
			}
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			fmt.Printf("%s (not created yet)\n", path)
			return nil
		},
	}
}

// redactedView copies the config with secrets masked for JSON output.
func redactedView(cfg *config.Config) *config.Config {
	view := *cfg
	if view.Auth.Password != "" {
		view.Auth.Password = "***"
	}
	if view.Auth.Token != "" {
		view.Auth.Token = "***"
	}
	return &view
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	return "***"
}

func setOrNot(s string) string {
	if s == "" {
		return "(not set)"
	}
	return "(set)"
}
