package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wazuh-tools/wazuh-cli/internal/client"
	"github.com/wazuh-tools/wazuh-cli/internal/display"
	"github.com/wazuh-tools/wazuh-cli/internal/models"
)

// authedClient builds a client and ensures it holds a valid session
// token, persisting any newly issued token.
func (app *App) authedClient(ctx context.Context) (*client.Client, error) {
	c, err := app.newClient()
	if err != nil {
		return nil, err
	}
	if err := c.Authenticate(ctx); err != nil {
		return nil, err
	}
	app.persistToken(c)
	return c, nil
}

// NewAgentCmd creates the agent command group.
func NewAgentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agent",
		Aliases: []string{"agents", "a"},
		Short:   "Manage Wazuh agents",
	}

	cmd.AddCommand(newAgentListCmd(app))
	cmd.AddCommand(newAgentGetCmd(app))
	cmd.AddCommand(newAgentAddCmd(app))
	cmd.AddCommand(newAgentRemoveCmd(app))
	cmd.AddCommand(newAgentRestartCmd(app))
	cmd.AddCommand(newAgentUpgradeCmd(app))
	cmd.AddCommand(newAgentKeyCmd(app))

	return cmd
}

func newAgentListCmd(app *App) *cobra.Command {
	var (
		status    string
		osFilter  string
		version   string
		countOnly bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List all agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			sp := display.NewSpinner("Fetching agents...")
			sp.Start()

			params := models.DefaultAgentParams()
			params.Status = status
			params.OSPlatform = osFilter
			params.Version = version

			resp, err := c.Get(cmd.Context(), "/agents?"+params.Values().Encode())
			sp.Stop()
			if err != nil {
				return err
			}

			env, err := client.ParseEnvelope[models.AgentListResponse](resp)
			if err != nil {
				return err
			}

			if countOnly {
				fmt.Printf("Total agents: %d\n", env.Data.TotalAffectedItems)
				return nil
			}

			if app.jsonOut {
				return display.PrintJSON(env.Data.AffectedItems)
			}
			display.PrintAgentsTable(env.Data.AffectedItems)
			fmt.Printf("\nTotal: %d agents\n", env.Data.TotalAffectedItems)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (active, disconnected, never_connected, pending)")
	cmd.Flags().StringVarP(&osFilter, "os", "o", "", "Filter by operating system platform")
	cmd.Flags().StringVar(&version, "version", "", "Filter by agent version")
	cmd.Flags().BoolVar(&countOnly, "count", false, "Show only the agent count")

	return cmd
}

func newAgentGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get <agent-id>",
		Aliases: []string{"info", "show", "i"},
		Short:   "Show agent details",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := c.Get(cmd.Context(), "/agents/"+args[0])
			if err != nil {
				return err
			}

			env, err := client.ParseEnvelope[models.AgentListResponse](resp)
			if err != nil {
				return err
			}

			if len(env.Data.AffectedItems) == 0 {
				return fmt.Errorf("agent %q not found", args[0])
			}

			agent := env.Data.AffectedItems[0]
			if app.jsonOut {
				return display.PrintJSON(agent)
			}
			display.PrintSingleAgent(&agent)
			return nil
		},
	}
}

func newAgentAddCmd(app *App) *cobra.Command {
	var (
		name  string
		ip    string
		force bool
	)

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"create", "new"},
		Short:   "Add a new agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			sp := display.NewSpinner("Adding new agent...")
			sp.Start()

			resp, err := c.Post(cmd.Context(), "/agents", models.AddAgentRequest{
				Name:  name,
				IP:    ip,
				Force: force,
			})
			sp.Stop()
			if err != nil {
				return err
			}

			env, err := client.ParseEnvelope[models.AddAgentResponse](resp)
			if err != nil {
				return err
			}

			if app.jsonOut {
				return display.PrintJSON(env)
			}
			display.ShowSuccess(fmt.Sprintf("Agent %q added successfully", name))
			fmt.Printf("Agent ID: %s\n", env.Data.ID)
			fmt.Printf("Agent key: %s\n", env.Data.Key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Agent name (required)")
	cmd.Flags().StringVarP(&ip, "ip", "i", "", "Agent IP address")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force agent creation")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAgentRemoveCmd(app *App) *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:     "remove <agent-id>",
		Aliases: []string{"rm", "del", "delete"},
		Short:   "Remove an agent",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipConfirm && !confirm(fmt.Sprintf("Remove agent %q?", args[0])) {
				fmt.Println("Operation cancelled")
				return nil
			}

			c, err := app.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			sp := display.NewSpinner("Removing agent...")
			sp.Start()

			resp, err := c.Delete(cmd.Context(), "/agents/"+args[0])
			sp.Stop()
			if err != nil {
				return err
			}

			env, err := client.ParseEnvelope[json.RawMessage](resp)
			if err != nil {
				return err
			}

			if app.jsonOut {
				return display.PrintJSON(env)
			}
			display.ShowSuccess(fmt.Sprintf("Agent %q removed successfully", args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newAgentRestartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restart <agent-id|all>",
		Short: "Restart an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			target := "/agents/" + args[0] + "/restart"
			if strings.EqualFold(args[0], "all") {
				target = "/agents/restart"
			}

			sp := display.NewSpinner("Restarting agent...")
			sp.Start()

			resp, err := c.Put(cmd.Context(), target, nil)
			sp.Stop()
			if err != nil {
				return err
			}

			env, err := client.ParseEnvelope[json.RawMessage](resp)
			if err != nil {
				return err
			}

			if app.jsonOut {
				return display.PrintJSON(env)
			}
			if strings.EqualFold(args[0], "all") {
				display.ShowSuccess("All agents restarted successfully")
			} else {
				display.ShowSuccess(fmt.Sprintf("Agent %q restarted successfully", args[0]))
			}
			return nil
		},
	}
}

func newAgentUpgradeCmd(app *App) *cobra.Command {
	var (
		version string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "upgrade <agent-id|all>",
		Short: "Upgrade an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			body := map[string]any{}
			if version != "" {
				body["version"] = version
			}
			if force {
				body["force"] = true
			}

			target := "/agents/" + args[0] + "/upgrade"
			if strings.EqualFold(args[0], "all") {
				target = "/agents/upgrade"
			}

			sp := display.NewSpinner("Upgrading agent...")
			sp.Start()

			resp, err := c.Put(cmd.Context(), target, body)
			sp.Stop()
			if err != nil {
				return err
			}

			env, err := client.ParseEnvelope[json.RawMessage](resp)
			if err != nil {
				return err
			}

			if app.jsonOut {
				return display.PrintJSON(env)
			}
			if strings.EqualFold(args[0], "all") {
				display.ShowSuccess("All agents upgrade initiated")
			} else {
				display.ShowSuccess(fmt.Sprintf("Agent %q upgrade initiated", args[0]))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Target version")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force upgrade")

	return cmd
}

func newAgentKeyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "key <agent-id>",
		Short: "Get agent registration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := c.Get(cmd.Context(), "/agents/"+args[0]+"/key")
			if err != nil {
				return err
			}

			env, err := client.ParseEnvelope[struct {
				AffectedItems []models.AgentKey `json:"affected_items"`
			}](resp)
			if err != nil {
				return err
			}

			if len(env.Data.AffectedItems) == 0 {
				return fmt.Errorf("no key available for agent %q", args[0])
			}

			if app.jsonOut {
				return display.PrintJSON(env.Data.AffectedItems[0])
			}
			fmt.Printf("Agent key for %q: %s\n", args[0], env.Data.AffectedItems[0].Key)
			return nil
		},
	}
}

// confirm asks a yes/no question on the terminal, defaulting to no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
