package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wazuh-tools/wazuh-cli/internal/client"
	"github.com/wazuh-tools/wazuh-cli/internal/display"
	"github.com/wazuh-tools/wazuh-cli/internal/models"
)

// NewControlCmd creates the control command group.
func NewControlCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "control",
		Aliases: []string{"ctl"},
		Short:   "Control Wazuh manager services",
	}

	cmd.AddCommand(newControlStatusCmd(app))
	cmd.AddCommand(newControlStartCmd(app))
	cmd.AddCommand(newControlStopCmd(app))
	cmd.AddCommand(newControlRestartCmd(app))
	cmd.AddCommand(newControlInfoCmd(app))

	return cmd
}

func newControlStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status [service]",
		Short: "Show service status",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			sp := display.NewSpinner("Fetching service status...")
			sp.Start()

			resp, err := c.Get(cmd.Context(), "/manager/status")
			sp.Stop()
			if err != nil {
				return err
			}

			env, err := client.ParseEnvelope[struct {
				AffectedItems []map[string]string `json:"affected_items"`
			}](resp)
			if err != nil {
				return err
			}

			services := parseServices(env.Data.AffectedItems)

			if len(args) == 1 {
				services = filterServices(services, args[0])
				if len(services) == 0 {
					return fmt.Errorf("service %q not found", args[0])
				}
			}

			if app.jsonOut {
				return display.PrintJSON(services)
			}
			display.PrintServicesTable(services)
			return nil
		},
	}
}

func newControlStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start [service]",
		Short: "Start manager services",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The API exposes no dedicated start endpoint; a restart
			// brings stopped daemons back up.
			return restartManager(app, cmd, args, "Starting", "started")
		},
	}
}

func newControlStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <service>",
		Short: "Stop manager services",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			display.ShowWarning("Stopping individual services is not supported by the Wazuh API.")
			fmt.Println("Use system service management commands (systemctl, service) to stop services.")
			return nil
		},
	}
}

func newControlRestartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restart [service]",
		Short: "Restart manager services",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return restartManager(app, cmd, args, "Restarting", "restarted")
		},
	}
}

func newControlInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show manager information",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			sp := display.NewSpinner("Fetching manager info...")
			sp.Start()

			resp, err := c.Get(cmd.Context(), "/manager/info")
			sp.Stop()
			if err != nil {
				return err
			}

			env, err := client.ParseEnvelope[struct {
				AffectedItems []models.ManagerInfo `json:"affected_items"`
			}](resp)
			if err != nil {
				return err
			}

			if len(env.Data.AffectedItems) == 0 {
				return fmt.Errorf("manager returned no information")
			}

			info := env.Data.AffectedItems[0]
			if app.jsonOut {
				return display.PrintJSON(info)
			}
			display.PrintManagerInfo(&info)
			return nil
		},
	}
}

// restartManager issues PUT /manager/restart and reports the outcome with
// verb-appropriate wording.
func restartManager(app *App, cmd *cobra.Command, args []string, gerund, past string) error {
	c, err := app.authedClient(cmd.Context())
	if err != nil {
		return err
	}

	serviceName := "all"
	if len(args) == 1 {
		serviceName = args[0]
	}

	sp := display.NewSpinner(fmt.Sprintf("%s %s...", gerund, serviceName))
	sp.Start()

	resp, err := c.Put(cmd.Context(), "/manager/restart", nil)
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
	if serviceName == "all" {
		display.ShowSuccess(fmt.Sprintf("All services %s successfully", past))
	} else {
		display.ShowSuccess(fmt.Sprintf("Service %q %s successfully", serviceName, past))
	}
	return nil
}

// parseServices flattens /manager/status items (daemon name to run state)
// into a sorted service list.
func parseServices(items []map[string]string) []models.Service {
	var services []models.Service
	for _, item := range items {
		for name, state := range item {
			services = append(services, models.Service{
				Name:   name,
				Status: parseServiceStatus(state),
			})
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services
}

func parseServiceStatus(state string) models.ServiceStatus {
	switch strings.ToLower(state) {
	case "running":
		return models.ServiceRunning
	case "stopped":
		return models.ServiceStopped
	default:
		return models.ServiceUnknown
	}
}

// filterServices keeps services whose name contains the query,
// case-insensitively.
func filterServices(services []models.Service, query string) []models.Service {
	var filtered []models.Service
	for _, svc := range services {
		if strings.Contains(strings.ToLower(svc.Name), strings.ToLower(query)) {
			filtered = append(filtered, svc)
		}
	}
	return filtered
}
