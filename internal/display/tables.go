package display

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/wazuh-tools/wazuh-cli/internal/models"
)

var (
	boldLine = color.New(color.Bold, color.Underline)
	bold     = color.New(color.Bold)
)

// newTable returns a tablewriter with the house style applied.
func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// colorAgentStatus renders an agent status with its conventional color.
func colorAgentStatus(status models.AgentStatus) string {
	switch status {
	case models.StatusActive:
		return color.New(color.FgGreen, color.Bold).Sprint(status.Display())
	case models.StatusDisconnected:
		return color.RedString(status.Display())
	case models.StatusNeverConnected:
		return color.YellowString(status.Display())
	case models.StatusPending:
		return color.BlueString(status.Display())
	default:
		return status.Display()
	}
}

func colorServiceStatus(status models.ServiceStatus) string {
	switch status {
	case models.ServiceRunning:
		return color.New(color.FgGreen, color.Bold).Sprint(status.Display())
	case models.ServiceStopped:
		return color.RedString(status.Display())
	default:
		return color.YellowString(status.Display())
	}
}

// PrintAgentsTable renders the agent collection as a table.
func PrintAgentsTable(agents []models.Agent) {
	table := newTable([]string{"ID", "Name", "IP", "Status", "Version", "OS", "Last Keep Alive"})

	for _, agent := range agents {
		table.Append([]string{
			agent.ID,
			agent.Name,
			orNA(agent.IP),
			colorAgentStatus(agent.Status),
			orNA(agent.Version),
			agentOSInfo(agent.OS),
			formatTimePtr(agent.LastKeepAlive, "Never"),
		})
	}

	table.Render()
}

// PrintSingleAgent renders one agent in a detailed key/value view.
func PrintSingleAgent(agent *models.Agent) {
	boldLine.Println("Agent Information")
	fmt.Println()

	printField("ID", agent.ID)
	printField("Name", agent.Name)
	printField("IP Address", agent.IP)
	printField("Status", colorAgentStatus(agent.Status))
	printField("Version", agent.Version)

	if agent.OS != nil {
		bold.Println("Operating System:")
		printIndented("Platform", agent.OS.Platform)
		printIndented("Version", agent.OS.Version)
		printIndented("Name", agent.OS.Name)
		printIndented("Architecture", agent.OS.Arch)
	}

	if len(agent.Group) > 0 {
		printField("Groups", strings.Join(agent.Group, ", "))
	}
	printField("Node", agent.NodeName)
	printField("Manager", agent.Manager)
	if agent.DateAdd != nil {
		printField("Added", formatTimePtr(agent.DateAdd, ""))
	}
	if agent.LastKeepAlive != nil {
		printField("Last Keep Alive", formatTimePtr(agent.LastKeepAlive, ""))
	}
}

// PrintServicesTable renders manager services as a table.
func PrintServicesTable(services []models.Service) {
	table := newTable([]string{"Service", "Status", "PID", "Version"})

	for _, svc := range services {
		pid := "N/A"
		if svc.PID > 0 {
			pid = strconv.Itoa(svc.PID)
		}
		table.Append([]string{
			svc.Name,
			colorServiceStatus(svc.Status),
			pid,
			orNA(svc.Version),
		})
	}

	table.Render()
}

// PrintManagerInfo renders the manager information view.
func PrintManagerInfo(info *models.ManagerInfo) {
	boldLine.Println("Wazuh Manager Information")
	fmt.Println()

	printField("Name", info.Name)
	printField("Version", info.Version)
	printField("Compilation Date", info.CompilationDate)
	printField("Max Agents", info.MaxAgents)
	printField("OpenSSL Support", info.OpenSSLSupport)
	printField("Timezone", strings.TrimSpace(info.TZName+" "+info.TZOffset))

	if info.Cluster.Enabled != "" {
		bold.Println("Cluster:")
		printIndented("Enabled", info.Cluster.Enabled)
		printIndented("Node Name", info.Cluster.NodeName)
		printIndented("Node Type", info.Cluster.NodeType)
	}
}

func printField(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%s: %s\n", bold.Sprint(name), value)
}

func printIndented(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %s: %s\n", bold.Sprint(name), value)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func agentOSInfo(osInfo *models.AgentOS) string {
	if osInfo == nil {
		return "Unknown"
	}
	info := strings.TrimSpace(osInfo.Platform + " " + osInfo.Version)
	if info == "" {
		return "Unknown"
	}
	return info
}

func formatTimePtr(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
