package cmd

import (
	"testing"

	"github.com/wazuh-tools/wazuh-cli/internal/models"
)

func TestParseServices(t *testing.T) {
	items := []map[string]string{
		{"wazuh-analysisd": "running"},
		{"wazuh-remoted": "stopped", "wazuh-modulesd": "failed"},
	}

	services := parseServices(items)

	if len(services) != 3 {
		t.Fatalf("parseServices() returned %d services, want 3", len(services))
	}
	// Sorted by name.
	if services[0].Name != "wazuh-analysisd" || services[0].Status != models.ServiceRunning {
		t.Errorf("services[0] = %+v, want wazuh-analysisd running", services[0])
	}
	if services[1].Name != "wazuh-modulesd" || services[1].Status != models.ServiceUnknown {
		t.Errorf("services[1] = %+v, want wazuh-modulesd unknown", services[1])
	}
	if services[2].Name != "wazuh-remoted" || services[2].Status != models.ServiceStopped {
		t.Errorf("services[2] = %+v, want wazuh-remoted stopped", services[2])
	}
}

func TestParseServiceStatus(t *testing.T) {
	tests := []struct {
		state string
		want  models.ServiceStatus
	}{
		{"running", models.ServiceRunning},
		{"Running", models.ServiceRunning},
		{"stopped", models.ServiceStopped},
		{"failed", models.ServiceUnknown},
		{"", models.ServiceUnknown},
	}

	for _, tt := range tests {
		if got := parseServiceStatus(tt.state); got != tt.want {
			t.Errorf("parseServiceStatus(%q) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestFilterServices(t *testing.T) {
	services := []models.Service{
		{Name: "wazuh-analysisd"},
		{Name: "wazuh-remoted"},
		{Name: "wazuh-db"},
	}

	got := filterServices(services, "REMOTE")
	if len(got) != 1 || got[0].Name != "wazuh-remoted" {
		t.Errorf("filterServices(REMOTE) = %+v, want wazuh-remoted only", got)
	}

	if got := filterServices(services, "nothing"); len(got) != 0 {
		t.Errorf("filterServices(nothing) = %+v, want empty", got)
	}
}
