package display

import (
	"testing"
	"time"

	"github.com/wazuh-tools/wazuh-cli/internal/models"
)

func TestFormatTimePtr(t *testing.T) {
	if got := formatTimePtr(nil, "Never"); got != "Never" {
		t.Errorf("formatTimePtr(nil) = %q, want Never", got)
	}

	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := formatTimePtr(&ts, ""); got != "2024-01-01 12:00:00 UTC" {
		t.Errorf("formatTimePtr() = %q, want 2024-01-01 12:00:00 UTC", got)
	}
}

func TestOrNA(t *testing.T) {
	if got := orNA(""); got != "N/A" {
		t.Errorf("orNA(\"\") = %q, want N/A", got)
	}
	if got := orNA("4.7.0"); got != "4.7.0" {
		t.Errorf("orNA(4.7.0) = %q", got)
	}
}

func TestAgentOSInfo(t *testing.T) {
	tests := []struct {
		name string
		os   *models.AgentOS
		want string
	}{
		{"nil", nil, "Unknown"},
		{"empty", &models.AgentOS{}, "Unknown"},
		{"platform only", &models.AgentOS{Platform: "ubuntu"}, "ubuntu"},
		{"platform and version", &models.AgentOS{Platform: "ubuntu", Version: "22.04"}, "ubuntu 22.04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agentOSInfo(tt.os); got != tt.want {
				t.Errorf("agentOSInfo() = %q, want %q", got, tt.want)
			}
		})
	}
}
