package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIsSensitiveHeader(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"Authorization", true},
		{"authorization", true},
		{"X-Auth-Token", true},
		{"Cookie", true},
		{"Content-Type", false},
		{"Accept", false},
	}

	for _, tt := range tests {
		if got := isSensitiveHeader(tt.header); got != tt.want {
			t.Errorf("isSensitiveHeader(%q) = %t, want %t", tt.header, got, tt.want)
		}
	}
}

func TestRedactSensitiveFields(t *testing.T) {
	input := map[string]interface{}{
		"username": "admin",
		"password": "hunter2",
		"data": map[string]interface{}{
			"token": "abc",
			"id":    "001",
		},
		"items": []interface{}{
			map[string]interface{}{"api_key": "xyz"},
		},
	}

	out, ok := redactSensitiveFields(input).(map[string]interface{})
	if !ok {
		t.Fatal("redactSensitiveFields did not return a map")
	}

	if out["username"] != "admin" {
		t.Errorf("username = %v, want admin", out["username"])
	}
	if out["password"] != "[REDACTED]" {
		t.Errorf("password = %v, want [REDACTED]", out["password"])
	}
	data := out["data"].(map[string]interface{})
	if data["token"] != "[REDACTED]" {
		t.Errorf("nested token = %v, want [REDACTED]", data["token"])
	}
	if data["id"] != "001" {
		t.Errorf("nested id = %v, want 001", data["id"])
	}
	item := out["items"].([]interface{})[0].(map[string]interface{})
	if item["api_key"] != "[REDACTED]" {
		t.Errorf("list api_key = %v, want [REDACTED]", item["api_key"])
	}
}

func TestTruncateBody(t *testing.T) {
	if got := truncateBody([]byte("short"), 10); got != "short" {
		t.Errorf("truncateBody(short) = %q", got)
	}
	got := truncateBody([]byte("0123456789abcdef"), 10)
	if !strings.HasSuffix(got, "...[truncated]") {
		t.Errorf("truncateBody long = %q, want truncation marker", got)
	}
	if !strings.HasPrefix(got, "0123456789") {
		t.Errorf("truncateBody long = %q, want first 10 bytes kept", got)
	}
}

// The round tripper must never let credential material reach the log
// output.
func TestLoggingRoundTripper_RedactsAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":0,"data":{}}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	rt := NewLoggingRoundTripper(http.DefaultTransport, NewHTTPLogger(logger), true)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest error = %v", err)
	}
	req.Header.Set("Authorization", "Bearer super-secret-token")

	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip error = %v", err)
	}
	resp.Body.Close()

	logged := buf.String()
	if strings.Contains(logged, "super-secret-token") {
		t.Error("bearer token leaked into log output")
	}
	if !strings.Contains(logged, "[REDACTED]") {
		t.Error("Authorization header was not redacted")
	}
	if !strings.Contains(logged, "request_id") {
		t.Error("log entries carry no request id")
	}
}
