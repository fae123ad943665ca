package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  host: wazuh.example.com
  port: 56000
auth:
  username: admin
  token: persisted-token
tls:
  verify: false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Host != "wazuh.example.com" {
		t.Errorf("API.Host = %q, want wazuh.example.com", cfg.API.Host)
	}
	if cfg.API.Port != 56000 {
		t.Errorf("API.Port = %d, want 56000", cfg.API.Port)
	}
	if cfg.Auth.Token != "persisted-token" {
		t.Errorf("Auth.Token = %q, want persisted-token", cfg.Auth.Token)
	}
	if cfg.TLS.Verify {
		t.Error("TLS.Verify should be false")
	}
	// Fields absent from the file keep their defaults.
	if cfg.API.Protocol != "https" {
		t.Errorf("API.Protocol = %q, want default https", cfg.API.Protocol)
	}
	if cfg.API.Timeout != 30 {
		t.Errorf("API.Timeout = %d, want default 30", cfg.API.Timeout)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [broken\n  - yaml"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("Load() error = %v, want parse failure", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  host: from-file\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvHost, "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Host != "from-env" {
		t.Errorf("API.Host = %q, want from-env (env beats file)", cfg.API.Host)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewConfig()
	cfg.API.Host = "test.example.com"
	cfg.Auth.Username = "testuser"
	cfg.Auth.Token = "session-token"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat saved config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.API.Host != "test.example.com" {
		t.Errorf("API.Host = %q, want test.example.com", loaded.API.Host)
	}
	if loaded.Auth.Username != "testuser" {
		t.Errorf("Auth.Username = %q, want testuser", loaded.Auth.Username)
	}
	if loaded.Auth.Token != "session-token" {
		t.Errorf("Auth.Token = %q, want session-token", loaded.Auth.Token)
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) == 0 {
		t.Fatal("GetConfigPaths() returned no paths")
	}
	if !strings.Contains(paths[0], ".wazuh-cli") {
		t.Errorf("first path %q should be the working-directory location", paths[0])
	}
	for _, p := range paths {
		if !strings.HasSuffix(p, "config.yaml") {
			t.Errorf("path %q does not end in config.yaml", p)
		}
	}
}
