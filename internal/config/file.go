package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wazuh-tools/wazuh-cli/internal/constants"
)

// GetConfigPaths returns the paths checked for a config file, in order of
// priority.
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, constants.ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, constants.ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, constants.ConfigFileName))
	}

	return paths
}

// DefaultConfigPath returns where a new config file is created.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, constants.AppName, constants.ConfigFileName), nil
}

// Load reads the configuration. With an explicit path only that file is
// consulted; otherwise the search paths are tried in order. A missing
// file is not an error: defaults plus environment overrides apply.
func Load(explicitPath string) (*Config, error) {
	cfg := NewConfig()

	if explicitPath != "" {
		if err := loadFromPath(cfg, explicitPath); err != nil {
			return nil, err
		}
	} else {
		for _, path := range GetConfigPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := loadFromPath(cfg, path); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// loadFromPath unmarshals a config file over cfg's current values, so
// fields absent from the file keep their defaults.
func loadFromPath(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to path, creating parent directories as
// needed. With an empty path the default location is used. The file is
// written 0600 because it may hold credentials and a session token.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// FindConfigFile returns the path of the config file that Load would use,
// or "" when none exists.
func FindConfigFile() string {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// CreateDefaultConfigFile writes a commented starter config at the
// default location. It refuses to overwrite an existing file unless
// force is set.
func CreateDefaultConfigFile(force bool) (string, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Wazuh CLI Configuration
# Location: ~/.config/wazuh-cli/config.yaml

api:
  host: localhost
  port: 55000
  protocol: https
  # Request timeout in seconds
  timeout: 30

auth:
  # Credentials for the initial login. The session token issued by the
  # API is persisted here as well.
  # username: wazuh
  # password: wazuh

output:
  # "table" or "json"
  format: table
  color: true

tls:
  # Disable only against test instances with self-signed certificates.
  verify: true
  # ca_cert: /path/to/ca.pem
  # client_cert: /path/to/client.pem
  # client_key: /path/to/client-key.pem
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
