// Package config loads, merges and persists the CLI configuration.
//
// Precedence, lowest first: built-in defaults, config file, environment
// variables. Flags are applied by the cmd package on top of the merged
// result. The config file is also where an issued session token is
// persisted between invocations.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wazuh-tools/wazuh-cli/internal/constants"
)

// Environment variable names
const (
	EnvHost     = "WAZUH_HOST"
	EnvPort     = "WAZUH_PORT"
	EnvProtocol = "WAZUH_PROTOCOL"
	EnvUser     = "WAZUH_USER"
	EnvPassword = "WAZUH_PASSWORD"
	EnvVerify   = "WAZUH_TLS_VERIFY"
)

// Config is the full application configuration, mirrored one-to-one in
// the YAML config file.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Auth   AuthConfig   `yaml:"auth"`
	Output OutputConfig `yaml:"output"`
	TLS    TLSConfig    `yaml:"tls"`
}

// APIConfig holds the connection settings for the Wazuh API.
type APIConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Protocol string `yaml:"protocol"`
	// Timeout bounds every API request, in seconds.
	Timeout int `yaml:"timeout"`
}

// AuthConfig holds credentials and the persisted session token.
type AuthConfig struct {
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// OutputConfig holds presentation preferences.
type OutputConfig struct {
	Format string `yaml:"format"` // "table" or "json"
	Color  bool   `yaml:"color"`
}

// TLSConfig holds the transport trust settings.
type TLSConfig struct {
	Verify     bool   `yaml:"verify"`
	CACert     string `yaml:"ca_cert,omitempty"`
	ClientCert string `yaml:"client_cert,omitempty"`
	ClientKey  string `yaml:"client_key,omitempty"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		API: APIConfig{
			Host:     constants.DefaultHost,
			Port:     constants.DefaultPort,
			Protocol: constants.DefaultProtocol,
			Timeout:  int(constants.DefaultAPITimeout / time.Second),
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
		TLS: TLSConfig{
			Verify: true,
		},
	}
}

// APIURL returns the base URL of the configured API.
func (c *Config) APIURL() string {
	return fmt.Sprintf("%s://%s:%d", c.API.Protocol, c.API.Host, c.API.Port)
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.API.Timeout <= 0 {
		return constants.DefaultAPITimeout
	}
	return time.Duration(c.API.Timeout) * time.Second
}

// IsAuthenticated reports whether a session token is stored.
func (c *Config) IsAuthenticated() bool {
	return c.Auth.Token != ""
}

// UpdateToken records a newly issued session token for persistence.
func (c *Config) UpdateToken(token string) {
	c.Auth.Token = token
}

// ClearToken drops the persisted session token.
func (c *Config) ClearToken() {
	c.Auth.Token = ""
}

// ApplyEnv overlays environment variables on top of file values.
func (c *Config) ApplyEnv() {
	if host := os.Getenv(EnvHost); host != "" {
		c.API.Host = host
	}
	if port := os.Getenv(EnvPort); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			c.API.Port = p
		}
	}
	if protocol := os.Getenv(EnvProtocol); protocol != "" {
		c.API.Protocol = protocol
	}
	if user := os.Getenv(EnvUser); user != "" {
		c.Auth.Username = user
	}
	if password := os.Getenv(EnvPassword); password != "" {
		c.Auth.Password = password
	}
	if verify := os.Getenv(EnvVerify); verify != "" {
		c.TLS.Verify = strings.EqualFold(verify, "true") || verify == "1"
	}
}

// Get returns the value of a dotted configuration key, e.g. "api.host".
// ok is false for unknown keys. Secrets are masked.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case "api.host":
		return c.API.Host, true
	case "api.port":
		return strconv.Itoa(c.API.Port), true
	case "api.protocol":
		return c.API.Protocol, true
	case "api.timeout":
		return strconv.Itoa(c.API.Timeout), true
	case "auth.username":
		return c.Auth.Username, true
	case "output.format":
		return c.Output.Format, true
	case "output.color":
		return strconv.FormatBool(c.Output.Color), true
	case "tls.verify":
		return strconv.FormatBool(c.TLS.Verify), true
	case "tls.ca_cert":
		return c.TLS.CACert, true
	case "tls.client_cert":
		return c.TLS.ClientCert, true
	case "tls.client_key":
		return c.TLS.ClientKey, true
	default:
		return "", false
	}
}

// Set updates a dotted configuration key from its string form. Unknown
// keys and unparsable values return an error; the caller persists the
// result with Save.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api.host":
		c.API.Host = value
	case "api.port":
		p, err := strconv.Atoi(value)
		if err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid port %q", value)
		}
		c.API.Port = p
	case "api.protocol":
		if value != "http" && value != "https" {
			return fmt.Errorf("invalid protocol %q (use http or https)", value)
		}
		c.API.Protocol = value
	case "api.timeout":
		t, err := strconv.Atoi(value)
		if err != nil || t <= 0 {
			return fmt.Errorf("invalid timeout %q", value)
		}
		c.API.Timeout = t
	case "auth.username":
		c.Auth.Username = value
	case "auth.password":
		c.Auth.Password = value
	case "output.format":
		if value != "table" && value != "json" {
			return fmt.Errorf("invalid format %q (use table or json)", value)
		}
		c.Output.Format = value
	case "output.color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		c.Output.Color = b
	case "tls.verify":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		c.TLS.Verify = b
	case "tls.ca_cert":
		c.TLS.CACert = value
	case "tls.client_cert":
		c.TLS.ClientCert = value
	case "tls.client_key":
		c.TLS.ClientKey = value
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}
