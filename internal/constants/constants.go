// Package constants provides shared defaults used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout bounds every Wazuh API request, including login.
	DefaultAPITimeout = 30 * time.Second
)

// Application defaults
const (
	AppName        = "wazuh-cli"
	ConfigFileName = "config.yaml"
)

// Wazuh API connection defaults
const (
	DefaultHost     = "localhost"
	DefaultPort     = 55000
	DefaultProtocol = "https"
)

// Wazuh API endpoints
const (
	// LoginPath accepts HTTP Basic credentials and issues a session token.
	LoginPath = "/security/user/authenticate"
	// ProbePath is a cheap authenticated endpoint used only to test whether
	// a stored token is still accepted. Any endpoint that answers 401 to an
	// expired token would do.
	ProbePath = "/security/user/authenticate/run_as"
)
