package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
)

// APIError is a semantic rejection from the Wazuh API. Code carries the
// envelope error code, or the raw HTTP status when the body was not a
// valid envelope.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Code, e.Message)
}

// AuthError reports missing or rejected credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Message
}

// ConfigError reports unusable client configuration, typically bad TLS
// material.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Err)
	}
	return "configuration error: " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NetworkError reports a connectivity failure (refused connection, DNS,
// broken transfer). It never triggers the re-authentication path.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ErrTimeout is returned when a request exceeds the configured timeout.
// The token store is left untouched on timeout.
var ErrTimeout = errors.New("operation timed out")

// SerializationError reports a malformed request or response body. Body
// carries the raw payload for diagnostics.
type SerializationError struct {
	Message string
	Body    string
}

func (e *SerializationError) Error() string {
	return "serialization error: " + e.Message
}

// NotFoundError and PermissionError surface local file-system failures
// through the same taxonomy as remote ones.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Path
}

type PermissionError struct {
	Path string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Path
}

// fileError maps an os error for path into the shared taxonomy.
func fileError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return &NotFoundError{Path: path}
	case os.IsPermission(err):
		return &PermissionError{Path: path}
	default:
		return err
	}
}

// classifyTransportError turns an http.Client failure into a typed error.
// Timeouts are distinguished from other connectivity failures so callers
// can tell a slow server from an unreachable one.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return &NetworkError{Err: err}
}
