package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPLogger provides request/response logging for the API client.
// Credentials never reach the log: sensitive headers and body fields are
// redacted before the entry is written.
type HTTPLogger struct {
	logger      *Logger
	maxBodySize int
}

// NewHTTPLogger creates a new HTTP logger
func NewHTTPLogger(logger *Logger) *HTTPLogger {
	return &HTTPLogger{
		logger:      logger,
		maxBodySize: 10000,
	}
}

// LogRequest logs an HTTP request
func (h *HTTPLogger) LogRequest(id string, req *http.Request, body []byte) {
	fields := Fields{
		"request_id": id,
		"method":     req.Method,
		"url":        req.URL.String(),
		"host":       req.Host,
	}

	headers := make(map[string]string)
	for k, v := range req.Header {
		if isSensitiveHeader(k) {
			headers[k] = "[REDACTED]"
		} else if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	fields["headers"] = headers

	if len(body) > 0 {
		h.addBody(fields, body)
	}

	h.logger.Debug("HTTP request", fields)
}

// LogResponse logs an HTTP response
func (h *HTTPLogger) LogResponse(id string, resp *http.Response, body []byte, duration time.Duration) {
	fields := Fields{
		"request_id":  id,
		"status":      resp.StatusCode,
		"status_text": resp.Status,
		"duration_ms": duration.Milliseconds(),
	}

	if len(body) > 0 {
		h.addBody(fields, body)
	}

	h.logger.Debug("HTTP response", fields)
}

// LogError logs a failed HTTP exchange
func (h *HTTPLogger) LogError(id string, err error, req *http.Request) {
	fields := Fields{
		"request_id": id,
		"method":     req.Method,
		"url":        req.URL.String(),
	}

	h.logger.Error("HTTP error", err, fields)
}

// addBody attaches a (possibly truncated, always redacted) body to fields.
func (h *HTTPLogger) addBody(fields Fields, body []byte) {
	fields["body_size"] = len(body)

	if json.Valid(body) {
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			fields["body"] = redactSensitiveFields(parsed)
			return
		}
	}
	fields["body"] = truncateBody(body, h.maxBodySize)
}

// RoundTripperWrapper wraps an http.RoundTripper with logging
type RoundTripperWrapper struct {
	wrapped http.RoundTripper
	logger  *HTTPLogger
	logBody bool
}

// NewLoggingRoundTripper creates a new logging round tripper
func NewLoggingRoundTripper(wrapped http.RoundTripper, logger *HTTPLogger, logBody bool) *RoundTripperWrapper {
	if wrapped == nil {
		wrapped = http.DefaultTransport
	}
	return &RoundTripperWrapper{
		wrapped: wrapped,
		logger:  logger,
		logBody: logBody,
	}
}

// RoundTrip implements http.RoundTripper. Each exchange gets a request id
// so the request and response entries can be correlated.
func (rt *RoundTripperWrapper) RoundTrip(req *http.Request) (*http.Response, error) {
	id := uuid.New().String()
	start := time.Now()

	var reqBody []byte
	if rt.logBody && req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}
	rt.logger.LogRequest(id, req, reqBody)

	resp, err := rt.wrapped.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.logger.LogError(id, err, req)
		return nil, err
	}

	var respBody []byte
	if rt.logBody {
		respBody, _ = io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewBuffer(respBody))
	}
	rt.logger.LogResponse(id, resp, respBody, duration)

	return resp, nil
}

// isSensitiveHeader checks if a header should be redacted
func isSensitiveHeader(name string) bool {
	sensitive := []string{
		"authorization",
		"x-auth-token",
		"cookie",
		"set-cookie",
	}
	nameLower := strings.ToLower(name)
	for _, s := range sensitive {
		if nameLower == s {
			return true
		}
	}
	return false
}

// truncateBody truncates body if too large
func truncateBody(body []byte, maxSize int) string {
	if len(body) <= maxSize {
		return string(body)
	}
	return string(body[:maxSize]) + "...[truncated]"
}

// redactSensitiveFields redacts sensitive fields in parsed JSON
func redactSensitiveFields(data interface{}) interface{} {
	sensitiveKeys := []string{
		"password", "token", "key", "secret", "authorization",
	}

	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{})
		for k, val := range v {
			keyLower := strings.ToLower(k)
			isSensitive := false
			for _, sensitive := range sensitiveKeys {
				if strings.Contains(keyLower, sensitive) {
					isSensitive = true
					break
				}
			}
			if isSensitive {
				result[k] = "[REDACTED]"
			} else {
				result[k] = redactSensitiveFields(val)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = redactSensitiveFields(item)
		}
		return result
	default:
		return data
	}
}
