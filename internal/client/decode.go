package client

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/wazuh-tools/wazuh-cli/internal/models"
)

// apiErrorFromBody parses body as an API error envelope. When the body is
// not a valid envelope the error is synthesized from the HTTP status and
// the raw body text instead, so a failure is always reportable.
func apiErrorFromBody(status int, body []byte) *APIError {
	var env struct {
		Error   *int    `json:"error"`
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Message != nil {
		return &APIError{Code: *env.Error, Message: *env.Message}
	}
	return &APIError{Code: status, Message: string(body)}
}

// Parse decodes a response body into T.
//
// The body is buffered before anything else so that a non-JSON error body
// is still reportable. Non-2xx statuses become an APIError; a success
// status with a malformed body becomes a SerializationError carrying the
// raw payload. Parse never panics on malformed input.
func Parse[T any](resp *http.Response) (T, error) {
	var zero T

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, apiErrorFromBody(resp.StatusCode, body)
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, &SerializationError{Message: err.Error(), Body: string(body)}
	}
	return out, nil
}

// ParseEnvelope decodes a response into the standard {error, data, message}
// envelope and enforces the envelope-level error code: a 2xx response
// carrying a non-zero error code is still a failure and its data must not
// be trusted.
func ParseEnvelope[T any](resp *http.Response) (*models.ApiResponse[T], error) {
	env, err := Parse[models.ApiResponse[T]](resp)
	if err != nil {
		return nil, err
	}
	if env.Error != 0 {
		return nil, &APIError{Code: env.Error, Message: env.Message}
	}
	return &env, nil
}
