// Package client implements the authenticated request pipeline for the
// Wazuh API: transport construction with TLS trust configuration, a
// lock-guarded token store, opportunistic token validation with Basic-auth
// login, request execution with a single re-authentication retry on 401,
// and uniform envelope decoding.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wazuh-tools/wazuh-cli/internal/constants"
	"github.com/wazuh-tools/wazuh-cli/internal/logging"
)

// Options configures a Client. The transport settings are immutable after
// construction; credentials and token seed the token store.
type Options struct {
	// BaseURL is the API root, e.g. https://localhost:55000.
	BaseURL string
	// Timeout bounds every request. Zero means constants.DefaultAPITimeout.
	Timeout time.Duration
	// TLS holds the trust configuration.
	TLS TLSOptions

	// Username and Password are required only for the initial login.
	Username string
	Password string
	// Token pre-seeds the store with a persisted session token.
	Token string

	// Debug enables HTTP request/response tracing.
	Debug bool
}

// Client is the Wazuh API client. All methods are safe for concurrent
// use; the token store is the only mutable shared state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	store      *TokenStore
}

// New builds a Client from options. No network I/O happens here.
func New(opts Options) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = constants.DefaultAPITimeout
	}
	httpClient, err := newHTTPClient(opts.Timeout, opts.TLS, opts.Debug)
	if err != nil {
		return nil, err
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		store:      NewTokenStore(opts.Username, opts.Password, opts.Token),
	}, nil
}

// Store exposes the token store, primarily so callers can persist a newly
// issued token or clear it on logout.
func (c *Client) Store() *TokenStore {
	return c.store
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues an authenticated GET request.
func (c *Client) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, endpoint, nil)
}

// Post issues an authenticated POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, endpoint, body)
}

// Put issues an authenticated PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (*http.Response, error) {
	return c.Do(ctx, http.MethodPut, endpoint, body)
}

// Delete issues an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, nil)
}

// Do issues an authenticated request.
//
// Relative endpoints are joined with the base URL; targets that already
// carry a scheme pass through verbatim. Without a stored token Do fails
// immediately with an AuthError and sends nothing.
//
// If the response is 401 the client re-authenticates exactly once and
// resends the identical request with the fresh token; a second 401 is
// returned to the caller as-is, never looped. Transport failures are
// classified as NetworkError or ErrTimeout and never trigger the
// re-authentication path.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	target := c.resolveURL(endpoint)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, &SerializationError{Message: fmt.Sprintf("marshal request body: %v", err)}
		}
	}

	token, ok := c.store.Token()
	if !ok {
		return nil, &AuthError{Message: "not authenticated"}
	}

	resp, err := c.send(ctx, method, target, token, payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Token rejected: one re-authentication, one resend. A second 401 is
	// the caller's to handle.
	drainBody(resp)
	logging.Warn("token rejected, re-authenticating", logging.Fields{"url": target})

	if err := c.Authenticate(ctx); err != nil {
		return nil, err
	}

	token, ok = c.store.Token()
	if !ok {
		return nil, &AuthError{Message: "no token after re-authentication"}
	}
	return c.send(ctx, method, target, token, payload)
}

// resolveURL joins relative endpoints with the base URL; absolute targets
// are used verbatim.
func (c *Client) resolveURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.baseURL + endpoint
}

// send performs a single bearer-authenticated exchange with no retry of
// any kind. The token is passed in by value so no lock is held while the
// request is in flight.
func (c *Client) send(ctx context.Context, method, target, token string, payload []byte) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("API request", logging.Fields{"method": method, "url": target})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	return resp, nil
}

// drainBody discards and closes a response body that will not be decoded,
// so the underlying connection can be reused.
func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
