package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/wazuh-tools/wazuh-cli/internal/constants"
	"github.com/wazuh-tools/wazuh-cli/internal/logging"
)

// Authenticate ensures the token store holds a usable session token.
//
// A stored token is tested empirically with a cheap probe request rather
// than by decoding its expiry; any answer other than 401 means the server
// still accepts it. Without a usable token the stored credentials are
// submitted over HTTP Basic to the login endpoint and the issued token is
// committed to the store.
//
// Two concurrent calls may both perform a login round trip; the last
// write wins, which is idempotent since both use the same credentials.
func (c *Client) Authenticate(ctx context.Context) error {
	if token, ok := c.store.Token(); ok {
		valid, err := c.probeToken(ctx, token)
		if err != nil {
			return err
		}
		if valid {
			logging.Debug("stored token still accepted")
			return nil
		}
	}

	username, password, ok := c.store.Credentials()
	if !ok {
		return &AuthError{Message: "username and password required"}
	}

	token, err := c.login(ctx, username, password)
	if err != nil {
		return err
	}

	c.store.SetToken(token)
	logging.Info("authenticated with the Wazuh API")
	return nil
}

// probeToken sends a single authenticated request and reports whether the
// token was accepted. It bypasses Do so a 401 here can never trigger
// another authentication round.
func (c *Client) probeToken(ctx context.Context, token string) (bool, error) {
	resp, err := c.send(ctx, http.MethodGet, c.baseURL+constants.ProbePath, token, nil)
	if err != nil {
		return false, err
	}
	drainBody(resp)
	return resp.StatusCode != http.StatusUnauthorized, nil
}

// login exchanges credentials for a session token.
func (c *Client) login(ctx context.Context, username, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+constants.LoginPath, nil)
	if err != nil {
		return "", &AuthError{Message: err.Error()}
	}
	req.SetBasicAuth(username, password)

	logging.Debug("logging in", logging.Fields{"url": req.URL.String(), "user": username})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apiErrorFromBody(resp.StatusCode, body)
	}

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Data.Token == "" {
		return "", &SerializationError{Message: "parse login response", Body: string(body)}
	}
	return envelope.Data.Token, nil
}
