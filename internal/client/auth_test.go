package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthenticate_ValidTokenUsesProbeOnly(t *testing.T) {
	api := newFakeAPI(t)
	api.probeStatus = http.StatusOK
	c := newTestClient(t, api, Options{
		Username: "admin",
		Password: "secret",
		Token:    "still-good",
	})

	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	if got := api.probeCalls.Load(); got != 1 {
		t.Errorf("probe calls = %d, want 1", got)
	}
	if got := api.loginCalls.Load(); got != 0 {
		t.Errorf("login calls = %d, want 0", got)
	}
	if token, _ := c.Store().Token(); token != "still-good" {
		t.Errorf("stored token = %q, want unchanged %q", token, "still-good")
	}
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	api := newFakeAPI(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"no credentials", "", ""},
		{"username only", "admin", ""},
		{"password only", "", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := api.loginCalls.Load()
			c := newTestClient(t, api, Options{Username: tt.username, Password: tt.password})

			err := c.Authenticate(context.Background())

			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("Authenticate() error = %v, want *AuthError", err)
			}
			if got := api.loginCalls.Load(); got != before {
				t.Errorf("login calls = %d, want %d (no network call without credentials)", got, before)
			}
		})
	}
}

func TestAuthenticate_LoginStoresToken(t *testing.T) {
	api := newFakeAPI(t)
	api.loginToken = "abc"
	c := newTestClient(t, api, Options{Username: "admin", Password: "secret"})

	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	token, ok := c.Store().Token()
	if !ok || token != "abc" {
		t.Errorf("stored token = %q, want %q", token, "abc")
	}
}

func TestAuthenticate_SendsBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		_, _ = w.Write([]byte(`{"data":{"token":"abc"}}`))
	}))
	defer server.Close()

	c, err := New(Options{BaseURL: server.URL, Username: "admin", Password: "secret"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !gotOK {
		t.Fatal("login request carried no Basic authorization")
	}
	if gotUser != "admin" || gotPass != "secret" {
		t.Errorf("Basic auth = %q/%q, want admin/secret", gotUser, gotPass)
	}
}

func TestAuthenticate_LoginRejected(t *testing.T) {
	api := newFakeAPI(t)
	api.loginStatus = http.StatusUnauthorized
	c := newTestClient(t, api, Options{Username: "admin", Password: "wrong"})

	err := c.Authenticate(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Authenticate() error = %v, want *APIError", err)
	}
	if apiErr.Code != 6000 || apiErr.Message != "Invalid credentials" {
		t.Errorf("APIError = {%d %q}, want {6000 %q}", apiErr.Code, apiErr.Message, "Invalid credentials")
	}
	if _, ok := c.Store().Token(); ok {
		t.Error("token stored after rejected login")
	}
}

func TestAuthenticate_MalformedLoginResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	c, err := New(Options{BaseURL: server.URL, Username: "admin", Password: "secret"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = c.Authenticate(context.Background())

	var serErr *SerializationError
	if !errors.As(err, &serErr) {
		t.Fatalf("Authenticate() error = %v, want *SerializationError", err)
	}
	if serErr.Body != "not json at all" {
		t.Errorf("SerializationError.Body = %q, want raw body", serErr.Body)
	}
}

func TestAuthenticate_ExpiredTokenReplaced(t *testing.T) {
	api := newFakeAPI(t)
	api.probeStatus = http.StatusUnauthorized
	api.loginToken = "fresh"
	c := newTestClient(t, api, Options{
		Username: "admin",
		Password: "secret",
		Token:    "expired",
	})

	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	if token, _ := c.Store().Token(); token != "fresh" {
		t.Errorf("stored token = %q, want %q", token, "fresh")
	}
	if got := api.probeCalls.Load(); got != 1 {
		t.Errorf("probe calls = %d, want 1", got)
	}
	if got := api.loginCalls.Load(); got != 1 {
		t.Errorf("login calls = %d, want 1", got)
	}
}

func TestAuthenticate_ProbeNetworkErrorPropagates(t *testing.T) {
	api := newFakeAPI(t)
	c := newTestClient(t, api, Options{
		Username: "admin",
		Password: "secret",
		Token:    "whatever",
	})
	api.server.Close()

	err := c.Authenticate(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Authenticate() error = %v, want *NetworkError", err)
	}
}
