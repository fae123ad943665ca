package client

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeTestCA writes a self-signed certificate PEM to dir.
func writeTestCA(t *testing.T, dir string) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	template := x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "test-ca"},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}

	path := filepath.Join(dir, "ca.pem")
	out := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(path, out, 0600); err != nil {
		t.Fatalf("write CA file: %v", err)
	}
	return path
}

// transportConfig digs the TLS config out of a built client.
func transportConfig(t *testing.T, c *http.Client) *http.Transport {
	t.Helper()
	transport, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport is %T, want *http.Transport", c.Transport)
	}
	return transport
}

func TestNewHTTPClient_Defaults(t *testing.T) {
	c, err := newHTTPClient(10*time.Second, TLSOptions{Verify: true}, false)
	if err != nil {
		t.Fatalf("newHTTPClient() error = %v", err)
	}

	if c.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", c.Timeout)
	}
	if transportConfig(t, c).TLSClientConfig.InsecureSkipVerify {
		t.Error("InsecureSkipVerify set with Verify: true")
	}
}

func TestNewHTTPClient_InsecureOptOut(t *testing.T) {
	c, err := newHTTPClient(time.Second, TLSOptions{Verify: false}, false)
	if err != nil {
		t.Fatalf("newHTTPClient() error = %v", err)
	}

	if !transportConfig(t, c).TLSClientConfig.InsecureSkipVerify {
		t.Error("InsecureSkipVerify not set with Verify: false")
	}
}

func TestNewHTTPClient_CustomCA(t *testing.T) {
	caPath := writeTestCA(t, t.TempDir())

	c, err := newHTTPClient(time.Second, TLSOptions{Verify: true, CACert: caPath}, false)
	if err != nil {
		t.Fatalf("newHTTPClient() error = %v", err)
	}

	if transportConfig(t, c).TLSClientConfig.RootCAs == nil {
		t.Error("RootCAs not populated from CA file")
	}
}

func TestNewHTTPClient_MissingCAFile(t *testing.T) {
	_, err := newHTTPClient(time.Second, TLSOptions{
		Verify: true,
		CACert: filepath.Join(t.TempDir(), "does-not-exist.pem"),
	}, false)

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("newHTTPClient() error = %v, want *ConfigError", err)
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("ConfigError does not wrap *NotFoundError: %v", err)
	}
}

func TestNewHTTPClient_InvalidCAPEM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(path, []byte("not a certificate"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := newHTTPClient(time.Second, TLSOptions{Verify: true, CACert: path}, false)

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("newHTTPClient() error = %v, want *ConfigError", err)
	}
}

func TestNewHTTPClient_BadClientIdentity(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "client.pem")
	keyPath := filepath.Join(dir, "client-key.pem")
	_ = os.WriteFile(certPath, []byte("garbage"), 0600)
	_ = os.WriteFile(keyPath, []byte("garbage"), 0600)

	_, err := newHTTPClient(time.Second, TLSOptions{
		Verify:     true,
		ClientCert: certPath,
		ClientKey:  keyPath,
	}, false)

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("newHTTPClient() error = %v, want *ConfigError", err)
	}
}

func TestNewHTTPClient_ClientCertWithoutKeyIgnored(t *testing.T) {
	// Both halves of the identity are required; a lone cert is not an
	// error, it is simply not presented.
	c, err := newHTTPClient(time.Second, TLSOptions{
		Verify:     true,
		ClientCert: "/some/cert.pem",
	}, false)
	if err != nil {
		t.Fatalf("newHTTPClient() error = %v", err)
	}
	if len(transportConfig(t, c).TLSClientConfig.Certificates) != 0 {
		t.Error("client identity presented without a key")
	}
}

func TestNewHTTPClient_DebugWrapsTransport(t *testing.T) {
	c, err := newHTTPClient(time.Second, TLSOptions{Verify: true}, true)
	if err != nil {
		t.Fatalf("newHTTPClient() error = %v", err)
	}
	if _, ok := c.Transport.(*http.Transport); ok {
		t.Error("debug mode did not wrap the transport with logging")
	}
}
