package client

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/wazuh-tools/wazuh-cli/internal/logging"
)

// TLSOptions controls how the transport trusts the API server and,
// optionally, identifies itself to it.
type TLSOptions struct {
	// Verify enables server certificate validation. Disabling it is an
	// explicit, insecure opt-out and never the default.
	Verify bool
	// CACert is the path to an additional trusted root, PEM encoded.
	CACert string
	// ClientCert and ClientKey form a mutual-TLS identity. Both must be
	// set for the identity to be presented.
	ClientCert string
	ClientKey  string
}

// newHTTPClient builds the HTTP client used for every API call. It does no
// network I/O; unusable TLS material fails with a ConfigError.
func newHTTPClient(timeout time.Duration, opts TLSOptions, debug bool) (*http.Client, error) {
	tlsCfg := &tls.Config{
		InsecureSkipVerify: !opts.Verify, // #nosec G402 -- explicit user opt-out
	}

	if opts.CACert != "" {
		pem, err := os.ReadFile(opts.CACert)
		if err != nil {
			return nil, &ConfigError{
				Message: fmt.Sprintf("read CA certificate %s", opts.CACert),
				Err:     fileError(opts.CACert, err),
			}
		}
		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, &ConfigError{
				Message: fmt.Sprintf("parse CA certificate %s", opts.CACert),
			}
		}
		tlsCfg.RootCAs = pool
	}

	if opts.ClientCert != "" && opts.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(opts.ClientCert, opts.ClientKey)
		if err != nil {
			return nil, &ConfigError{
				Message: "load client identity",
				Err:     err,
			}
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	var rt http.RoundTripper = &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: tlsCfg,
	}

	if debug {
		logger := logging.New(logging.Options{
			Level:  logging.LevelDebug,
			Format: logging.FormatJSON,
		})
		rt = logging.NewLoggingRoundTripper(rt, logging.NewHTTPLogger(logger), true)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: rt,
	}, nil
}
