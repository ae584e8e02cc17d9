package session

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// NewHTTPClient builds the transport for the login call. When caPath is
// non-empty the certificate at that path is trusted for server
// verification, so a self-signed API certificate from tools/certgen works.
// The timeout bounds the whole request; a hung server surfaces as a
// transport failure instead of blocking the caller indefinitely.
func NewHTTPClient(caPath string, timeout time.Duration) (*http.Client, error) {
	client := &http.Client{Timeout: timeout}
	if caPath == "" {
		return client, nil
	}

	caCert, err := os.ReadFile(caPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}

	client.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{RootCAs: caPool, MinVersion: tls.VersionTLS12},
	}
	return client, nil
}
