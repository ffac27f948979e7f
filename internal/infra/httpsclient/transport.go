// Package httpsclient performs one-shot HTTPS POST requests for the Bot API
// client. Each call opens its own connection, sends a prepared multipart
// body and reads the full response; there is no retry, timeout or
// connection reuse.
package httpsclient

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Transport posts multipart bodies over HTTPS under one of two trust modes:
// verify the server chain against a single pinned root certificate (the
// default), or skip verification entirely.
type Transport struct {
	log      *logrus.Logger
	rootPEM  []byte
	insecure bool
}

// New creates a Transport that verifies servers against the default pinned
// root certificate.
func New(log *logrus.Logger) *Transport {
	return &Transport{
		log:     log,
		rootPEM: []byte(pinnedRootPEM),
	}
}

// SetRootCertificate replaces the pinned root certificate with the given
// PEM data. It has no effect in insecure mode.
func (t *Transport) SetRootCertificate(pem []byte) {
	t.rootPEM = pem
}

// EnableInsecure switches the transport to skip all certificate
// validation.
func (t *Transport) EnableInsecure() {
	t.insecure = true
}

// Post sends the body as a single POST request and returns the raw status
// code and response bytes. Remote rejection is not an error: any status the
// server answers with is handed back to the caller. An error means the
// request never completed (bad URL, connection or TLS handshake failure,
// truncated response).
func (t *Transport) Post(rawURL string, body []byte, boundary string) (int, []byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, nil, fmt.Errorf("parse request URL: %w", err)
	}
	t.log.Debugf("Sending POST request to %s", u.Path)

	tlsConfig, err := t.tlsConfig()
	if err != nil {
		return 0, nil, err
	}

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig:   tlsConfig,
			DisableKeepAlives: true,
		},
	}

	req, err := http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("build POST request: %w", err)
	}
	req.Header.Set("Content-Type", fmt.Sprintf("multipart/form-data; boundary=%s", boundary))
	req.ContentLength = int64(len(body))

	resp, err := client.Do(req)
	if err != nil {
		// The wrapped url.Error carries the full token-bearing URL;
		// unwrap it so the token cannot leak through error messages.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return 0, nil, fmt.Errorf("POST to %s failed: %w", u.Host, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response from %s: %w", u.Host, err)
	}

	return resp.StatusCode, data, nil
}

// tlsConfig builds the client TLS configuration for the active trust mode.
// In verify mode the pool contains only the pinned root, never the system
// trust store, and a chain that does not anchor there fails the call.
func (t *Transport) tlsConfig() (*tls.Config, error) {
	if t.insecure {
		t.log.Warn("Skipping certificate verification as requested by user!")
		return &tls.Config{InsecureSkipVerify: true}, nil //nolint:gosec // explicit insecure trust mode
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(t.rootPEM) {
		return nil, errors.New("parse pinned root certificate")
	}
	return &tls.Config{RootCAs: pool}, nil
}
