// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/juju/errors"
	"go.uber.org/zap"
)

// HTTPTransport is the default transport, built on net/http. Each call uses
// a fresh client with keep-alives disabled, so no connection state survives
// between calls.
type HTTPTransport struct {
	// Logger receives debug-level request logs. Nil disables logging.
	Logger *zap.Logger
}

// newHTTPClient creates a fresh HTTP client with disabled connection reuse.
// This avoids EOF errors that can occur with connection pooling in complex
// process hierarchies.
func (t *HTTPTransport) newHTTPClient(ep *Endpoint) (*http.Client, error) {
	tr := &http.Transport{
		DisableKeepAlives: true, // Disable connection reuse to avoid EOF issues
	}
	if p := ep.Proxy; p != nil {
		if p.Mode != "" && p.Mode != AuthBasic {
			return nil, fmt.Errorf("proxy auth mode %q not supported by the HTTP transport%w", p.Mode, errors.Hide(ErrConfig))
		}
		tr.Proxy = http.ProxyURL(&url.URL{Scheme: "http", Host: p.addr()})
		if p.User != "" {
			// Credentials travel in a header, never in the proxy URL,
			// so they cannot surface in transport error strings.
			tr.ProxyConnectHeader = http.Header{
				"Proxy-Authorization": {basicCredentials(p.User, p.Pass)},
			}
		}
	}
	timeout := ep.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout, Transport: tr}, nil
}

// cleanlyCloseBody drains and closes an HTTP response body to prevent
// HTTP/2 GOAWAY errors caused by closing bodies with unread data.
// See: https://github.com/golang/go/issues/46071
func cleanlyCloseBody(body io.ReadCloser) error {
	if body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, body)
	return body.Close()
}

func basicCredentials(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

// Send posts payload to the endpoint and returns the raw response body.
func (t *HTTPTransport) Send(ctx context.Context, ep *Endpoint, payload []byte) ([]byte, error) {
	client, err := t.newHTTPClient(ep)
	if err != nil {
		return nil, errors.Trace(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("network: %v%w", err, errors.Hide(ErrTransport))
	}
	req.Header.Set("Content-Type", "text/xml")
	if ep.UserAgent != "" {
		req.Header.Set("User-Agent", ep.UserAgent)
	}
	if a := ep.Auth; a != nil {
		if a.Mode != "" && a.Mode != AuthBasic {
			return nil, fmt.Errorf("http auth mode %q not supported by the HTTP transport%w", a.Mode, errors.Hide(ErrConfig))
		}
		req.SetBasicAuth(a.User, a.Pass)
	}
	// ProxyConnectHeader only covers CONNECT tunnels; plain http requests
	// through a proxy carry the credentials on the request itself.
	if p := ep.Proxy; p != nil && p.User != "" && strings.HasPrefix(ep.URL, "http://") {
		req.Header.Set("Proxy-Authorization", basicCredentials(p.User, p.Pass))
	}

	if t.Logger != nil {
		t.Logger.Debug("posting request",
			zap.String("url", ep.URL),
			zap.Int("size", len(payload)),
			zap.Bool("proxied", ep.Proxy != nil),
		)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network: %v%w", err, errors.Hide(ErrTransport))
	}
	defer cleanlyCloseBody(resp.Body)

	// 3xx responses already followed by the client are not seen here; an
	// unresolved redirect or any error class fails the call.
	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return nil, fmt.Errorf("http: %s (%d)%w", http.StatusText(resp.StatusCode), resp.StatusCode, errors.Hide(ErrTransport))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io: %v%w", err, errors.Hide(ErrTransport))
	}
	return body, nil
}
