// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/juju/errors"
)

// StreamTransport is a minimal fallback built directly on a network
// connection. It writes an HTTP/1.0 request by hand and reads the response
// off the stream. It supports basic auth and basic proxy auth for plain
// http endpoints only; anything it cannot express fails with ErrConfig
// rather than being silently dropped.
type StreamTransport struct{}

// Send posts payload to the endpoint over a raw connection.
func (StreamTransport) Send(ctx context.Context, ep *Endpoint, payload []byte) ([]byte, error) {
	u, err := url.Parse(ep.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL%w", errors.Hide(ErrConfig))
	}
	if a := ep.Auth; a != nil && a.Mode != "" && a.Mode != AuthBasic {
		return nil, fmt.Errorf("http auth mode %q not supported by the stream transport%w", a.Mode, errors.Hide(ErrConfig))
	}
	if p := ep.Proxy; p != nil {
		if p.Mode != "" && p.Mode != AuthBasic {
			return nil, fmt.Errorf("proxy auth mode %q not supported by the stream transport%w", p.Mode, errors.Hide(ErrConfig))
		}
		if u.Scheme == "https" {
			return nil, fmt.Errorf("proxied https not supported by the stream transport%w", errors.Hide(ErrConfig))
		}
	}

	timeout := ep.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	dialAddr := hostPort(u)
	if ep.Proxy != nil {
		dialAddr = ep.Proxy.addr()
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", dialAddr)
	if err != nil {
		return nil, fmt.Errorf("network: %v%w", err, errors.Hide(ErrTransport))
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))

	if u.Scheme == "https" {
		tc := tls.Client(conn, &tls.Config{ServerName: u.Hostname()})
		if err := tc.HandshakeContext(ctx); err != nil {
			return nil, fmt.Errorf("network: %v%w", err, errors.Hide(ErrTransport))
		}
		conn = tc
	}

	if _, err := conn.Write(buildRequest(u, ep, payload)); err != nil {
		return nil, fmt.Errorf("io: %v%w", err, errors.Hide(ErrTransport))
	}

	resp, err := http.ReadResponse(bufio.NewReader(conn), nil)
	if err != nil {
		return nil, fmt.Errorf("io: %v%w", err, errors.Hide(ErrTransport))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return nil, fmt.Errorf("http: %s (%d)%w", http.StatusText(resp.StatusCode), resp.StatusCode, errors.Hide(ErrTransport))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io: %v%w", err, errors.Hide(ErrTransport))
	}
	return body, nil
}

// buildRequest assembles the request head and body. HTTP/1.0 with
// Connection: close keeps the read side trivial: the response ends when
// the peer closes the stream.
func buildRequest(u *url.URL, ep *Endpoint, payload []byte) []byte {
	target := u.RequestURI()
	if ep.Proxy != nil {
		// Proxied requests use the absolute form.
		target = u.String()
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "POST %s HTTP/1.0\r\n", target)
	fmt.Fprintf(&b, "Host: %s\r\n", u.Host)
	if ep.UserAgent != "" {
		fmt.Fprintf(&b, "User-Agent: %s\r\n", ep.UserAgent)
	}
	b.WriteString("Content-Type: text/xml\r\n")
	fmt.Fprintf(&b, "Content-Length: %d\r\n", len(payload))
	if a := ep.Auth; a != nil {
		fmt.Fprintf(&b, "Authorization: %s\r\n", basicCredentials(a.User, a.Pass))
	}
	if p := ep.Proxy; p != nil && p.User != "" {
		fmt.Fprintf(&b, "Proxy-Authorization: %s\r\n", basicCredentials(p.User, p.Pass))
	}
	b.WriteString("Connection: close\r\n\r\n")
	b.Write(payload)
	return b.Bytes()
}

func hostPort(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}
	if u.Scheme == "https" {
		return net.JoinHostPort(u.Hostname(), "443")
	}
	return net.JoinHostPort(u.Hostname(), "80")
}
