// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/juju/errors"
)

// AuthMode selects the authentication scheme for a proxy or HTTP auth
// configuration. The mode is handed through to the transport verbatim; a
// transport that cannot express a mode rejects it with ErrConfig rather
// than silently ignoring it.
type AuthMode string

const (
	AuthBasic AuthMode = "basic"
	AuthNTLM  AuthMode = "ntlm"
)

// knownAuthMode reports whether m is a mode any transport could accept.
func knownAuthMode(m AuthMode) bool {
	switch m {
	case "", AuthBasic, AuthNTLM:
		return true
	}
	return false
}

// Proxy configures an HTTP proxy applied to every call.
type Proxy struct {
	Host string
	Port int // defaults to 8080
	User string
	Pass string
	Mode AuthMode // defaults to AuthBasic when credentials are set
}

func (p *Proxy) validate() error {
	if p == nil {
		return nil
	}
	if p.Host == "" {
		return fmt.Errorf("proxy host missing%w", errors.Hide(ErrConfig))
	}
	if p.Port < 0 || p.Port > 65535 {
		return fmt.Errorf("proxy port %d out of range%w", p.Port, errors.Hide(ErrConfig))
	}
	if !knownAuthMode(p.Mode) {
		return fmt.Errorf("unknown proxy auth mode %q%w", p.Mode, errors.Hide(ErrConfig))
	}
	return nil
}

// addr returns the host:port dial address for the proxy.
func (p *Proxy) addr() string {
	port := p.Port
	if port == 0 {
		port = 8080
	}
	return net.JoinHostPort(p.Host, strconv.Itoa(port))
}

// Auth configures HTTP-level authentication applied to every call. This is
// distinct from the credentials Configure stores, which travel as call
// parameters inside the envelope.
type Auth struct {
	User string
	Pass string
	Mode AuthMode // defaults to AuthBasic
}

func (a *Auth) validate() error {
	if a == nil {
		return nil
	}
	if a.User == "" {
		return fmt.Errorf("auth user missing%w", errors.Hide(ErrConfig))
	}
	if !knownAuthMode(a.Mode) {
		return fmt.Errorf("unknown auth mode %q%w", a.Mode, errors.Hide(ErrConfig))
	}
	return nil
}

// Endpoint is the per-call connection configuration handed to a Transport.
// It carries everything a backend needs to issue one request; transports
// retain no state between calls.
type Endpoint struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
	Proxy     *Proxy
	Auth      *Auth
}

// Transport performs a single HTTP POST round trip, returning the raw
// response body. Implementations classify failures with the "network:",
// "http:" and "io:" prefixes and tag them with ErrTransport, or with
// ErrConfig for proxy/auth configuration they cannot express.
type Transport interface {
	Send(ctx context.Context, ep *Endpoint, payload []byte) ([]byte, error)
}

// defaultTimeout bounds a round trip when the caller sets none.
const defaultTimeout = 30 * time.Second
