// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/juju/errors"
	"go.uber.org/zap"
)

// DefaultUserAgent identifies the client on the wire unless overridden.
const DefaultUserAgent = "lux-xmlrpc/1.0"

// managedHostSuffix identifies managed hosting, which serves the API over
// TLS only.
const managedHostSuffix = "wordpress.com"

// Client dispatches method calls against a single remote endpoint. It owns
// the connection configuration and runs the encode, transport, decode and
// fault-check pipeline for every call.
//
// A Client is not safe for concurrent use: the configuration and last-error
// fields are plain fields with no locking. Use one Client per goroutine or
// serialize access externally.
type Client struct {
	endpoint  string
	username  string
	password  string
	userAgent string
	timeout   time.Duration
	proxy     *Proxy
	auth      *Auth
	blogID    int

	codec     Codec
	transport Transport
	logger    *zap.Logger

	sending []Observer
	failure []Observer

	lastErr     string
	coerceDates bool
}

// Option configures a Client.
type Option func(*Client)

// WithCodec sets a custom codec.
func WithCodec(c Codec) Option {
	return func(o *Client) { o.codec = c }
}

// WithTransport explicitly sets the transport backend.
func WithTransport(t Transport) Option {
	return func(o *Client) { o.transport = t }
}

// WithLogger sets a structured logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Client) { o.logger = l }
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *Client) { o.userAgent = ua }
}

// WithTimeout bounds each round trip at the transport level. There is no
// timeout on the pipeline itself.
func WithTimeout(d time.Duration) Option {
	return func(o *Client) { o.timeout = d }
}

// WithBlogID sets the blog id the typed wrappers inject as their first
// parameter. Single-site endpoints ignore it; the default is 1.
func WithBlogID(id int) Option {
	return func(o *Client) { o.blogID = id }
}

// WithDateTimeCoercion enables a legacy pre-encode pass that converts
// date-shaped strings and time.Time values anywhere in the parameter tree
// into the protocol's native date type. New callers should tag values with
// DateTime instead; the pass exists for compatibility with callers that
// never tagged theirs.
func WithDateTimeCoercion() Option {
	return func(o *Client) { o.coerceDates = true }
}

// New creates an unconfigured Client using the HTTP transport and the
// standard envelope codec. Call Configure before dispatching.
func New(opts ...Option) *Client {
	c := &Client{
		userAgent: DefaultUserAgent,
		blogID:    1,
		codec:     defaultCodec,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = &HTTPTransport{Logger: c.logger}
	}
	return c
}

// Configure sets the endpoint and the credentials sent as call parameters.
// A bare host is given an http:// scheme; managed-hosting endpoints are
// forced to https.
func (c *Client) Configure(endpoint, username, password string) error {
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q%w", endpoint, errors.Hide(ErrConfig))
	}
	host := u.Hostname()
	if host == managedHostSuffix || strings.HasSuffix(host, "."+managedHostSuffix) {
		u.Scheme = "https"
	}
	c.endpoint = u.String()
	c.username = username
	c.password = password
	return nil
}

// SetProxy configures an HTTP proxy for subsequent calls; nil disables
// proxying. An invalid record fails with ErrConfig and leaves the previous
// setting in place.
func (c *Client) SetProxy(p *Proxy) error {
	if err := p.validate(); err != nil {
		return errors.Trace(err)
	}
	if p == nil {
		c.proxy = nil
		return nil
	}
	cp := *p
	if cp.Mode == "" && cp.User != "" {
		cp.Mode = AuthBasic
	}
	c.proxy = &cp
	return nil
}

// SetAuth configures HTTP-level authentication for subsequent calls; nil
// disables it. An invalid record fails with ErrConfig and leaves the
// previous setting in place.
func (c *Client) SetAuth(a *Auth) error {
	if err := a.validate(); err != nil {
		return errors.Trace(err)
	}
	if a == nil {
		c.auth = nil
		return nil
	}
	ca := *a
	if ca.Mode == "" {
		ca.Mode = AuthBasic
	}
	c.auth = &ca
	return nil
}

// OnSending registers an observer fired once per call, after encoding and
// before the transport round trip. Observers fire in registration order.
func (c *Client) OnSending(o Observer) {
	c.sending = append(c.sending, o)
}

// OnError registers an observer fired once per failing call, after the
// last-error field is updated and before the failure returns to the caller.
func (c *Client) OnError(o Observer) {
	c.failure = append(c.failure, o)
}

// LastError returns a human-readable description of the most recent
// failure. It is overwritten on every failing call.
func (c *Client) LastError() string {
	return c.lastErr
}

// Call invokes a remote method with the given ordered parameters and
// returns the decoded result. A call either returns a decoded non-fault
// value or fails with ErrConfig, ErrTransport or a *Fault; a fault is never
// returned as a success value.
func (c *Client) Call(ctx context.Context, method string, params ...any) (any, error) {
	if c.endpoint == "" {
		// No last-error update and no observers: the call never started.
		return nil, fmt.Errorf("invalid endpoint%w", errors.Hide(ErrConfig))
	}

	if c.coerceDates {
		params = coerceDateTimes(params).([]any)
	}

	payload, err := c.codec.Encode(method, params)
	if err != nil {
		return nil, errors.Annotatef(err, "encoding %s", method)
	}

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("endpoint", c.endpoint),
		zap.Int("size", len(payload)),
	)

	ev := c.snapshot(method, params, payload)
	for _, o := range c.sending {
		o.Notify(ev)
	}

	raw, err := c.transport.Send(ctx, c.endpointConfig(), payload)
	if err != nil {
		return nil, c.fail(ev, err)
	}

	v, fault, derr := c.codec.Decode(raw, "")
	if derr != nil || (v == nil && fault == nil) {
		// Some endpoints emit control bytes the parser rejects; form
		// feeds in post bodies are the classic case. Strip them and
		// retry the decode exactly once.
		v, fault, derr = c.codec.Decode(stripControlBytes(raw), "")
		if derr != nil {
			return nil, c.fail(ev, fmt.Errorf("xmlrpc: malformed response: %v%w%w", derr, errors.Hide(ErrDecode), errors.Hide(ErrTransport)))
		}
		if v == nil && fault == nil {
			return nil, c.fail(ev, fmt.Errorf("xmlrpc: empty response%w%w", errors.Hide(ErrDecode), errors.Hide(ErrTransport)))
		}
	}
	if fault != nil {
		return nil, c.fail(ev, fault)
	}
	return v, nil
}

// fail records err as the last error, fires the error observers, and
// returns err unchanged.
func (c *Client) fail(ev Event, err error) error {
	c.lastErr = err.Error()
	c.logger.Debug("call failed",
		zap.String("method", ev.Method),
		zap.String("error", c.lastErr),
	)
	ev.Err = c.lastErr
	ev.Username = ""
	ev.Password = ""
	ev.Params = nil
	for _, o := range c.failure {
		o.Notify(ev)
	}
	return err
}

// snapshot builds the event handed to observers. Params and payload are
// copied so observers cannot mutate in-flight request state.
func (c *Client) snapshot(method string, params []any, payload []byte) Event {
	ev := Event{
		Endpoint: c.endpoint,
		Username: c.username,
		Password: c.password,
		Method:   method,
		Params:   append([]any(nil), params...),
		Payload:  append([]byte(nil), payload...),
	}
	if c.proxy != nil {
		p := *c.proxy
		ev.Proxy = &p
	}
	if c.auth != nil {
		a := *c.auth
		ev.Auth = &a
	}
	return ev
}

func (c *Client) endpointConfig() *Endpoint {
	return &Endpoint{
		URL:       c.endpoint,
		UserAgent: c.userAgent,
		Timeout:   c.timeout,
		Proxy:     c.proxy,
		Auth:      c.auth,
	}
}

// stripControlBytes removes control characters that are illegal in XML 1.0.
func stripControlBytes(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			continue
		}
		out = append(out, b)
	}
	return out
}
