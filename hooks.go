// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

// Event is an immutable snapshot of an in-flight call handed to observers.
// "Sending" events carry the full request, including the credentials that
// travel as call parameters. "Error" events carry the endpoint, the encoded
// request, the proxy/auth configuration and the failure message, with the
// credential fields cleared. Parameter and payload slices are copies, so an
// observer cannot alter what reaches the wire.
type Event struct {
	Endpoint string
	Username string
	Password string
	Method   string
	Params   []any
	Payload  []byte
	Proxy    *Proxy
	Auth     *Auth
	Err      string // set on error events only
}

// Observer receives dispatch events. Observers run synchronously, in
// registration order, on the calling goroutine; a panicking observer aborts
// the rest of the pipeline.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }
