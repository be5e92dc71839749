// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package xmlrpc is a client for XML-RPC content management endpoints,
// WordPress in particular.
//
// # Usage
//
//	client := xmlrpc.New()
//	if err := client.Configure("myblog.example.com/xmlrpc.php", "bob", "secret"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Typed wrapper
//	post, err := client.GetPost(ctx, 229)
//
//	// Raw call
//	result, err := client.Call(ctx, "wp.getPost", 1, "bob", "secret", 229)
//
// Every call runs the same pipeline: encode the parameter list into a
// <methodCall> envelope, fire the "sending" observers, POST the payload,
// decode the <methodResponse>, and normalize a <fault> into a *Fault error.
// Failures are classified as ErrConfig, ErrTransport or *Fault and recorded
// on the client's last-error field before the "error" observers fire.
//
// # Transport Selection
//
// HTTPTransport is the default, built on net/http with proxy and basic
// auth support. StreamTransport is a minimal fallback that writes HTTP/1.0
// over a raw connection; it rejects proxy/auth modes it cannot express
// instead of dropping them. Select one at construction time:
//
//	client := xmlrpc.New(xmlrpc.WithTransport(xmlrpc.StreamTransport{}))
//
// # Architecture
//
// The package separates concerns:
//
//   - client.go: the Client dispatch pipeline and connection configuration
//   - codec.go: Codec interface and the envelope codec
//   - transport.go: Transport interface and proxy/auth configuration
//   - http.go: net/http transport (default)
//   - stream.go: raw-connection fallback transport
//   - hooks.go: Observer interface and dispatch events
//   - errors.go: the error taxonomy
//   - wordpress.go: typed wrappers for the wp.* procedures
//
// A Client is single-threaded by design: calls block for the full round
// trip and configuration is mutable without locking.
package xmlrpc
