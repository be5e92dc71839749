// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

import (
	"fmt"

	"github.com/juju/errors"
)

// Error kinds. Every failure returned by Client.Call matches exactly one of
// ErrConfig, ErrTransport, or *Fault. Decode failures match ErrDecode in
// addition to ErrTransport.
const (
	// ErrConfig reports a usage error: missing endpoint, malformed
	// proxy/auth configuration, or an auth mode the selected transport
	// cannot express. Raised before any network I/O.
	ErrConfig = errors.ConstError("invalid configuration")

	// ErrTransport reports a failed round trip: connection errors,
	// non-success HTTP statuses, and local I/O failures.
	ErrTransport = errors.ConstError("transport failure")

	// ErrDecode reports a response that could not be decoded even after
	// the control-byte-stripping retry.
	ErrDecode = errors.ConstError("malformed response")
)

// Fault is a protocol-level error returned by the remote endpoint in place
// of a result value.
type Fault struct {
	Code    int
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("xmlrpc: %s (%d)", f.Message, f.Code)
}

// IsFault reports whether err is a protocol-level fault.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}
