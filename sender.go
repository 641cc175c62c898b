// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package conduit

import (
	"github.com/gogama/conduit/request"
)

// A Sender sends an HTTP request and returns the response. It is the
// capability a policy forwards to: the next node in the pipeline chain,
// or the terminal transport if the policy is last.
//
// Send returns an error only on failure to obtain a response. A non-2XX
// status code is a valid response, not an error.
type Sender interface {
	Send(req *request.Request) (*request.Response, error)
}

// The SenderFunc type is an adapter to allow the use of ordinary
// functions as senders. If f is a function with the appropriate
// signature, SenderFunc(f) is a Sender that calls f.
type SenderFunc func(req *request.Request) (*request.Response, error)

// Send calls f(req).
func (f SenderFunc) Send(req *request.Request) (*request.Response, error) {
	return f(req)
}

// A Transport is the terminal stage of a pipeline. It performs the
// actual network exchange for a request and manages the scoped
// resources (connection pools, sessions) the exchange depends on.
//
// Send must propagate transport errors (connection refused, timeout,
// protocol violation) unmodified; the transport never swallows errors.
//
// Open prepares the transport's underlying resources and Close releases
// them. Both must be idempotent and are called as a pair by the
// pipeline that owns the transport. Open and Close are not required to
// be safe for concurrent use with each other, but Send may be called
// concurrently from multiple goroutines while the transport is open.
//
// Implementations of Transport must be safe for concurrent use by
// multiple goroutines. Package transport provides a net/http-backed
// implementation.
type Transport interface {
	Sender

	// BuildContext returns opaque transport-specific state to attach
	// to a request before any policy runs. Implementations with no
	// such state return nil.
	BuildContext() interface{}

	// Open prepares the transport's underlying resources.
	Open() error

	// Close releases the resources acquired by Open.
	Close() error
}
