// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package requestid provides a simplified conduit policy which stamps
// every outgoing request with a unique X-Request-Id header.
package requestid

import (
	"github.com/google/uuid"

	"github.com/gogama/conduit/request"
)

// Header is the header the policy sets on outgoing requests.
const Header = "X-Request-Id"

// A Policy injects a unique request ID header into each request that
// does not already carry one. Because an existing header is preserved,
// the policy is idempotent under retried sends: every attempt of one
// run shares the same ID. It implements conduit.QuickPolicy.
type Policy struct {
	// Generator produces new request IDs. If nil, a random UUID is
	// used.
	Generator func() string
}

// New returns a request ID policy using random UUIDs.
func New() *Policy {
	return &Policy{}
}

// OnRequest sets the request ID header if it is absent. It never
// fails.
func (p *Policy) OnRequest(req *request.Request) error {
	if req.Header.Get(Header) == "" {
		req.Header.Set(Header, p.generate())
	}
	return nil
}

// OnResponse does nothing.
func (p *Policy) OnResponse(_ *request.Request, _ *request.Response) error {
	return nil
}

// FromRequest returns the request ID stamped on req, or the empty
// string if there is none.
func FromRequest(req *request.Request) string {
	return req.Header.Get(Header)
}

func (p *Policy) generate() string {
	if p.Generator != nil {
		return p.Generator()
	}
	return uuid.NewString()
}
