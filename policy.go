// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package conduit

import (
	"github.com/gogama/conduit/request"
)

// A Policy is one stage in a request pipeline. It may read or mutate
// the request, decide whether and how to forward the exchange to next,
// and may inspect or mutate the response before returning it.
//
// A Policy is free to call next.Send zero times (short-circuiting the
// chain, for example to serve from a cache or reject early), exactly
// once (the common case), or several times (for example to retry a
// failed attempt). Short-circuiting is a deliberate affordance, not an
// error path. Side effects a policy applies to the request must be
// safe to repeat, since an upstream policy may re-forward the same
// request.
//
// The next sender is fixed for a given pipeline position when the
// pipeline is constructed; it is passed on every call so that a policy
// instance holds no chain state of its own and may be installed in any
// number of pipelines.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines. A policy must not suppress an error from next
// silently; if it wraps an error it should preserve the original as a
// cause.
type Policy interface {
	Send(req *request.Request, next Sender) (*request.Response, error)
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as policies. If f is a function with the appropriate
// signature, PolicyFunc(f) is a Policy that calls f.
type PolicyFunc func(req *request.Request, next Sender) (*request.Response, error)

// Send calls f(req, next).
func (f PolicyFunc) Send(req *request.Request, next Sender) (*request.Response, error) {
	return f(req, next)
}

// A QuickPolicy is a simplified pipeline stage which only observes the
// exchange: OnRequest runs before the request is forwarded and
// OnResponse runs after the response comes back. A QuickPolicy has no
// visibility into forwarding: it cannot short-circuit the chain, and it
// does not observe failures from downstream stages (OnResponse is not
// called when a downstream stage returns an error).
//
// A non-nil error returned from either hook aborts the run and
// propagates to the caller; an error from OnRequest prevents the
// request from being forwarded at all.
//
// The pipeline wraps each QuickPolicy in an internal runner which
// implements Policy and owns the forward reference on the wrapped
// policy's behalf.
type QuickPolicy interface {
	OnRequest(req *request.Request) error
	OnResponse(req *request.Request, resp *request.Response) error
}

// quickRunner adapts a QuickPolicy into a Policy. It forwards
// unconditionally, exactly once per Send.
type quickRunner struct {
	policy QuickPolicy
}

func (r quickRunner) Send(req *request.Request, next Sender) (*request.Response, error) {
	if err := r.policy.OnRequest(req); err != nil {
		return nil, err
	}
	resp, err := next.Send(req)
	if err != nil {
		return nil, err
	}
	if err := r.policy.OnResponse(req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
