// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/conduit"
	"github.com/gogama/conduit/request"
)

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases. It composes DefaultDecider and DefaultWaiter.
var DefaultPolicy = New(DefaultDecider, DefaultWaiter)

// New composes a Decider and a Waiter into a full pipeline policy.
//
// The returned policy forwards the request to the next stage, then
// consults the decider after every attempt. While the decider says to
// retry, the policy discards the attempt's response (draining and
// closing its body so the connection can be reused), sleeps for the
// duration the waiter indicates, and forwards again. When the decider
// declines, the most recent response and error are returned unchanged.
//
// A retry wait ends early if the request's context is done; the
// context's error is then returned. The policy never retries once the
// context is done, so cancellation propagates as a failure rather
// than silently abandoning the run.
func New(d Decider, w Waiter) conduit.Policy {
	if d == nil {
		panic("conduit/retry: nil decider")
	}
	if w == nil {
		panic("conduit/retry: nil waiter")
	}
	return &policy{decider: d, waiter: w}
}

type policy struct {
	decider Decider
	waiter  Waiter
}

func (p *policy) Send(req *request.Request, next conduit.Sender) (*request.Response, error) {
	start := time.Now()
	for n := 0; ; n++ {
		resp, err := next.Send(req)
		a := Attempt{N: n, Start: start, Request: req, Response: resp, Err: err}
		if !p.decider.Decide(a) {
			return resp, err
		}
		if resp != nil {
			_ = resp.Discard()
		}
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		timer := time.NewTimer(p.waiter.Wait(a))
		select {
		case <-timer.C:
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		}
	}
}
