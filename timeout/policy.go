// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout provides a full conduit policy which bounds each
// forward to the next pipeline stage with a deadline.
//
// Install the timeout policy after a retry policy to obtain a
// per-attempt timeout, or before it to bound the whole run.
package timeout

import (
	"context"
	"io"
	"time"

	"github.com/gogama/conduit"
	"github.com/gogama/conduit/request"
)

// New constructs a policy which derives a context with timeout d for
// every forward to the next stage. A downstream exchange exceeding the
// deadline fails with a timeout transport error, which propagates up
// the chain unchanged.
//
// The deadline covers the network exchange and the life of the
// response body stream: the derived context is released only when the
// consumer closes the response body, since with a streaming transport
// the body may still be arriving after Send returns.
//
// New panics if d is not positive.
func New(d time.Duration) conduit.Policy {
	if d < 1 {
		panic("conduit/timeout: timeout must be positive")
	}
	return policy(d)
}

type policy time.Duration

func (p policy) Send(req *request.Request, next conduit.Sender) (*request.Response, error) {
	ctx, cancel := context.WithTimeout(req.Context(), time.Duration(p))
	resp, err := next.Send(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.Body != nil {
		resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	} else {
		cancel()
	}
	return resp, nil
}

// cancelBody releases the attempt's timeout context when the response
// body is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
