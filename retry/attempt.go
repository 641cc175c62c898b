// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/conduit/request"
)

// An Attempt is a snapshot of one finished forward of a request to the
// downstream chain. The retry policy hands it to the Decider and
// Waiter after every attempt.
type Attempt struct {
	// N is the zero-based attempt number: zero for the initial
	// attempt, one for the first retry, and so on.
	N int

	// Start is the time the retry policy made the initial attempt. It
	// is the same for every attempt of one run.
	Start time.Time

	// Request is the request being sent.
	Request *request.Request

	// Response is the response received by this attempt. It is nil if
	// the attempt ended in an error.
	Response *request.Response

	// Err is the error returned by this attempt, or nil if the attempt
	// produced a response.
	Err error
}

// StatusCode returns the status code of the attempt's response, or 0
// if the attempt ended in an error.
func (a Attempt) StatusCode() int {
	if a.Response == nil {
		return 0
	}
	return a.Response.StatusCode
}

// Duration returns the time elapsed since the initial attempt of the
// run.
func (a Attempt) Duration() time.Duration {
	return time.Since(a.Start)
}
