// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"io"
	"net/http"
)

// A Response is the incoming half of one pipeline exchange. It is
// produced by the transport and passed back up through the policy
// chain in reverse order; any policy may inspect or decorate it before
// returning it to its caller.
//
// The body is a lazy stream whose lifetime may track an open network
// connection, so a consumer must arrange for it to be closed: read it
// incrementally with Stream, buffer it with Consume, or throw it away
// with Discard.
type Response struct {
	// StatusCode is the HTTP status code of the response, for example
	// 200.
	StatusCode int

	// Header contains the response header fields.
	Header http.Header

	// Body is the response body stream. It may be nil for a response
	// with no body, for example one synthesized by a short-circuiting
	// policy.
	Body io.ReadCloser

	// Raw is the concrete client response the transport produced, for
	// example an *http.Response from a net/http based transport. It is
	// nil for responses not produced by a transport. Consumers needing
	// transport-specific detail may type-assert it.
	Raw interface{}

	// Request is the request this response answers.
	Request *Request
}

// Stream reads the response body as a lazy sequence of byte chunks of
// at most chunkSize bytes, invoking fn once per chunk. It stops early,
// returning fn's error, if fn returns a non-nil error. The chunk slice
// passed to fn is reused between calls and must not be retained.
//
// Stream closes the body when the stream is exhausted or fn fails. It
// returns nil if the body is nil or already exhausted.
func (resp *Response) Stream(chunkSize int, fn func(chunk []byte) error) error {
	if chunkSize < 1 {
		panic("conduit/request: chunk size must be positive")
	}
	if fn == nil {
		panic("conduit/request: nil chunk func")
	}
	if resp.Body == nil {
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	buf := make([]byte, chunkSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if err2 := fn(buf[:n]); err2 != nil {
				return err2
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Consume reads the entire response body into a byte slice and closes
// the stream. It returns a nil slice and no error if the body is nil.
func (resp *Response) Consume() ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return io.ReadAll(resp.Body)
}

// Discard drains and closes the response body without retaining it.
// Draining before closing lets a keep-alive connection be reused for a
// later exchange. Discard is a no-op on a nil body.
func (resp *Response) Discard() error {
	if resp.Body == nil {
		return nil
	}
	_, err := io.Copy(io.Discard, resp.Body)
	if err2 := resp.Body.Close(); err == nil {
		err = err2
	}
	return err
}
