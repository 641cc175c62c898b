// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transport provides a net/http-backed terminal transport for
// a conduit pipeline.
//
// The default transport is never installed silently: the pipeline
// constructor requires an explicit transport, and callers who want
// this one inject it themselves.
//
//	p, err := conduit.New(transport.New(), policies...)
package transport

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/net/http2"

	"github.com/gogama/conduit/request"
)

// A Doer implements a Do method in the same manner as the Go standard
// library http.Client from the net/http package.
type Doer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// Doer.
	//
	// The Do method must follow the contract documented on the Go
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// An IdleCloser is a Doer which can close its idle keep-alive
// connections. http.Client implements IdleCloser.
type IdleCloser interface {
	CloseIdleConnections()
}

// A Transport performs the actual network exchange at the end of a
// conduit pipeline. Its zero value is a valid configuration; New
// returns one ready for use.
//
// The Doer typically has internal state (cached TCP connections), so
// Transport instances should be reused rather than created per
// request. A Transport is safe for concurrent use by multiple
// goroutines once opened.
//
// Transport implements the conduit.Transport interface: Open prepares
// the underlying client, Close releases its idle connections, and
// BuildContext exposes the optional ContextBuilder hook.
type Transport struct {
	// Doer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If Doer is nil, Open builds an http.Client backed by a clone of
	// http.DefaultTransport.
	Doer Doer

	// HTTP2 requests that the client built by Open speak HTTP/2. It
	// has no effect when Doer is non-nil, since configuration of a
	// caller-supplied Doer belongs to the caller.
	HTTP2 bool

	// ContextBuilder, if non-nil, supplies the opaque state the
	// pipeline attaches to each request before any policy runs. If
	// nil, BuildContext returns nil.
	ContextBuilder func() interface{}

	mu    sync.Mutex
	built *http.Client
	open  bool
}

// New returns a new Transport using the default net/http client
// mechanics. Configure the exported fields before calling Open.
func New() *Transport {
	return &Transport{}
}

// Open prepares the transport's underlying resources. If no Doer was
// supplied, it builds an http.Client around a clone of the default
// net/http transport, optionally configured for HTTP/2.
//
// Open is idempotent: opening an open transport is a no-op. Reopening
// after Close is permitted and reuses the previously built client.
func (t *Transport) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		return nil
	}
	if t.Doer == nil && t.built == nil {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		if t.HTTP2 {
			if err := http2.ConfigureTransport(tr); err != nil {
				return err
			}
		}
		t.built = &http.Client{Transport: tr}
	}
	t.open = true
	return nil
}

// Close releases the transport's pooled resources by closing idle
// connections on the underlying Doer, if it supports that. In-flight
// exchanges are not interrupted.
//
// Close is idempotent: closing a transport that is not open is a
// no-op.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return nil
	}
	t.open = false
	var d Doer = t.Doer
	if d == nil && t.built != nil {
		d = t.built
	}
	if ic, ok := d.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
	return nil
}

// BuildContext returns the result of the ContextBuilder hook, or nil
// if no hook is configured.
func (t *Transport) BuildContext() interface{} {
	if t.ContextBuilder != nil {
		return t.ContextBuilder()
	}
	return nil
}

// Send performs the network exchange for req and returns a response
// bound to the live body stream; the body is not buffered, and its
// lifetime may track the open connection until the consumer closes it.
//
// Any error from the underlying Doer is returned as a *url.Error with
// the original error as its cause; errors are never swallowed or
// converted beyond that wrapping.
func (t *Transport) Send(req *request.Request) (*request.Response, error) {
	r := req.ToHTTPRequest(req.Context())
	resp, err := t.doer().Do(r)
	if err != nil {
		return nil, urlErrorWrap(req, err)
	}
	return &request.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
		Raw:        resp,
		Request:    req,
	}, nil
}

func (t *Transport) doer() Doer {
	if t.Doer != nil {
		return t.Doer
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.built == nil {
		// Send before Open. Fall back to the shared default client so
		// the error surface stays a transport error, not a crash.
		return http.DefaultClient
	}
	return t.built
}

func urlErrorWrap(req *request.Request, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}
	return &url.Error{
		Op:  urlErrorOp(req.Method),
		URL: req.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
