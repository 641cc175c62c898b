// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
)

var template, _ = http.NewRequest("GET", "", nil)

const nilCtxMsg = "conduit/request: nil context"

// A Request is the outgoing half of one pipeline exchange. It flows
// through every policy in the chain down to the transport, and any
// stage may read or mutate it along the way.
//
// The body is pre-buffered into a byte slice so that a policy may
// forward the same request more than once (for example to retry a
// failed attempt) without re-reading a stream.
//
// Like the standard library http.Request, a Request carries a context
// which controls cancellation of the whole run; change it with
// WithContext. It additionally carries an opaque pipeline context,
// attached once per run from the transport's BuildContext hook, and a
// free-form value bag (SetValue and Value) for per-run options that
// policies and the transport pass through unchanged.
type Request struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent.
	Header http.Header

	// Body is the pre-buffered request body. A nil or empty body means
	// no request body is sent.
	Body []byte

	// Close stipulates whether to close the underlying connection
	// after this exchange, preventing keep-alive reuse.
	Close bool

	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host is sent.
	Host string

	// ctx controls cancellation of the run. It should only be changed
	// by copying the whole Request using WithContext.
	ctx context.Context

	// pipelineContext is the opaque transport state attached by the
	// pipeline at the start of a run.
	pipelineContext interface{}

	// values holds free-form per-run data set by the caller or by
	// policies.
	values context.Context
}

// New wraps NewWithContext using the background context.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser. If body is an io.Reader, it is
// read to the end and buffered into a []byte. If body is an
// io.ReadCloser, it is closed after buffering.
func New(method, url string, body interface{}) (*Request, error) {
	return NewWithContext(context.Background(), method, url, body)
}

// NewWithContext returns a new Request given a method, URL, and
// optional body.
//
// The context controls cancellation of the entire pipeline run made
// with the request, including every forward a policy makes and the
// transport's network exchange.
//
// Parameter body follows the same rules as in New.
func NewWithContext(ctx context.Context, method, url string, body interface{}) (*Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("conduit/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Request{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// Context returns the request's context. The context controls
// cancellation of the whole pipeline run. To change the context, use
// WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (req *Request) Context() context.Context {
	if req.ctx != nil {
		return req.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of req with its context changed
// to ctx, which must be non-nil. The copy shares the pipeline context
// and value bag with the original.
func (req *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	req2 := new(Request)
	*req2 = *req
	req2.ctx = ctx
	return req2
}

// SetPipelineContext attaches opaque transport state to the request.
// The pipeline calls it once at the start of each run with the result
// of the transport's BuildContext hook; policies should treat the
// pipeline context as read-only.
func (req *Request) SetPipelineContext(v interface{}) {
	req.pipelineContext = v
}

// PipelineContext returns the opaque transport state attached at the
// start of the current run, or nil if the transport attached none.
func (req *Request) PipelineContext() interface{} {
	return req.pipelineContext
}

// SetValue stores an arbitrary per-run value on the request. Values
// travel with the request through every stage of the run, unchanged by
// the pipeline itself.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type, to avoid collisions between
// different policies storing data on the same request.
func (req *Request) SetValue(key, value interface{}) {
	ctx := req.values
	if ctx == nil {
		ctx = context.Background()
	}
	req.values = context.WithValue(ctx, key, value)
}

// Value returns the per-run value associated with key, or nil if there
// is none.
func (req *Request) Value(key interface{}) interface{} {
	if req.values == nil {
		return nil
	}
	return req.values.Value(key)
}

// SetBasicAuth sets the request's Authorization header to use HTTP
// Basic Authentication with the provided username and password.
//
// With HTTP Basic Authentication the provided username and password
// are not encrypted.
func (req *Request) SetBasicAuth(username, password string) {
	req.Header.Set("Authorization", "Basic "+basicAuth(username, password))
}

// ToHTTPRequest lowers the request to a standard library http.Request
// suitable for a net/http round trip. The context of the new request
// is set to ctx, which must not be nil.
//
// The returned request shares the URL and Header with req, so a caller
// planning to mutate either on the lowered request should clone it
// first.
func (req *Request) ToHTTPRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = req.Method
	r.URL = req.URL
	r.Header = req.Header
	if len(req.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(req.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(req.Body)), nil
		}
		r.ContentLength = int64(len(req.Body))
	}
	r.Close = req.Close
	r.Host = req.Host
	return r
}

// basicAuth is lifted verbatim from net/http/client.go.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

func validMethod(method string) bool {
	// An HTTP method is a token per RFC 7230 section 3.2.6. The empty
	// string was already mapped to GET by the constructor.
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !isTokenRune(r)
}

// isTokenRune is lifted verbatim from x/net/http/httpguts/httplex.go
// (but converted to non-exported). It classifies a rune as being valid
// for a token as defined in https://tools.ietf.org/html/rfc7230#section-3.2.6
func isTokenRune(r rune) bool {
	i := int(r)
	return i < len(isTokenTable) && isTokenTable[i]
}

var isTokenTable = func() (t [127]bool) {
	for _, r := range "!#$%&'*+-.^_`|~" {
		t[r] = true
	}
	for r := '0'; r <= '9'; r++ {
		t[r] = true
	}
	for r := 'A'; r <= 'Z'; r++ {
		t[r] = true
	}
	for r := 'a'; r <= 'z'; r++ {
		t[r] = true
	}
	return
}()

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
