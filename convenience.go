// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package conduit

import (
	"net/url"

	"github.com/gogama/conduit/request"
)

// Runner is the interface that wraps the basic Run method. Pipeline
// implements Runner, and any other Runner implementation must behave
// substantially the same as Pipeline.Run.
//
// The convenience functions Get, Head, Post, and PostForm work with
// any Runner.
type Runner interface {
	Run(req *request.Request) (*request.Response, error)
}

// Get uses the specified Runner to issue a GET to the specified URL.
//
// To make a request with custom headers, use request.New and r.Run.
func Get(r Runner, url string) (*request.Response, error) {
	req, err := request.New("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return r.Run(req)
}

// Head uses the specified Runner to issue a HEAD to the specified URL.
//
// To make a request with custom headers, use request.New and r.Run.
func Head(r Runner, url string) (*request.Response, error) {
	req, err := request.New("HEAD", url, nil)
	if err != nil {
		return nil, err
	}
	return r.Run(req)
}

// Post uses the specified Runner to issue a POST to the specified URL.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by request.New and request.BodyBytes, namely:
// string; []byte; io.Reader; and io.ReadCloser.
//
// To make a request with custom headers, use request.New and r.Run.
func Post(r Runner, url, contentType string, body interface{}) (*request.Response, error) {
	req, err := request.New("POST", url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return r.Run(req)
}

// PostForm uses the specified Runner to issue a POST to the specified
// URL, with data's keys and values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.New and r.Run.
func PostForm(r Runner, url string, data url.Values) (*request.Response, error) {
	return Post(r, url, "application/x-www-form-urlencoded", data.Encode())
}
