// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging provides a simplified conduit policy which logs one
// line per request sent and one per response received, using zerolog.
//
// Install it after a retry policy to log every attempt, or before it
// to log once per run.
package logging

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gogama/conduit/request"
)

type startKey struct{}

// A Policy logs the exchanges flowing through its pipeline position.
// It implements conduit.QuickPolicy.
//
// Responses log at a level determined by status class: error for 5XX,
// warn for 4XX, and Level otherwise. Requests always log at Level.
type Policy struct {
	// Logger is the destination for log lines.
	Logger zerolog.Logger

	// Level is the level for request lines and non-error response
	// lines. The zero value is zerolog.DebugLevel.
	Level zerolog.Level
}

// New returns a logging policy writing to logger at debug level.
func New(logger zerolog.Logger) *Policy {
	return &Policy{Logger: logger, Level: zerolog.DebugLevel}
}

// OnRequest logs the method and URL of the outgoing request and stamps
// the request with the attempt start time. It never fails.
func (p *Policy) OnRequest(req *request.Request) error {
	req.SetValue(startKey{}, time.Now())
	p.Logger.WithLevel(p.Level).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("request sent")
	return nil
}

// OnResponse logs the status code and elapsed time of the incoming
// response. It never fails.
func (p *Policy) OnResponse(req *request.Request, resp *request.Response) error {
	evt := p.Logger.WithLevel(p.level(resp.StatusCode)).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode)
	if start, ok := req.Value(startKey{}).(time.Time); ok {
		evt = evt.Dur("duration", time.Since(start))
	}
	evt.Msg("response received")
	return nil
}

func (p *Policy) level(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return p.Level
	}
}
