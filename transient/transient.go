// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors by their transience: whether a
// retried HTTP exchange has any prospect of succeeding after the
// error. It backs the retry package's TransientErr decider but may be
// used on its own.
package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// The category Not means the error is not transient: a retry after
// encountering the error is very unlikely to succeed. Every other
// category indicates a retry has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error, including a nil error.
	Not Category = iota
	// Timeout indicates a client-side timeout. The server may be going
	// through a temporary period of slowness, or the client may
	// succeed on a future attempt by waiting longer.
	//
	// Categorize returns Timeout if the error, or any error in its
	// wrap chain, has a Timeout method reporting true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (POSIX ECONNREFUSED). Refusal can be a permanent condition, but
	// it is classified as transient because it also happens while the
	// remote service is starting or restarting and not yet listening.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// TCP connection (POSIX ECONNRESET). Resets are common when a
	// remote service is redeployed, or when the remote host is a load
	// balancer, so they carry a high probability of success on retry.
	ConnReset
)

var names = []string{"Not", "Timeout", "ConnRefused", "ConnReset"}

// String returns the name of the category.
func (c Category) String() string {
	if c < Not || c > ConnReset {
		return "Invalid"
	}
	return names[c]
}

// Categorize reports the transience category of err. A nil error
// categorizes as Not.
//
// Timeout takes precedence: an error which both reports a timeout and
// wraps ECONNRESET categorizes as Timeout.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}
	if isTimeout(err) {
		return Timeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ConnRefused
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return ConnReset
	}
	return Not
}

func isTimeout(err error) bool {
	for err != nil {
		if t, ok := err.(interface{ Timeout() bool }); ok && t.Timeout() {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
