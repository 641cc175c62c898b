// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides a full conduit policy which re-forwards a
// failed exchange to the next pipeline stage.
//
// A retry policy is composed of a Decider, which decides whether the
// most recent attempt should be retried, and a Waiter, which decides
// how long to sleep before retrying. Compose the built-in deciders and
// waiters, or implement the interfaces directly.
//
//	policy := retry.New(retry.DefaultDecider, retry.DefaultWaiter)
//	p, err := conduit.New(tr, policy)
//
// Because the retry policy forwards the same request several times,
// every stage installed after it must be safe under repeated sends.
package retry
