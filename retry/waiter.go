// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"
)

// A Waiter specifies how long to wait before retrying a failed
// attempt.
//
// Implementations of Waiter must be safe for concurrent use by
// multiple goroutines.
//
// The retry policy does not consult the Waiter if the Decider returned
// false.
type Waiter interface {
	Wait(a Attempt) time.Duration
}

// DefaultWaiter is the default retry wait policy. It uses a jittered
// exponential backoff formula with a base wait of 50 milliseconds and
// a maximum wait of 1 second.
var DefaultWaiter = NewExpWaiter(50*time.Millisecond, 1*time.Second, time.Now())

// NewFixedWaiter constructs a Waiter that always returns the given
// duration.
//
// Use NewFixedWaiter to obtain a constant retry backoff.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ Attempt) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter implementing an exponential backoff
// formula with optional jitter.
//
// The formula implemented is the "Full Jitter" approach described in:
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// Parameters base and max control the exponential calculation of the
// ceiling:
//
//	ceil := min(base * 2**attempt, max)
//
// Base and max must be positive values, and max must be at least equal
// to base.
//
// Parameter jitter is used to generate a random wait between 0 and
// ceil. To make a waiter that does not jitter and simply waits ceil on
// each attempt, pass nil for jitter. Otherwise specify either a random
// number generator seed value (as a time.Time, int, or int64) or a
// random number generator (as a rand.Source).
func NewExpWaiter(base, max time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("conduit/retry: base must be positive")
	}
	if max < base {
		panic("conduit/retry: max must be at least base")
	}
	return &expWaiter{
		base: base,
		max:  max,
		rnd:  jitterToRand(jitter),
	}
}

type expWaiter struct {
	base time.Duration
	max  time.Duration
	mu   sync.Mutex
	rnd  *rand.Rand
}

func (w *expWaiter) Wait(a Attempt) time.Duration {
	ceil := w.ceil(a.N)
	if w.rnd == nil {
		return ceil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Duration(w.rnd.Int63n(int64(ceil) + 1))
}

func (w *expWaiter) ceil(attempt int) time.Duration {
	// Guard the shift against overflow for large attempt numbers.
	if attempt > 62 {
		return w.max
	}
	ceil := w.base << uint(attempt)
	if ceil < w.base || ceil > w.max {
		return w.max
	}
	return ceil
}

func jitterToRand(jitter interface{}) *rand.Rand {
	switch x := jitter.(type) {
	case nil:
		return nil
	case rand.Source:
		return rand.New(x)
	case time.Time:
		return rand.New(rand.NewSource(x.UnixNano()))
	case int:
		return rand.New(rand.NewSource(int64(x)))
	case int64:
		return rand.New(rand.NewSource(x))
	default:
		panic("conduit/retry: invalid type (for jitter use nil, " +
			"rand.Source, time.Time, int or int64)")
	}
}
