// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gogama/conduit/request"
)

func response(status int) *request.Response {
	return &request.Response{StatusCode: status, Header: make(http.Header)}
}

func TestDefaultDecider(t *testing.T) {
	s := []int{429, 502, 503, 504}
	for i := 0; i < DefaultTimes; i++ {
		assert.True(t, DefaultDecider.Decide(Attempt{
			N:        i,
			Response: response(s[i%len(s)]),
		}))
		assert.True(t, DefaultDecider.Decide(Attempt{
			N:   i,
			Err: syscall.ECONNRESET,
		}))
	}
	assert.False(t, DefaultDecider.Decide(Attempt{
		N:   DefaultTimes,
		Err: syscall.ETIMEDOUT,
	}))
	assert.False(t, DefaultDecider.Decide(Attempt{
		N:        0,
		Response: response(200),
	}))
	assert.False(t, DefaultDecider.Decide(Attempt{
		N:        0,
		Response: response(500),
	}))
}

func TestTimes(t *testing.T) {
	d := Times(2)
	assert.True(t, d.Decide(Attempt{N: 0}))
	assert.True(t, d.Decide(Attempt{N: 1}))
	assert.False(t, d.Decide(Attempt{N: 2}))
}

func TestBefore(t *testing.T) {
	d := Before(time.Hour)
	assert.True(t, d.Decide(Attempt{Start: time.Now()}))
	assert.False(t, d.Decide(Attempt{Start: time.Now().Add(-2 * time.Hour)}))
}

func TestStatusCode(t *testing.T) {
	d := StatusCode(503, 429)
	assert.True(t, d.Decide(Attempt{Response: response(503)}))
	assert.True(t, d.Decide(Attempt{Response: response(429)}))
	assert.False(t, d.Decide(Attempt{Response: response(200)}))
	assert.False(t, d.Decide(Attempt{Err: syscall.ECONNRESET}))
	assert.False(t, StatusCode().Decide(Attempt{Response: response(503)}))
}

func TestTransientErr(t *testing.T) {
	assert.True(t, TransientErr.Decide(Attempt{Err: syscall.ECONNREFUSED}))
	assert.True(t, TransientErr.Decide(Attempt{Err: syscall.ECONNRESET}))
	assert.False(t, TransientErr.Decide(Attempt{Response: response(503)}))
	assert.False(t, TransientErr.Decide(Attempt{}))
}

func TestAndOr(t *testing.T) {
	yes := DeciderFunc(func(Attempt) bool { return true })
	var calls int
	counting := DeciderFunc(func(Attempt) bool { calls++; return false })

	assert.False(t, yes.And(counting).Decide(Attempt{}))
	assert.Equal(t, 1, calls)
	assert.True(t, yes.Or(counting).Decide(Attempt{}))
	// Or short-circuits, so the second decider is not evaluated.
	assert.Equal(t, 1, calls)
	assert.False(t, counting.And(yes).Decide(Attempt{}))
	assert.Equal(t, 2, calls)
}
