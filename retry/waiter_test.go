// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewFixedWaiter(t *testing.T) {
	w := NewFixedWaiter(250 * time.Millisecond)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 250*time.Millisecond, w.Wait(Attempt{N: i}))
	}
}

func TestNewExpWaiter(t *testing.T) {
	t.Run("BadArgs", func(t *testing.T) {
		assert.PanicsWithValue(t, "conduit/retry: base must be positive", func() {
			NewExpWaiter(0, time.Second, nil)
		})
		assert.PanicsWithValue(t, "conduit/retry: max must be at least base", func() {
			NewExpWaiter(time.Second, time.Millisecond, nil)
		})
		assert.Panics(t, func() {
			NewExpWaiter(time.Millisecond, time.Second, "jitter")
		})
	})
	t.Run("NoJitter", func(t *testing.T) {
		w := NewExpWaiter(50*time.Millisecond, 400*time.Millisecond, nil)
		assert.Equal(t, 50*time.Millisecond, w.Wait(Attempt{N: 0}))
		assert.Equal(t, 100*time.Millisecond, w.Wait(Attempt{N: 1}))
		assert.Equal(t, 200*time.Millisecond, w.Wait(Attempt{N: 2}))
		assert.Equal(t, 400*time.Millisecond, w.Wait(Attempt{N: 3}))
		// Capped at max from here on, including attempt numbers large
		// enough to overflow the shift.
		assert.Equal(t, 400*time.Millisecond, w.Wait(Attempt{N: 4}))
		assert.Equal(t, 400*time.Millisecond, w.Wait(Attempt{N: 100}))
	})
	t.Run("Jitter", func(t *testing.T) {
		w := NewExpWaiter(50*time.Millisecond, time.Second, int64(1))
		m := []time.Duration{50, 100, 200, 400, 800, 1000, 1000}
		total := time.Duration(0)
		for i, max := range m {
			got := w.Wait(Attempt{N: i})
			assert.GreaterOrEqual(t, got, time.Duration(0))
			assert.LessOrEqual(t, got, max*time.Millisecond)
			total += got
		}
		assert.Greater(t, total, time.Duration(0))
	})
}

func TestDefaultWaiter(t *testing.T) {
	for i := 0; i < 8; i++ {
		w := DefaultWaiter.Wait(Attempt{N: i})
		assert.GreaterOrEqual(t, w, time.Duration(0))
		assert.LessOrEqual(t, w, time.Second)
	}
}
