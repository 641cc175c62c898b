// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackedBody reports whether its underlying reader was closed.
type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

func TestStream(t *testing.T) {
	t.Run("Chunks", func(t *testing.T) {
		body := &trackedBody{Reader: strings.NewReader("abcdefgh")}
		resp := &Response{StatusCode: 200, Body: body}
		var chunks []string
		err := resp.Stream(3, func(chunk []byte) error {
			chunks = append(chunks, string(chunk))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"abc", "def", "gh"}, chunks)
		assert.True(t, body.closed)
	})
	t.Run("CallbackError", func(t *testing.T) {
		body := &trackedBody{Reader: strings.NewReader("abcdefgh")}
		resp := &Response{StatusCode: 200, Body: body}
		boom := errors.New("enough")
		n := 0
		err := resp.Stream(4, func(_ []byte) error {
			n++
			return boom
		})
		assert.Same(t, boom, err)
		assert.Equal(t, 1, n)
		assert.True(t, body.closed)
	})
	t.Run("NilBody", func(t *testing.T) {
		resp := &Response{StatusCode: 204}
		assert.NoError(t, resp.Stream(8, func(_ []byte) error {
			t.Fatal("chunk func called for nil body")
			return nil
		}))
	})
	t.Run("BadArgs", func(t *testing.T) {
		resp := &Response{}
		assert.Panics(t, func() { _ = resp.Stream(0, func(_ []byte) error { return nil }) })
		assert.Panics(t, func() { _ = resp.Stream(8, nil) })
	})
}

func TestConsume(t *testing.T) {
	body := &trackedBody{Reader: strings.NewReader("payload")}
	resp := &Response{StatusCode: 200, Body: body}
	b, err := resp.Consume()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(b))
	assert.True(t, body.closed)

	b, err = (&Response{}).Consume()
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestDiscard(t *testing.T) {
	body := &trackedBody{Reader: strings.NewReader("unwanted")}
	resp := &Response{StatusCode: 500, Body: body}
	require.NoError(t, resp.Discard())
	assert.True(t, body.closed)

	assert.NoError(t, (&Response{}).Discard())
}
