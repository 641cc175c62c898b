// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		req, err := New("", "http://example.com:80/x", nil)
		require.NoError(t, err)
		assert.Equal(t, "GET", req.Method)
		assert.Equal(t, "/x", req.URL.Path)
		assert.NotNil(t, req.Header)
		assert.Nil(t, req.Body)
		assert.Equal(t, context.Background(), req.Context())
	})
	t.Run("EmptyPortRemoved", func(t *testing.T) {
		req, err := New("GET", "http://example.com:/x", nil)
		require.NoError(t, err)
		assert.Equal(t, "example.com", req.URL.Host)
		assert.Equal(t, "example.com", req.Host)
	})
	t.Run("InvalidMethod", func(t *testing.T) {
		req, err := New("GET IT", "http://example.com", nil)
		assert.Nil(t, req)
		assert.EqualError(t, err, `conduit/request: invalid method "GET IT"`)
	})
	t.Run("InvalidURL", func(t *testing.T) {
		_, err := New("GET", "http://bad url", nil)
		assert.Error(t, err)
	})
	t.Run("NilContext", func(t *testing.T) {
		req, err := NewWithContext(nil, "GET", "http://example.com", nil)
		assert.Nil(t, req)
		assert.EqualError(t, err, "conduit/request: nil context")
	})
	t.Run("StringBody", func(t *testing.T) {
		req, err := New("POST", "http://example.com", "hello")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), req.Body)
	})
	t.Run("ReaderBody", func(t *testing.T) {
		req, err := New("POST", "http://example.com", strings.NewReader("hello"))
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), req.Body)
	})
	t.Run("BadBodyType", func(t *testing.T) {
		_, err := New("POST", "http://example.com", 42)
		assert.Error(t, err)
	})
}

func TestWithContext(t *testing.T) {
	req, err := New("GET", "http://example.com", nil)
	require.NoError(t, err)
	req.SetPipelineContext("state")
	req.SetValue(testKey{}, "v")

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, 1)
	req2 := req.WithContext(ctx)
	assert.NotSame(t, req, req2)
	assert.Equal(t, ctx, req2.Context())
	assert.Equal(t, context.Background(), req.Context())
	// The copy shares the pipeline context and value bag.
	assert.Equal(t, "state", req2.PipelineContext())
	assert.Equal(t, "v", req2.Value(testKey{}))

	assert.PanicsWithValue(t, "conduit/request: nil context", func() {
		req.WithContext(nil)
	})
}

type testKey struct{}

func TestValues(t *testing.T) {
	req, err := New("GET", "http://example.com", nil)
	require.NoError(t, err)
	assert.Nil(t, req.Value(testKey{}))
	req.SetValue(testKey{}, 1)
	assert.Equal(t, 1, req.Value(testKey{}))
	req.SetValue(testKey{}, 2)
	assert.Equal(t, 2, req.Value(testKey{}))
}

func TestPipelineContext(t *testing.T) {
	req, err := New("GET", "http://example.com", nil)
	require.NoError(t, err)
	assert.Nil(t, req.PipelineContext())
	state := &struct{ n int }{n: 1}
	req.SetPipelineContext(state)
	assert.Same(t, state, req.PipelineContext())
}

func TestSetBasicAuth(t *testing.T) {
	req, err := New("GET", "http://example.com", nil)
	require.NoError(t, err)
	req.SetBasicAuth("Aladdin", "open sesame")
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", req.Header.Get("Authorization"))
}

func TestToHTTPRequest(t *testing.T) {
	req, err := New("POST", "http://example.com/up", []byte("payload"))
	require.NoError(t, err)
	req.Header.Set("X-Custom", "1")
	req.Close = true

	ctx := context.Background()
	r := req.ToHTTPRequest(ctx)
	assert.Equal(t, "POST", r.Method)
	assert.Same(t, req.URL, r.URL)
	assert.Equal(t, "1", r.Header.Get("X-Custom"))
	assert.Equal(t, int64(7), r.ContentLength)
	assert.True(t, r.Close)

	b, err := BodyBytes(r.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), b)

	// GetBody must replay the body for redirects and retries.
	rc, err := r.GetBody()
	require.NoError(t, err)
	b, err = BodyBytes(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), b)
}

func TestBodyBytes(t *testing.T) {
	b, err := BodyBytes(nil)
	require.NoError(t, err)
	assert.Nil(t, b)

	in := []byte("abc")
	b, err = BodyBytes(in)
	require.NoError(t, err)
	assert.Equal(t, in, b)

	_, err = BodyBytes(struct{}{})
	assert.EqualError(t, err, badBodyTypeMsg)
}
