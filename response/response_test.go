// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New()
	require.NotNil(t, r)
	assert.NotNil(t, r.Headers)
	assert.Zero(t, r.StatusCode)
	assert.Empty(t, r.Body())
	assert.False(t, r.IsOK())
}

func TestResponse_Write(t *testing.T) {
	r := New()
	n, err := r.Write([]byte("hello, "))
	assert.Equal(t, 7, n)
	assert.NoError(t, err)
	n, err = r.Write([]byte("world"))
	assert.Equal(t, 5, n)
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello, world"), r.Body())
}

func TestResponse_IsOK(t *testing.T) {
	testCases := []struct {
		status int
		ok     bool
	}{
		{0, false},
		{100, false},
		{199, false},
		{200, true},
		{204, true},
		{302, true},
		{399, true},
		{400, false},
		{404, false},
		{500, false},
		{599, false},
	}
	for _, testCase := range testCases {
		r := New()
		r.StatusCode = testCase.status
		assert.Equal(t, testCase.ok, r.IsOK(), "status %d", testCase.status)
	}
}

func TestResponse_ParseHeaderLine(t *testing.T) {
	t.Run("field line", func(t *testing.T) {
		testCases := []struct {
			name  string
			line  string
			key   string
			value string
		}{
			{"conventional", "Content-Type: text/plain\r\n", "Content-Type", " text/plain"},
			{"no space after colon", "Content-Length:42\r\n", "Content-Length", "42"},
			{"no line ending", "Server: nginx", "Server", " nginx"},
			{"trailing spaces trimmed", "X-Token: abc  \r\n", "X-Token", " abc"},
			{"empty value", "X-Empty:\r\n", "X-Empty", ""},
			{"colon in value", "Refresh: 0;url=http://example.com\r\n", "Refresh", " 0;url=http://example.com"},
			{"leading whitespace kept in key", "  X-Odd: v\r\n", "  X-Odd", " v"},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				r := New()
				r.ParseHeaderLine([]byte(testCase.line))
				require.Len(t, r.Headers, 1)
				v, ok := r.Headers[testCase.key]
				require.True(t, ok)
				assert.Equal(t, testCase.value, v)
				assert.Equal(t, testCase.value, r.Headers.Get(testCase.key))
			})
		}
	})
	t.Run("discarded line", func(t *testing.T) {
		testCases := []struct {
			name string
			line string
		}{
			{"status line", "HTTP/1.1 200 OK\r\n"},
			{"blank", "\r\n"},
			{"empty", ""},
			{"whitespace only", "   \r\n"},
			{"no colon", "not a header line\r\n"},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				r := New()
				r.ParseHeaderLine([]byte(testCase.line))
				assert.Empty(t, r.Headers)
			})
		}
	})
	t.Run("last value wins", func(t *testing.T) {
		r := New()
		r.ParseHeaderLine([]byte("X-Dup: first\r\n"))
		r.ParseHeaderLine([]byte("X-Dup: second\r\n"))
		require.Len(t, r.Headers, 1)
		assert.Equal(t, " second", r.Headers.Get("X-Dup"))
	})
	t.Run("case preserved", func(t *testing.T) {
		r := New()
		r.ParseHeaderLine([]byte("Content-Type: a\r\n"))
		r.ParseHeaderLine([]byte("content-type: b\r\n"))
		require.Len(t, r.Headers, 2)
		assert.Equal(t, " a", r.Headers.Get("Content-Type"))
		assert.Equal(t, " b", r.Headers.Get("content-type"))
	})
}

func TestHeaders_Get(t *testing.T) {
	h := Headers{"X-Present": " yes"}
	assert.Equal(t, " yes", h.Get("X-Present"))
	assert.Equal(t, "", h.Get("X-Absent"))
	assert.Equal(t, "", h.Get("x-present"))
}
