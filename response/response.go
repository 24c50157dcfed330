// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"bytes"
)

// Headers contains HTTP response header fields keyed by the literal
// field name received from the transport. No case normalization is
// performed, so "Content-Type" and "content-type" are distinct keys.
// If the same field name is received twice, the later value replaces
// the earlier one.
type Headers map[string]string

// Get returns the value stored for the literal key, or the empty
// string if the key is absent. Values retain everything after the
// colon of the original header line, including any leading spaces.
func (h Headers) Get(key string) string {
	return h[key]
}

// A Response accumulates the result of a single HTTP request attempt.
//
// A fresh Response is created for every attempt; a Response from an
// earlier attempt is discarded when a retry starts, never merged into
// the new one. The transport writes the response body into the
// Response via its io.Writer implementation and delivers header lines
// through ParseHeaderLine.
type Response struct {
	// StatusCode is the HTTP status code of the attempt. It is zero
	// until the attempt completes without a transport error.
	StatusCode int

	// Headers contains the response header fields received so far.
	// It is never nil.
	Headers Headers

	body bytes.Buffer
}

// New creates an empty Response ready to be bound to a transport as
// the body sink and header target of one request attempt.
func New() *Response {
	return &Response{
		Headers: make(Headers),
	}
}

// Write appends body bytes received from the transport. It implements
// io.Writer and never returns an error.
func (r *Response) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

// Body returns the response body accumulated so far. The returned
// slice is owned by the Response and must not be modified.
func (r *Response) Body() []byte {
	return r.body.Bytes()
}

// IsOK reports whether the response carries a non-error HTTP status,
// that is a status code below 400.
func (r *Response) IsOK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

// ParseHeaderLine parses one raw header line received from the
// transport and inserts the resulting field into Headers.
//
// The line may carry a trailing CR, LF, and spaces, which are trimmed
// from the end only. A line without a colon (status lines, blank
// lines, stray continuations) is discarded silently. Otherwise the
// text before the first colon becomes the key and everything after it
// becomes the value, untrimmed, so a conventional "Key: value" line
// yields the value " value".
//
// This runs synchronously on the transport's I/O goroutine, so beyond
// the two strings stored in the map it must not allocate.
func (r *Response) ParseHeaderLine(line []byte) {
	end := len(line)
	for end > 0 {
		c := line[end-1]
		if c != '\r' && c != '\n' && c != ' ' {
			break
		}
		end--
	}
	if end == 0 {
		return
	}
	line = line[:end]

	i := bytes.IndexByte(line, ':')
	if i < 0 {
		return
	}
	r.Headers[string(line[:i])] = string(line[i+1:])
}
