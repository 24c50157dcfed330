// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package upload

import (
	"io"
)

// A Stream is a cursor over an owned byte buffer from which the
// transport pulls request body data on demand, typically for a PUT
// upload.
//
// The cursor binds lazily to the start of the buffer on the first
// pull. After initialization cursor+rest always equals the buffer
// length. The buffer outlives every pull: it is owned by the request
// configuration and must remain valid for the entire attempt
// sequence, including retries, because the body is resent identically
// on each attempt.
//
// A Stream is not safe for concurrent use. The engine guarantees
// pulls and rewinds never overlap because at most one attempt is in
// flight per request.
type Stream struct {
	buf    []byte
	cursor int
	rest   int
	bound  bool
}

// NewStream creates a Stream over buf. The Stream takes ownership of
// buf; the caller must not modify it afterward.
func NewStream(buf []byte) *Stream {
	return &Stream{buf: buf}
}

// Size returns the total length of the underlying buffer.
func (s *Stream) Size() int64 {
	return int64(len(s.buf))
}

// Pull copies up to len(dst) of the remaining body bytes into dst and
// returns the count copied. Once the buffer is exhausted every further
// call returns 0, signaling end of stream without error.
func (s *Stream) Pull(dst []byte) int {
	if !s.bound {
		s.cursor = 0
		s.rest = len(s.buf)
		s.bound = true
	}

	n := s.rest
	if len(dst) < n {
		n = len(dst)
	}
	copy(dst, s.buf[s.cursor:s.cursor+n])
	s.cursor += n
	s.rest -= n
	return n
}

// Rewind resets the cursor to the start of the buffer so the full body
// is resent. The engine rewinds before every retry attempt.
func (s *Stream) Rewind() {
	s.cursor = 0
	s.rest = len(s.buf)
	s.bound = true
}

// Read implements io.Reader on top of Pull, returning io.EOF once the
// buffer is exhausted.
func (s *Stream) Read(p []byte) (int, error) {
	n := s.Pull(p)
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}
