// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

// LeastBadStatus is the lowest HTTP status code treated as a server
// failure worth retrying. Responses below it finalize the execution
// immediately, including 4xx client errors, whose status is surfaced
// to the caller without an error.
const LeastBadStatus = 500

// A Policy controls if and how many times a request execution retries
// failed attempts.
//
// The zero value allows a single attempt and never retries.
type Policy struct {
	// Attempts is the maximum number of attempts, including the first
	// one. Values below 1 are normalized to 1.
	Attempts int

	// OnFails enables retrying attempts that ended in a transport
	// error (connection, DNS, TLS, I/O). Attempts that produced a
	// server-error status (>= LeastBadStatus) are retried regardless
	// of this flag.
	OnFails bool
}

// Normalized returns a copy of p with Attempts clamped to at least 1.
func (p Policy) Normalized() Policy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	return p
}

// Decide reports whether another attempt should be made after the
// attempt numbered attempt (1-based) completed with the given
// transport error and HTTP status code. status is meaningful only
// when err is nil.
//
// The execution finalizes, and Decide returns false, when the attempt
// produced a non-server-error response, when the attempt budget is
// exhausted, or when a transport error occurred and OnFails is unset.
func (p Policy) Decide(attempt, status int, err error) bool {
	p = p.Normalized()
	if err == nil && status < LeastBadStatus {
		return false
	}
	if attempt >= p.Attempts {
		return false
	}
	if err != nil && !p.OnFails {
		return false
	}
	return true
}
