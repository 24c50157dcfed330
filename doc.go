// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package httpr is an asynchronous HTTP client request engine with
// automatic retries and exponential backoff.
//
// A Client creates fluent Requests. Dispatching one with AsyncPerform
// returns a pending ResponseFuture immediately; the engine then
// drives attempts over a single reusable transport handle, retrying
// server errors (and, if enabled, transport errors) with jittered
// exponential backoff until it delivers exactly one outcome through
// the future. The future is bounded by an overall deadline computed
// up front, so callers can bound total latency across every possible
// attempt and backoff wait without inspecting attempt internals.
//
// A minimal blocking call:
//
//	client := httpr.New(config.Default())
//	resp, err := client.NewRequest().
//		Get("https://example.com").
//		Timeout(500 * time.Millisecond).
//		Retry(3, true).
//		Perform()
//
// And the asynchronous form:
//
//	fut := client.NewRequest().Put("https://example.com/obj", data).AsyncPerform()
//	// ... other work ...
//	resp, err := fut.Get()
//
// Cancellation is advisory and race-free: Cancel may be called from
// any goroutine at any time, and the engine still delivers exactly
// one outcome, either the in-flight attempt's decided result or a
// cancellation failure.
package httpr
