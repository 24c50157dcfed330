// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides whether a failed HTTP request attempt should
// be retried and how long to back off before resuming.
//
// A Policy evaluates one transition per attempt completion: finalize,
// or schedule a retry. Delays follow a jittered exponential backoff
// with an injectable randomness source, and Budget exposes the
// closed-form upper bound on total execution latency that the engine
// attaches to every pending result.
package retry
