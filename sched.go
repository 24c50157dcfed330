// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpr

import (
	"time"

	"github.com/benbjohnson/clock"
)

// A Scheduler arms the one-shot timers that resume a request
// execution after a backoff wait.
//
// Schedule invokes fn exactly once, on an unspecified goroutine: with
// nil when the timer fires, or with a non-nil error if the timer
// failed. A timer failure finalizes the execution immediately. The
// returned stop function releases the timer without firing; calling
// it after the timer fired is harmless.
//
// At most one timer per execution is alive at a time; arming a new
// one replaces, never leaks, the previous handle.
type Scheduler interface {
	Schedule(d time.Duration, fn func(error)) (stop func())
}

// clockScheduler is the default Scheduler, backed by a clock so tests
// can drive retry waits with a mock.
type clockScheduler struct {
	clk clock.Clock
}

func (s clockScheduler) Schedule(d time.Duration, fn func(error)) func() {
	t := s.clk.AfterFunc(d, func() {
		fn(nil)
	})
	return func() {
		t.Stop()
	}
}
