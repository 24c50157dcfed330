// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpr

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/veloq/httpr/response"
)

// A ResponseFuture is the pending outcome of a dispatched request.
//
// The outcome is written at most once, no matter how many attempts
// were made or how cancellation interleaved with completion; later
// writes are no-ops. The future is bounded by the execution budget
// computed before the first attempt ran, so callers can wait without
// inspecting attempt internals.
type ResponseFuture struct {
	done   chan struct{}
	once   sync.Once
	resp   *response.Response
	err    error
	budget time.Duration
	clk    clock.Clock
	cancel func()
}

// complete records the outcome and releases waiters. It reports
// whether this call was the one that completed the future.
func (f *ResponseFuture) complete(resp *response.Response, err error) bool {
	wrote := false
	f.once.Do(func() {
		f.resp = resp
		f.err = err
		close(f.done)
		wrote = true
	})
	return wrote
}

// Budget returns the overall deadline computed for the execution:
// the padded per-attempt timeouts plus the worst-case backoff waits.
func (f *ResponseFuture) Budget() time.Duration {
	return f.budget
}

// Done returns a channel closed when the outcome is available.
func (f *ResponseFuture) Done() <-chan struct{} {
	return f.done
}

// Cancel requests cancellation of the underlying execution. It is
// safe to call from any goroutine, any number of times, including
// after completion.
func (f *ResponseFuture) Cancel() {
	f.cancel()
}

// Get blocks until the outcome is available or the execution budget
// elapses. On budget expiry it cancels the execution and returns an
// Error of KindDeadline.
//
// Get must not be called from the engine's own callbacks (handlers,
// schedulers, transport completions); doing so would block the
// context that has to produce the outcome.
func (f *ResponseFuture) Get() (*response.Response, error) {
	if f.budget <= 0 {
		<-f.done
		return f.resp, f.err
	}

	t := f.clk.Timer(f.budget)
	defer t.Stop()
	select {
	case <-f.done:
		return f.resp, f.err
	case <-t.C:
		f.cancel()
		return nil, &Error{Kind: KindDeadline}
	}
}

// GetContext blocks until the outcome is available or ctx is done,
// whichever comes first. Unlike Get it does not apply the execution
// budget; bound ctx yourself if needed.
func (f *ResponseFuture) GetContext(ctx context.Context) (*response.Response, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
