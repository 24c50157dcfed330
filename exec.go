// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpr

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/veloq/httpr/response"
	"github.com/veloq/httpr/retry"
	"github.com/veloq/httpr/stats"
	"github.com/veloq/httpr/timeout"
	"github.com/veloq/httpr/transport"
	"github.com/veloq/httpr/upload"
)

// statusOnError mirrors the status code recorded on the client span
// when an execution finalizes without an HTTP response.
const statusOnError = 599

// Exec is the observable state of one request execution. Handlers
// receive it at every event; they must treat the fields as read-only.
type Exec struct {
	// Attempt is the 1-based number of the current attempt. When the
	// execution has ended it names the final attempt made.
	Attempt int

	// AttemptTimeouts counts the attempts that ended in a timeout.
	AttemptTimeouts int

	// Response is the response of the current or most recent attempt.
	// It is nil after an attempt that ended in a transport error and
	// after a failed execution ends.
	Response *response.Response

	// Err is the error of the most recent attempt, nil while an
	// attempt is underway. After the execution ends it carries the
	// final *Error, if any.
	Err error

	// Start and End bound the execution. End is zero until the
	// outcome has been decided.
	Start time.Time
	End   time.Time
}

// signals entering the execution driver. Each collaborator callback
// reduces to one message so the driver goroutine remains the only
// writer of mutable state.
type signalKind int

const (
	sigAttemptDone signalKind = iota
	sigTimerFired
	sigCancel
)

type execSignal struct {
	kind signalKind
	err  error
}

// execution drives one dispatched request through its attempts until
// exactly one outcome is delivered through the future.
//
// States: an attempt in flight, a retry scheduled, or finalized. Only
// the driver goroutine (run) mutates the state; transport
// completions, timer fires, and cancellation enter through the
// signals channel.
type execution struct {
	Exec

	tr       transport.Transport
	policy   retry.Policy
	backoff  *retry.Backoff
	tmo      timeout.Policy
	sched    Scheduler
	handlers *HandlerGroup
	log      zerolog.Logger
	span     trace.Span
	st       *stats.Stats
	fut      *ResponseFuture
	body     *upload.Stream
	op, url  string

	// signals is sized so no collaborator callback can ever block:
	// at most one attempt completion, one timer fire, and one cancel
	// can be outstanding at a time.
	signals    chan execSignal
	cancelOnce sync.Once

	// driver-goroutine state
	canceled  bool
	stopTimer func()
}

func (x *execution) run() {
	x.Start = time.Now()
	x.handlers.run(BeforeExecutionStart, &x.Exec)
	x.st.Start()
	x.beginAttempt()

	for {
		sig := <-x.signals
		switch sig.kind {
		case sigCancel:
			x.canceled = true
			x.st.Cancel()
			if x.stopTimer != nil {
				// Nothing in flight; finalize right away.
				x.stopTimer()
				x.stopTimer = nil
				x.finalizeErr(KindCanceled, context.Canceled)
				return
			}
			// An attempt is in flight. The transport was told to
			// stop; reconcile when its completion arrives.

		case sigAttemptDone:
			if x.attemptDone(sig.err) {
				return
			}

		case sigTimerFired:
			x.stopTimer = nil
			if sig.err != nil {
				x.finalizeErr(KindTimer, sig.err)
				return
			}
			if x.canceled {
				x.finalizeErr(KindCanceled, context.Canceled)
				return
			}
			x.beginAttempt()
		}
	}
}

// beginAttempt binds a fresh Response and arms the transport for one
// attempt. The previous attempt's Response, if any, is discarded,
// never merged.
func (x *execution) beginAttempt() {
	x.Response = response.New()
	x.Err = nil
	if x.body != nil {
		x.body.Rewind()
	}
	x.handlers.run(BeforeAttempt, &x.Exec)

	x.log.Debug().Int("attempt", x.Attempt).Str("url", x.url).Msg("attempt started")
	b := transport.Binding{
		Timeout:    x.tmo.Timeout(x.Attempt, x.AttemptTimeouts),
		HeaderLine: x.Response.ParseHeaderLine,
		Sink:       x.Response,
	}
	x.tr.Perform(b, func(err error) {
		x.signals <- execSignal{kind: sigAttemptDone, err: err}
	})
}

// attemptDone observes one attempt completion and either finalizes
// (returning true) or schedules a retry.
func (x *execution) attemptDone(err error) bool {
	x.st.StoreTimeToStart(x.tr.TimeToStart())
	if err == nil {
		x.Response.StatusCode = x.tr.ResponseCode()
	} else if isTimeout(err) {
		x.AttemptTimeouts++
	}
	x.Err = err
	x.handlers.run(AfterAttempt, &x.Exec)

	if x.canceled {
		// Cancellation raced with completion. Deliver the attempt's
		// already-decided outcome if it produced one, else report the
		// cancellation.
		if err != nil {
			x.finalizeErr(KindCanceled, err)
		} else {
			x.finalizeOK()
		}
		return true
	}

	if !x.policy.Decide(x.Attempt, x.tr.ResponseCode(), err) {
		if err != nil {
			x.finalizeErr(KindTransport, err)
		} else {
			x.finalizeOK()
		}
		return true
	}

	delay := x.backoff.Delay(x.Attempt)
	x.Attempt++
	x.st.Retry()
	x.log.Debug().
		Int("attempt", x.Attempt).
		Dur("delay", delay).
		Str("url", x.url).
		Msg("retry scheduled")
	x.stopTimer = x.sched.Schedule(delay, func(err error) {
		x.signals <- execSignal{kind: sigTimerFired, err: err}
	})
	x.handlers.run(AfterRetryScheduled, &x.Exec)
	return false
}

func (x *execution) finalizeOK() {
	code := x.Response.StatusCode
	x.span.SetAttributes(attribute.Int("http.status_code", code))
	if !x.Response.IsOK() {
		x.span.SetAttributes(attribute.Bool("error", true))
	}
	x.st.FinishOK(code)
	x.Err = nil
	x.end()
	x.log.Debug().
		Int("status", code).
		Int("attempts", x.Attempt).
		Str("url", x.tr.EffectiveURL()).
		Msg("execution completed")
	x.fut.complete(x.Response, nil)
}

func (x *execution) finalizeErr(kind Kind, cause error) {
	err := &Error{Kind: kind, Op: x.op, URL: x.url, Err: cause}
	x.span.SetAttributes(
		attribute.Int("http.status_code", statusOnError),
		attribute.Bool("error", true),
	)
	x.st.FinishErr()
	x.Err = err
	x.Response = nil
	x.end()
	x.log.Debug().
		Err(err).
		Int("attempts", x.Attempt).
		Str("url", x.url).
		Msg("execution failed")
	x.fut.complete(nil, err)
}

func (x *execution) end() {
	x.End = time.Now()
	x.handlers.run(AfterExecutionEnd, &x.Exec)
	x.span.End()
}

// cancelReq is the entry point of Request.Cancel and
// ResponseFuture.Cancel. It signals the transport immediately and
// posts one cancel signal to the driver; reconciliation against an
// in-flight completion happens there.
func (x *execution) cancelReq() {
	x.cancelOnce.Do(func() {
		x.tr.Cancel()
		x.signals <- execSignal{kind: sigCancel}
	})
}
