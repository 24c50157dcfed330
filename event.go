// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpr

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to observe request
// executions.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before
	// the first attempt of an execution starts.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// individual request attempt, after a fresh Response has been
	// bound for it.
	BeforeAttempt
	// AfterAttempt identifies the event that occurs after a request
	// attempt completes, before the retry decision for it is made.
	// Either the execution's Response or its Err is set.
	AfterAttempt
	// AfterRetryScheduled identifies the event that occurs after the
	// retry controller has armed the backoff timer for the next
	// attempt. The execution's Attempt field already names the
	// upcoming attempt.
	AfterRetryScheduled
	// AfterExecutionEnd identifies the event that occurs after the
	// execution finalized, immediately before the outcome is
	// delivered through the result future.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of event types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttempt",
	"AfterRetryScheduled",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur during
// a request execution, in the order in which they would first occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttempt,
		AfterRetryScheduled,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
