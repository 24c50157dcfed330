// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package stats

import (
	"sync/atomic"
	"time"
)

// Stats is a record-only sink for request execution telemetry. All
// methods are safe for concurrent use and are no-ops on a nil
// receiver, so an engine without statistics wiring can skip the nil
// checks at every call site.
type Stats struct {
	started     int64
	finishedOK  int64
	finishedErr int64
	retries     int64
	cancels     int64
	timeToStart int64 // nanoseconds, cumulative
}

// A Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Started     int64
	FinishedOK  int64
	FinishedErr int64
	Retries     int64
	Cancels     int64
	// TimeToStart is the cumulative time between arming an attempt
	// and the transport reporting progress, across all attempts.
	TimeToStart time.Duration
}

// Start records that a request execution started.
func (s *Stats) Start() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.started, 1)
}

// StoreTimeToStart records the time an attempt took to start making
// transport progress.
func (s *Stats) StoreTimeToStart(d time.Duration) {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.timeToStart, int64(d))
}

// FinishOK records an execution that finalized with an HTTP response.
func (s *Stats) FinishOK(int) {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.finishedOK, 1)
}

// FinishErr records an execution that finalized with an error.
func (s *Stats) FinishErr() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.finishedErr, 1)
}

// Retry records one scheduled retry.
func (s *Stats) Retry() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.retries, 1)
}

// Cancel records a caller-initiated cancellation.
func (s *Stats) Cancel() {
	if s == nil {
		return
	}
	atomic.AddInt64(&s.cancels, 1)
}

// Snapshot returns a consistent-enough copy of the counters for
// reporting. A nil receiver yields a zero Snapshot.
func (s *Stats) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	return Snapshot{
		Started:     atomic.LoadInt64(&s.started),
		FinishedOK:  atomic.LoadInt64(&s.finishedOK),
		FinishedErr: atomic.LoadInt64(&s.finishedErr),
		Retries:     atomic.LoadInt64(&s.retries),
		Cancels:     atomic.LoadInt64(&s.cancels),
		TimeToStart: time.Duration(atomic.LoadInt64(&s.timeToStart)),
	}
}
