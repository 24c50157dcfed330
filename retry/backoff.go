// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// BaseDelay is the unit of the exponential backoff formula. The
	// delay before retrying attempt k is BaseDelay multiplied by a
	// uniform random integer in [0, 2^min(k-1, MaxShift)).
	BaseDelay = 25 * time.Millisecond

	// MaxShift caps the backoff exponent, bounding the jitter range
	// regardless of how many attempts have been made.
	MaxShift = 5

	// budgetFactor pads each attempt's timeout in the overall budget
	// to absorb scheduling slack around the attempt itself.
	budgetFactor = 1.1
)

// A Backoff computes jittered exponential retry delays.
//
// A Backoff is safe for concurrent use by multiple goroutines, though
// a single request execution only consults it sequentially.
type Backoff struct {
	rand *rand.Rand
	lock sync.Mutex
}

// NewBackoff constructs a Backoff whose jitter is drawn from the given
// randomness source.
//
// Parameter jitter may be nil (seed from the current time), or a seed
// value as a time.Time, int, or int64, or a rand.Source, or a
// *rand.Rand. Injecting a fixed seed makes the delay sequence
// deterministic, which the package's own tests rely on.
func NewBackoff(jitter interface{}) *Backoff {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		s = rand.NewSource(time.Now().UnixNano())
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("httpr/retry: jitter may not be a typed nil")
		}
		return &Backoff{rand: j}
	case rand.Source:
		s = j
	default:
		panic("httpr/retry: invalid jitter type")
	}
	return &Backoff{rand: rand.New(s)}
}

// Delay returns the wait before retrying attempt number attempt
// (1-based). The result is drawn uniformly from
// [0, BaseDelay * 2^min(attempt-1, MaxShift)), so the first retry
// always resumes without delay.
func (b *Backoff) Delay(attempt int) time.Duration {
	n := int64(1) << shift(attempt)

	b.lock.Lock()
	defer b.lock.Unlock()
	return BaseDelay * time.Duration(b.rand.Int63n(n))
}

// MaxDelay returns the largest delay Delay can produce for the given
// attempt number.
func MaxDelay(attempt int) time.Duration {
	return BaseDelay * time.Duration((int64(1)<<shift(attempt))-1)
}

// MaxDelaySum returns the sum of the largest possible backoff delays
// across an execution of up to attempts attempts, evaluated in closed
// form over the capped geometric series.
func MaxDelaySum(attempts int) time.Duration {
	m := attempts - 1 // number of retries
	if m <= 0 {
		return 0
	}

	// Retries 1..min(m, MaxShift+1) form the geometric run, the rest
	// repeat the capped term 2^MaxShift.
	run := m
	if run > MaxShift+1 {
		run = MaxShift + 1
	}
	sum := int64(1)<<run - 1
	if m > MaxShift+1 {
		sum += int64(m-(MaxShift+1)) << MaxShift
	}
	return BaseDelay * time.Duration(sum-int64(m))
}

// Budget returns the overall deadline for an execution of up to
// attempts attempts with the given per-attempt timeout: the padded
// attempt timeouts plus the worst-case backoff delays. It is computed
// before the first attempt runs so callers can bound total latency
// without inspecting attempt internals, and it is monotonically
// non-decreasing in attempts.
func Budget(perAttempt time.Duration, attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	padded := time.Duration(float64(perAttempt) * budgetFactor)
	return padded*time.Duration(attempts) + MaxDelaySum(attempts)
}

func shift(attempt int) uint {
	s := attempt - 1
	if s < 0 {
		s = 0
	}
	if s > MaxShift {
		s = MaxShift
	}
	return uint(s)
}
