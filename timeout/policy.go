// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"
)

// A Policy directs how to set the timeout on each HTTP request
// attempt within an execution.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
type Policy interface {
	// Timeout returns the timeout for the attempt numbered attempt
	// (1-based), given the number of attempts that have already timed
	// out during the execution.
	Timeout(attempt, timeouts int) time.Duration

	// Ceiling returns the largest timeout the policy can return for
	// any attempt. The engine uses it to compute the overall
	// execution budget analytically before the first attempt runs.
	Ceiling() time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 5 seconds on each attempt.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Fixed constructs a timeout policy that uses the same value for
// every attempt.
func Fixed(d time.Duration) Policy {
	return policy([]time.Duration{d})
}

// Adaptive constructs a timeout policy that varies the next timeout
// when previous attempts timed out.
//
// Parameter usual is the timeout for the initial attempt and for any
// attempt where no earlier attempt timed out. Parameter after
// contains the timeouts used once attempts start timing out: after
// the first timeout of the execution after[0] applies, after the
// second after[1], and so on, with the last element repeated once the
// execution has timed out more often than after has elements.
//
// Use Adaptive against services with one-off slow responses: a short
// usual timeout cures them cheaply, while the longer after values
// protect both sides from retry storms during a genuine burst of
// slowness.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make([]time.Duration, 1, 1+len(after))
	p[0] = usual
	return policy(append(p, after...))
}

type policy []time.Duration

func (p policy) Timeout(_, timeouts int) time.Duration {
	if timeouts > len(p)-1 {
		timeouts = len(p) - 1
	}
	return p[timeouts]
}

func (p policy) Ceiling() time.Duration {
	max := p[0]
	for _, d := range p[1:] {
		if d > max {
			max = d
		}
	}
	return max
}
