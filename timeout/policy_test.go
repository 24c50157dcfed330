// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	assert.Equal(t, 5*time.Second, DefaultPolicy.Timeout(1, 0))
	assert.Equal(t, 5*time.Second, DefaultPolicy.Ceiling())
}

func TestFixed(t *testing.T) {
	p := Fixed(250 * time.Millisecond)
	for attempt := 1; attempt <= 5; attempt++ {
		for timeouts := 0; timeouts < 5; timeouts++ {
			assert.Equal(t, 250*time.Millisecond, p.Timeout(attempt, timeouts))
		}
	}
	assert.Equal(t, 250*time.Millisecond, p.Ceiling())

	// Zero disables the attempt timeout but is still a valid policy.
	z := Fixed(0)
	assert.Equal(t, time.Duration(0), z.Timeout(1, 0))
	assert.Equal(t, time.Duration(0), z.Ceiling())
}

func TestAdaptive(t *testing.T) {
	t.Run("selects by prior timeouts", func(t *testing.T) {
		p := Adaptive(100*time.Millisecond, time.Second, 2*time.Second)
		assert.Equal(t, 100*time.Millisecond, p.Timeout(1, 0))
		assert.Equal(t, 100*time.Millisecond, p.Timeout(4, 0))
		assert.Equal(t, time.Second, p.Timeout(2, 1))
		assert.Equal(t, 2*time.Second, p.Timeout(3, 2))
		// Past the end the last value repeats.
		assert.Equal(t, 2*time.Second, p.Timeout(5, 3))
		assert.Equal(t, 2*time.Second, p.Timeout(9, 8))
	})
	t.Run("no after values", func(t *testing.T) {
		p := Adaptive(time.Second)
		assert.Equal(t, time.Second, p.Timeout(1, 0))
		assert.Equal(t, time.Second, p.Timeout(3, 2))
		assert.Equal(t, time.Second, p.Ceiling())
	})
	t.Run("ceiling is the maximum", func(t *testing.T) {
		assert.Equal(t, 2*time.Second,
			Adaptive(100*time.Millisecond, time.Second, 2*time.Second).Ceiling())
		// The usual timeout may itself be the largest value.
		assert.Equal(t, 3*time.Second,
			Adaptive(3*time.Second, time.Second, 2*time.Second).Ceiling())
	})
}
