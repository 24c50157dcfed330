// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpr

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockScheduler_Fires(t *testing.T) {
	mock := clock.NewMock()
	s := clockScheduler{clk: mock}

	fired := make(chan error, 1)
	s.Schedule(100*time.Millisecond, func(err error) { fired <- err })

	mock.Add(99 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("timer fired early")
	default:
	}

	mock.Add(time.Millisecond)
	select {
	case err := <-fired:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestClockScheduler_ZeroDelay(t *testing.T) {
	mock := clock.NewMock()
	s := clockScheduler{clk: mock}

	fired := make(chan error, 1)
	s.Schedule(0, func(err error) { fired <- err })
	mock.Add(time.Millisecond)

	select {
	case err := <-fired:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("zero-delay timer did not fire")
	}
}

func TestClockScheduler_Stop(t *testing.T) {
	mock := clock.NewMock()
	s := clockScheduler{clk: mock}

	fired := make(chan error, 1)
	stop := s.Schedule(50*time.Millisecond, func(err error) { fired <- err })
	stop()
	mock.Add(time.Second)

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	default:
	}

	// Stopping again, or after the fact, is harmless.
	assert.NotPanics(t, stop)
}
