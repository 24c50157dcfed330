// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats_NilReceiver(t *testing.T) {
	var s *Stats
	assert.NotPanics(t, func() {
		s.Start()
		s.StoreTimeToStart(time.Second)
		s.FinishOK(200)
		s.FinishErr()
		s.Retry()
		s.Cancel()
	})
	assert.Equal(t, Snapshot{}, s.Snapshot())
}

func TestStats_Snapshot(t *testing.T) {
	s := &Stats{}
	assert.Equal(t, Snapshot{}, s.Snapshot())

	s.Start()
	s.Start()
	s.StoreTimeToStart(10 * time.Millisecond)
	s.StoreTimeToStart(15 * time.Millisecond)
	s.Retry()
	s.FinishOK(200)
	s.FinishErr()
	s.Cancel()

	assert.Equal(t, Snapshot{
		Started:     2,
		FinishedOK:  1,
		FinishedErr: 1,
		Retries:     1,
		Cancels:     1,
		TimeToStart: 25 * time.Millisecond,
	}, s.Snapshot())
}

func TestStats_Concurrent(t *testing.T) {
	s := &Stats{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Start()
			s.Retry()
			s.StoreTimeToStart(time.Millisecond)
			s.FinishOK(200)
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, int64(50), snap.Started)
	assert.Equal(t, int64(50), snap.Retries)
	assert.Equal(t, int64(50), snap.FinishedOK)
	assert.Equal(t, 50*time.Millisecond, snap.TimeToStart)
}
