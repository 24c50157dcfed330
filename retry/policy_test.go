// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Normalized(t *testing.T) {
	assert.Equal(t, Policy{Attempts: 1}, Policy{}.Normalized())
	assert.Equal(t, Policy{Attempts: 1}, Policy{Attempts: -5}.Normalized())
	assert.Equal(t, Policy{Attempts: 1, OnFails: true}, Policy{Attempts: 0, OnFails: true}.Normalized())
	assert.Equal(t, Policy{Attempts: 3}, Policy{Attempts: 3}.Normalized())
}

func TestPolicy_Decide(t *testing.T) {
	transportErr := errors.New("connection refused")
	testCases := []struct {
		name    string
		policy  Policy
		attempt int
		status  int
		err     error
		retry   bool
	}{
		{"success finalizes", Policy{Attempts: 3}, 1, 200, nil, false},
		{"redirect finalizes", Policy{Attempts: 3}, 1, 302, nil, false},
		{"client error finalizes", Policy{Attempts: 3}, 1, 404, nil, false},
		{"just below threshold finalizes", Policy{Attempts: 3}, 1, 499, nil, false},
		{"server error retries", Policy{Attempts: 3}, 1, 500, nil, true},
		{"bad gateway retries", Policy{Attempts: 3}, 2, 502, nil, true},
		{"server error exhausts budget", Policy{Attempts: 3}, 3, 500, nil, false},
		{"single attempt never retries", Policy{Attempts: 1}, 1, 500, nil, false},
		{"zero policy never retries", Policy{}, 1, 500, nil, false},
		{"transport error without OnFails", Policy{Attempts: 3}, 1, 0, transportErr, false},
		{"transport error with OnFails", Policy{Attempts: 3, OnFails: true}, 1, 0, transportErr, true},
		{"transport error exhausts budget", Policy{Attempts: 3, OnFails: true}, 3, 0, transportErr, false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			retry := testCase.policy.Decide(testCase.attempt, testCase.status, testCase.err)
			assert.Equal(t, testCase.retry, retry)
		})
	}
}
