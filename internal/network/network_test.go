// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package network

import (
	"errors"
	"testing"
	"time"

	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// instantWait replaces the cubic backoff for the duration of the test so
// retries do not slow the suite down.
func instantWait(t *testing.T) {
	t.Helper()
	old := waitFn
	waitFn = func(int) time.Duration { return time.Millisecond }
	t.Cleanup(func() { waitFn = old })
}

func TestWithRetry(t *testing.T) {
	t.Run("success on first attempt", func(t *testing.T) {
		var calls int
		err := WithRetry(t.Context(), NewLimiter(NoTier, 1, 0), 3, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
	t.Run("rate limited, then succeeds", func(t *testing.T) {
		var calls int
		err := WithRetry(t.Context(), NewLimiter(NoTier, 1, 0), 3, func() error {
			calls++
			if calls == 1 {
				return &slack.RateLimitedError{RetryAfter: time.Millisecond}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})
	t.Run("recoverable server error is retried", func(t *testing.T) {
		instantWait(t)
		var calls int
		err := WithRetry(t.Context(), NewLimiter(NoTier, 1, 0), 3, func() error {
			calls++
			if calls < 3 {
				return slack.StatusCodeError{Code: 503, Status: "service unavailable"}
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})
	t.Run("non-recoverable error fails immediately", func(t *testing.T) {
		var calls int
		wantErr := errors.New("invalid_auth")
		err := WithRetry(t.Context(), NewLimiter(NoTier, 1, 0), 3, func() error {
			calls++
			return wantErr
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, calls)
	})
	t.Run("retries exhausted", func(t *testing.T) {
		instantWait(t)
		var calls int
		err := WithRetry(t.Context(), NewLimiter(NoTier, 1, 0), 2, func() error {
			calls++
			return &slack.RateLimitedError{RetryAfter: time.Millisecond}
		})
		assert.ErrorIs(t, err, ErrRetryFailed)
		assert.Equal(t, 2, calls)
	})
	t.Run("zero maxAttempts uses the default", func(t *testing.T) {
		instantWait(t)
		var calls int
		err := WithRetry(t.Context(), NewLimiter(NoTier, 1, 0), 0, func() error {
			calls++
			return &slack.RateLimitedError{RetryAfter: time.Millisecond}
		})
		assert.ErrorIs(t, err, ErrRetryFailed)
		assert.Equal(t, defNumAttempts, calls)
	})
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{200, false},
		{400, false},
		{408, true},
		{500, true},
		{501, false},
		{503, true},
		{599, true},
		{600, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isRecoverable(tt.code), "code %d", tt.code)
	}
}

func TestCubicWait(t *testing.T) {
	assert.Equal(t, 8*time.Second, cubicWait(0))
	assert.Equal(t, 27*time.Second, cubicWait(1))
	assert.Equal(t, 64*time.Second, cubicWait(2))
	// capped
	assert.Equal(t, maxAllowedWaitTime, cubicWait(100))
}

func TestNewLimiter(t *testing.T) {
	// 50 + 10 events per minute is one event per second.
	lim := NewLimiter(Tier3, 1, 10)
	assert.Equal(t, rate.Every(time.Second), lim.Limit())
	assert.Equal(t, 1, lim.Burst())
}

func TestLimitsValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		l := DefLimits
		assert.NoError(t, l.Validate())
	})
	t.Run("zero burst is invalid", func(t *testing.T) {
		l := DefLimits
		l.Tier2.Burst = 0
		assert.Error(t, l.Validate())
	})
	t.Run("zero retries is invalid", func(t *testing.T) {
		l := DefLimits
		l.Tier3.Retries = 0
		assert.Error(t, l.Validate())
	})
}

func TestLimitsApply(t *testing.T) {
	l := DefLimits
	other := Limits{
		Tier2: TierLimit{Boost: 5, Burst: 2, Retries: 4},
		Tier3: TierLimit{Boost: 50, Burst: 1, Retries: 3},
	}
	require.NoError(t, l.Apply(other))
	assert.Equal(t, other, l)

	bad := other
	bad.Tier2.Burst = 0
	assert.Error(t, l.Apply(bad))
	assert.Equal(t, other, l) // unchanged on failure
}
