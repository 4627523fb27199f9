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

// Package network implements the rate limiting and retry discipline for
// Slack Web API calls.
package network

// In this file: the retry wrapper around rate limited API calls.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/rusq/slack"
	"golang.org/x/time/rate"
)

// defNumAttempts is the default number of retry attempts.
const defNumAttempts = 3

var (
	// maxAllowedWaitTime is the maximum wait for a transient error.  The
	// wait time grows cubically with the attempt number, capped here.
	maxAllowedWaitTime = 5 * time.Minute
	// waitFn exists as a variable to shorten test runs.
	waitFn = cubicWait
)

// ErrRetryFailed is returned when the callback could not complete within the
// allowed number of retries.
var ErrRetryFailed = errors.New("callback was unable to complete without errors within the allowed number of retries")

// WithRetry runs fn under the limiter.  On slack.RateLimitedError it waits
// the advertised RetryAfter and retries, up to maxAttempts times.
// Recoverable server and transient net errors back off cubically.
func WithRetry(ctx context.Context, lim *rate.Limiter, maxAttempts int, fn func() error) error {
	if maxAttempts == 0 {
		maxAttempts = defNumAttempts
	}
	var ok bool
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := lim.Wait(ctx); err != nil {
			return err
		}

		cbErr := fn()
		if cbErr == nil {
			ok = true
			break
		}

		slog.DebugContext(ctx, "WithRetry: callback error", "error", cbErr, "attempt", attempt+1)
		var (
			rle *slack.RateLimitedError
			sce slack.StatusCodeError
			ne  *net.OpError
		)
		switch {
		case errors.As(cbErr, &rle):
			slog.InfoContext(ctx, "got rate limited, sleeping", "retry_after", rle.RetryAfter)
			if err := sleepCtx(ctx, rle.RetryAfter); err != nil {
				return err
			}
			continue
		case errors.As(cbErr, &sce):
			if isRecoverable(sce.Code) {
				delay := waitFn(attempt)
				slog.InfoContext(ctx, "got server error, sleeping", "code", sce.Code, "delay", delay)
				if err := sleepCtx(ctx, delay); err != nil {
					return err
				}
				continue
			}
		case errors.As(cbErr, &ne):
			if ne.Op == "read" || ne.Op == "write" {
				delay := waitFn(attempt)
				slog.InfoContext(ctx, "got network error, sleeping", "op", ne.Op, "delay", delay)
				if err := sleepCtx(ctx, delay); err != nil {
					return err
				}
				continue
			}
		}

		return fmt.Errorf("callback error: %w", cbErr)
	}
	if !ok {
		return ErrRetryFailed
	}
	return nil
}

// isRecoverable returns true if the server error code is transient.
func isRecoverable(statusCode int) bool {
	return (statusCode >= 500 && statusCode <= 599 && statusCode != 501) || statusCode == 408
}

// cubicWait returns the wait time for the attempt: (attempt+2)^3 seconds,
// capped at maxAllowedWaitTime.
func cubicWait(attempt int) time.Duration {
	x := attempt + 2
	delay := time.Duration(x*x*x) * time.Second
	if delay > maxAllowedWaitTime {
		return maxAllowedWaitTime
	}
	return delay
}

// sleepCtx sleeps for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
