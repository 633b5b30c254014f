/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
)

// Config configures retry behavior for issue tracker requests.
type Config struct {
	// MaxRetries is the maximum number of retry attempts (default: 3)
	// 0 means do not retry at all.
	MaxRetries int
	// BaseBackoff is the initial backoff duration (default: 1s)
	BaseBackoff time.Duration
	// MaxBackoff is the maximum backoff duration (default: 30s)
	MaxBackoff time.Duration
	// MaxJitter is the maximum random jitter added to backoff (default: 250ms)
	MaxJitter time.Duration
}

// Validate checks that the retry configuration has valid values.
func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	if c.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// DefaultConfig returns the retry configuration used for label requests.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		BaseBackoff: 1 * time.Second,
		MaxBackoff:  30 * time.Second,
		MaxJitter:   250 * time.Millisecond,
	}
}

// RetryWithBackoff calls fn until it succeeds, fails with an error isRetryable
// rejects, or cfg.MaxRetries retries are spent. Each retry is logged with the
// request name on the logger carried by ctx.
func RetryWithBackoff[T any](ctx context.Context, cfg Config, request string, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	log := clog.FromContext(ctx).With("request", request)
	for attempt := 0; ; attempt++ {
		result, err := fn()
		switch {
		case err == nil:
			return result, nil
		case !isRetryable(err):
			return result, err
		case attempt >= cfg.MaxRetries:
			return result, fmt.Errorf("%s failed after %d retries: %w", request, cfg.MaxRetries, err)
		}

		d := cfg.wait(attempt)
		log.With("attempt", attempt+1).With("max_retries", cfg.MaxRetries).With("wait", d).
			Warnf("GitHub request failed, retrying: %v", err)

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(d):
		}
	}
}

// wait returns BaseBackoff doubled per attempt, capped at MaxBackoff, plus up
// to MaxJitter.
func (c Config) wait(attempt int) time.Duration {
	d := min(c.BaseBackoff<<attempt, c.MaxBackoff)
	if c.MaxJitter > 0 {
		if n, err := rand.Int(rand.Reader, big.NewInt(int64(c.MaxJitter))); err == nil {
			d += time.Duration(n.Int64())
		}
	}
	return d
}

// IsRetryableGitHubError reports whether err is a GitHub rate limit or a
// server-side failure.
func IsRetryableGitHubError(err error) bool {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		code := respErr.Response.StatusCode
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	}
	return false
}
