// Package ratelimit bounds how often a key (a phone number or a source IP) may request an OTP.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter counts one hit for key and reports whether it is within the limit.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
