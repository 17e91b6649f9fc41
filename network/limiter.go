package network

import (
	"time"

	"golang.org/x/time/rate"
)

// NewLimiter returns a limiter allowing one request per interval.
// A non-positive interval yields an unlimited limiter.
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Every(interval), 1)
}
