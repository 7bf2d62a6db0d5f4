package server

import (
	"time"

	"golang.org/x/time/rate"
)

// newRateLimiter allows burst frames at once, refilled evenly so that burst
// frames fit in every interval.
func newRateLimiter(burst int, interval time.Duration) *rate.Limiter {
	burst = max(burst, 1)
	if interval <= 0 {
		interval = time.Second
	}
	return rate.NewLimiter(rate.Every(interval/time.Duration(burst)), burst)
}
