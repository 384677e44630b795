package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitByIP limits requests per client IP within the given window.
func RateLimitByIP(requestLimit int, windowLength time.Duration) func(http.Handler) http.Handler {
	return httprate.LimitByIP(requestLimit, windowLength)
}

// DefaultAuthRateLimit protects credential and OTP endpoints from
// brute-force attempts.
func DefaultAuthRateLimit() func(http.Handler) http.Handler {
	return RateLimitByIP(5, time.Minute)
}
