package middleware

import (
	"golang.org/x/time/rate"

	"github.com/ljpx/bind"
)

// RateLimit is a before-phase middleware that refuses requests once a token
// bucket is exhausted, halting with a TooManyRequests problem details
// response.  One bucket spans every route the middleware is linked to.  It
// is safe for concurrent dispatch.
type RateLimit struct {
	limiter *rate.Limiter
}

// NewRateLimit creates a new RateLimit that refills at limit tokens per
// second and allows bursts of up to burst requests.
func NewRateLimit(limit rate.Limit, burst int) *RateLimit {
	return &RateLimit{limiter: rate.NewLimiter(limit, burst)}
}

var _ bind.Middleware = &RateLimit{}

// Handle takes a token from the bucket, halting the request if none remain.
func (m *RateLimit) Handle(ctx *bind.Context) bool {
	if !m.limiter.Allow() {
		ctx.TooManyRequests()
		return false
	}

	return true
}
