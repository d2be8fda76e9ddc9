// Package middleware provides a small set of ready-made middleware for use
// in bind chains: bearer-token authentication, token-bucket rate limiting,
// and fixed response headers for the before phase, and access-line request
// logging for the after phase.
package middleware
