// Package middleware provides HTTP middleware shared by all routes:
// request ids, request-scoped logging, Prometheus metrics and rate
// limiting.
package middleware

// contextKey is a private type for context keys to avoid collisions
type contextKey string
