package routes

import (
	"github.com/asifratul/dokan/internal/handler/storefront"
	"github.com/asifratul/dokan/internal/middleware"
)

// StorefrontDeps contains dependencies for storefront routes
type StorefrontDeps struct {
	// Checkout sessions
	CheckoutHandler *storefront.CheckoutHandler

	// Cart (session-scoped)
	CartHandler *storefront.CartHandler

	// Delivery area directory
	LocationHandler *storefront.LocationHandler

	// OTPRateLimit throttles verification sends per client IP
	OTPRateLimit *middleware.RateLimiter
}
