package routes

import (
	"github.com/asifratul/dokan/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing checkout routes.
// Every route is JSON; session identity travels in the path so the API
// stays cookie-free.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Delivery area directory
	r.Get("/districts", deps.LocationHandler.Districts)
	r.Get("/districts/{district}/areas", deps.LocationHandler.Areas)

	// Checkout session lifecycle
	r.Post("/checkout", deps.CheckoutHandler.Start)
	r.Get("/checkout/{session_id}", deps.CheckoutHandler.Get)
	r.Delete("/checkout/{session_id}", deps.CheckoutHandler.End)

	// Shopping cart
	r.Get("/checkout/{session_id}/cart", deps.CartHandler.View)
	r.Post("/checkout/{session_id}/cart/items", deps.CartHandler.Add)
	r.Put("/checkout/{session_id}/cart/items/{product_id}", deps.CartHandler.UpdateQuantity)
	r.Delete("/checkout/{session_id}/cart/items/{product_id}", deps.CartHandler.Remove)
	r.Delete("/checkout/{session_id}/cart", deps.CartHandler.Clear)

	// Shipping form and pricing
	r.Put("/checkout/{session_id}/form", deps.CheckoutHandler.UpdateForm)
	r.Get("/checkout/{session_id}/quote", deps.CheckoutHandler.Quote)

	// Coupons
	r.Post("/checkout/{session_id}/coupon", deps.CheckoutHandler.ApplyCoupon)
	r.Delete("/checkout/{session_id}/coupon", deps.CheckoutHandler.RemoveCoupon)

	// Payment selection
	r.Put("/checkout/{session_id}/payment", deps.CheckoutHandler.SetPaymentType)

	// Phone verification (OTP sends are strictly rate limited)
	if deps.OTPRateLimit != nil {
		r.Post("/checkout/{session_id}/verification/send",
			deps.CheckoutHandler.SendCode, deps.OTPRateLimit.Middleware)
	} else {
		r.Post("/checkout/{session_id}/verification/send", deps.CheckoutHandler.SendCode)
	}
	r.Post("/checkout/{session_id}/verification/verify", deps.CheckoutHandler.VerifyCode)

	// Step gating and submission
	r.Post("/checkout/{session_id}/advance", deps.CheckoutHandler.Advance)
	r.Post("/checkout/{session_id}/submit", deps.CheckoutHandler.Submit)
}
