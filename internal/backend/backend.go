// Package backend talks to the remote storefront API that owns all durable
// state: OTP dispatch, coupon validation, lead capture and guest orders.
// Everything here is a black box with a JSON-over-HTTP contract.
package backend

import (
	"context"

	"github.com/asifratul/dokan/internal/domain"
)

// Client defines the remote collaborator operations used by the checkout
// core. Implementations: HTTPClient, MockClient.
type Client interface {
	// SendOTP dispatches a one-time code to the phone number.
	SendOTP(ctx context.Context, phone string) error

	// VerifyOTP confirms the code matches the one sent to the phone.
	// A mismatch returns an EINVALID-coded error; state is unchanged.
	VerifyOTP(ctx context.Context, phone, code string) error

	// ValidateCoupon checks a code against the current subtotal and
	// returns the discount terms.
	ValidateCoupon(ctx context.Context, code string, subtotal int64) (*CouponResult, error)

	// CaptureLead creates a lead record and returns its backend id.
	CaptureLead(ctx context.Context, snap domain.LeadSnapshot) (string, error)

	// UpdateLead replaces an existing lead's snapshot in place.
	UpdateLead(ctx context.Context, id string, snap domain.LeadSnapshot) error

	// ConvertLead marks the lead as converted and links it to an order.
	ConvertLead(ctx context.Context, id, orderID string) error

	// CreateGuestOrder places an order assembled at submission time.
	CreateGuestOrder(ctx context.Context, order domain.GuestOrder) (*domain.PlacedOrder, error)
}

// CouponResult is the backend's answer to a coupon validation call.
type CouponResult struct {
	Code        string
	Kind        string // "percentage" or "fixed"
	Value       int64
	MaxDiscount int64 // 0 means uncapped
	MinPurchase int64 // 0 means no floor
}
