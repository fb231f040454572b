// Package coupon validates discount codes against the remote backend
// and computes the discount a coupon grants on a cart subtotal.
package coupon

import (
	"context"
	"strings"

	"github.com/asifratul/dokan/internal/backend"
	"github.com/asifratul/dokan/internal/domain"
)

// Kind distinguishes how a coupon's value is interpreted.
type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

// ErrInvalidCoupon is returned when a code is unknown, expired, or does
// not meet its purchase requirements.
var ErrInvalidCoupon = &domain.Error{
	Code:    domain.EINVALID,
	Message: "This coupon code is not valid.",
}

// Terms describes a validated coupon as returned by the backend.
type Terms struct {
	Code        string
	Kind        Kind
	Value       int64
	MaxDiscount int64
	MinPurchase int64
}

// Discount returns the amount this coupon deducts from the given
// subtotal. Percentage values are taken out of 100 with integer
// truncation. The result is capped by MaxDiscount when set and never
// exceeds the subtotal.
func (t Terms) Discount(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}

	var discount int64
	switch t.Kind {
	case KindPercentage:
		discount = subtotal * t.Value / 100
	case KindFixed:
		discount = t.Value
	default:
		return 0
	}

	if t.MaxDiscount > 0 && discount > t.MaxDiscount {
		discount = t.MaxDiscount
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// Validator checks coupon codes for a given cart subtotal.
type Validator interface {
	Validate(ctx context.Context, code string, subtotal int64) (*Terms, error)
}

// RemoteValidator validates coupons through the backend API.
type RemoteValidator struct {
	client backend.Client
}

func NewRemoteValidator(client backend.Client) (*RemoteValidator, error) {
	if client == nil {
		return nil, &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "backend client is required",
			Op:      "coupon.NewRemoteValidator",
		}
	}
	return &RemoteValidator{client: client}, nil
}

// Validate normalizes the code, asks the backend for its terms, and
// enforces the minimum purchase requirement locally. Backend rejections
// surface as ErrInvalidCoupon; transport failures pass through so the
// caller can distinguish "bad code" from "backend down".
func (v *RemoteValidator) Validate(ctx context.Context, code string, subtotal int64) (*Terms, error) {
	const op = "coupon.RemoteValidator.Validate"

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrInvalidCoupon
	}

	result, err := v.client.ValidateCoupon(ctx, code, subtotal)
	if err != nil {
		if domain.ErrorCode(err) == domain.EINVALID || domain.ErrorCode(err) == domain.ENOTFOUND {
			return nil, ErrInvalidCoupon
		}
		return nil, domain.WrapError(err, op, "failed to validate coupon")
	}

	terms := &Terms{
		Code:        result.Code,
		Kind:        Kind(result.Kind),
		Value:       result.Value,
		MaxDiscount: result.MaxDiscount,
		MinPurchase: result.MinPurchase,
	}
	if terms.Kind != KindPercentage && terms.Kind != KindFixed {
		return nil, ErrInvalidCoupon
	}
	if terms.MinPurchase > 0 && subtotal < terms.MinPurchase {
		return nil, ErrInvalidCoupon
	}
	return terms, nil
}
