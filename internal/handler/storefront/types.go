// Package storefront exposes the checkout flow as a JSON API.
package storefront

import (
	"github.com/asifratul/dokan/internal/checkout"
	"github.com/asifratul/dokan/internal/domain"
	"github.com/asifratul/dokan/internal/pricing"
)

// formPayload mirrors domain.CheckoutForm on the wire.
type formPayload struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	District string `json:"district"`
	Area     string `json:"area"`
	Address  string `json:"address"`
	Notes    string `json:"notes,omitempty"`
}

func (p formPayload) toDomain() domain.CheckoutForm {
	return domain.CheckoutForm{
		Name:     p.Name,
		Phone:    p.Phone,
		Email:    p.Email,
		District: p.District,
		Area:     p.Area,
		Address:  p.Address,
		Notes:    p.Notes,
	}
}

func fromDomainForm(f domain.CheckoutForm) formPayload {
	return formPayload{
		Name:     f.Name,
		Phone:    f.Phone,
		Email:    f.Email,
		District: f.District,
		Area:     f.Area,
		Address:  f.Address,
		Notes:    f.Notes,
	}
}

type cartLinePayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Subtotal  int64  `json:"subtotal"`
}

type cartPayload struct {
	Lines     []cartLinePayload `json:"lines"`
	Subtotal  int64             `json:"subtotal"`
	ItemCount int               `json:"item_count"`
}

func fromDomainCart(s *domain.CartSummary) cartPayload {
	out := cartPayload{Lines: []cartLinePayload{}}
	if s == nil {
		return out
	}
	out.Subtotal = s.Subtotal
	out.ItemCount = s.ItemCount
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, cartLinePayload{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Size:      l.Variant.Size,
			Color:     l.Variant.Color,
			Subtotal:  l.LineSubtotal(),
		})
	}
	return out
}

type couponPayload struct {
	Code        string `json:"code"`
	Kind        string `json:"kind"`
	Value       int64  `json:"value"`
	MaxDiscount int64  `json:"max_discount,omitempty"`
	MinPurchase int64  `json:"min_purchase,omitempty"`
}

type orderPayload struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
}

// stateResponse is the full session state returned by every checkout
// endpoint, so clients always render from one consistent snapshot.
type stateResponse struct {
	SessionID       string            `json:"session_id"`
	Step            string            `json:"step"`
	Form            formPayload       `json:"form"`
	Cart            cartPayload       `json:"cart"`
	District        string            `json:"district,omitempty"`
	Area            string            `json:"area,omitempty"`
	Zone            string            `json:"zone"`
	PaymentType     string            `json:"payment_type"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
	Coupon          *couponPayload    `json:"coupon,omitempty"`
	Verification    string            `json:"verification"`
	ResendAfterSecs int               `json:"resend_after_seconds"`
	Breakdown       pricing.Breakdown `json:"breakdown"`
	Order           *orderPayload     `json:"order,omitempty"`
}

func toStateResponse(s *checkout.State) stateResponse {
	out := stateResponse{
		SessionID:       s.SessionID,
		Step:            string(s.Step),
		Form:            fromDomainForm(s.Form),
		Cart:            fromDomainCart(s.Cart),
		District:        s.Location.District,
		Area:            s.Location.Area,
		Zone:            string(s.Location.Zone),
		PaymentType:     string(s.PaymentType),
		PaymentMethod:   s.PaymentMethod,
		Verification:    string(s.Verification),
		ResendAfterSecs: int(s.ResendIn.Seconds()),
		Breakdown:       s.Breakdown,
	}
	if s.Coupon != nil {
		out.Coupon = &couponPayload{
			Code:        s.Coupon.Code,
			Kind:        string(s.Coupon.Kind),
			Value:       s.Coupon.Value,
			MaxDiscount: s.Coupon.MaxDiscount,
			MinPurchase: s.Coupon.MinPurchase,
		}
	}
	if s.Order != nil {
		out.Order = &orderPayload{
			ID:          s.Order.ID,
			OrderNumber: s.Order.OrderNumber,
		}
	}
	return out
}
