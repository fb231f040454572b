// Package pricing computes checkout totals. All amounts are whole taka
// (BDT); there is no fractional currency anywhere in the breakdown.
package pricing

import (
	"github.com/asifratul/dokan/internal/coupon"
	"github.com/asifratul/dokan/internal/domain"
)

// Input carries everything a price breakdown depends on.
type Input struct {
	Subtotal       int64
	Coupon         *coupon.Terms
	DeliveryCharge int64
	PaymentType    domain.PaymentType
}

// Breakdown is the full price sheet shown to the buyer. Total is the
// order value; AmountDueNow plus AmountDueOnDelivery always equals it.
type Breakdown struct {
	Subtotal            int64 `json:"subtotal"`
	Discount            int64 `json:"discount"`
	DeliveryCharge      int64 `json:"delivery_charge"`
	Total               int64 `json:"total"`
	AmountDueNow        int64 `json:"amount_due_now"`
	AmountDueOnDelivery int64 `json:"amount_due_on_delivery"`
}

// Compute derives the breakdown for one cart.
//
// Partial payment collects the delivery charge up front and the rest on
// delivery. Full payment waives the delivery charge, so the buyer pays
// the discounted subtotal now and nothing at the door.
func Compute(in Input) Breakdown {
	subtotal := in.Subtotal
	if subtotal < 0 {
		subtotal = 0
	}

	var discount int64
	if in.Coupon != nil {
		discount = in.Coupon.Discount(subtotal)
	}

	b := Breakdown{
		Subtotal: subtotal,
		Discount: discount,
	}

	if in.PaymentType == domain.PaymentFull {
		b.Total = subtotal - discount
		b.AmountDueNow = b.Total
		b.AmountDueOnDelivery = 0
		return b
	}

	b.DeliveryCharge = in.DeliveryCharge
	b.Total = subtotal - discount + in.DeliveryCharge
	b.AmountDueNow = in.DeliveryCharge
	b.AmountDueOnDelivery = subtotal - discount
	return b
}
