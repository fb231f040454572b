package domain

// Order-related domain errors.
var (
	ErrOrderNotCreated = &Error{Code: EUNAVAILABLE, Message: "Order could not be placed, please try again"}
)

// GuestOrder is assembled once at submission time and handed to the remote
// order-creation collaborator. It is never mutated after assembly.
type GuestOrder struct {
	Items          []CartLine
	Shipping       CheckoutForm
	Subtotal       int64
	Discount       int64
	CouponCode     string
	DeliveryCharge int64
	Total          int64
	PaymentType    PaymentType
	PaymentMethod  string
	AdvancePaid    int64
	CODAmount      int64
	Notes          string
	LeadID         string
}

// PlacedOrder is the backend's acknowledgement of a created order.
type PlacedOrder struct {
	ID          string
	OrderNumber string
}
