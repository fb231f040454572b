package domain

// Checkout-wide domain errors. These are checked locally, before any
// network call is attempted.
var (
	ErrEmptyCart          = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrIncompleteAddress  = &Error{Code: EINVALID, Message: "Name, phone, district, area and address are required"}
	ErrPhoneNotVerified   = &Error{Code: EUNVERIFIED, Message: "Phone number must be verified before placing an order"}
	ErrSessionNotFound    = &Error{Code: ENOTFOUND, Message: "Checkout session not found"}
	ErrOrderAlreadyPlaced = &Error{Code: ECONFLICT, Message: "An order has already been placed for this session"}
)

// Step identifies where the shopper is in the checkout flow. The compact
// three-step presentation and the single-page presentation share these
// states; only what is shown differs.
type Step string

const (
	StepAddress      Step = "address"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// PaymentType selects between a delivery-fee deposit with the balance
// collected on delivery, and full prepayment.
type PaymentType string

const (
	// PaymentPartial pays only the delivery charge upfront as a booking
	// deposit; the remainder is cash on delivery.
	PaymentPartial PaymentType = "partial"

	// PaymentFull prepays the whole amount. The delivery charge is waived
	// as an incentive.
	PaymentFull PaymentType = "full"
)

// Valid reports whether p is a known payment type.
func (p PaymentType) Valid() bool {
	return p == PaymentPartial || p == PaymentFull
}

// CheckoutForm is the shopper-entered shipping form. The orchestrator owns
// it; the lead recorder observes snapshots of it.
type CheckoutForm struct {
	Name     string
	Phone    string
	Email    string
	District string
	Area     string
	Address  string
	Notes    string
}

// AddressComplete reports whether every field required to advance past the
// address step is present.
func (f CheckoutForm) AddressComplete() bool {
	return f.Name != "" && f.Phone != "" && f.District != "" && f.Area != "" && f.Address != ""
}
