package domain

import "context"

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// CartService provides business logic for shopping cart operations.
// The cart is owned by this collaborator; the checkout core reads it and
// clears it only after a successful order submission.
type CartService interface {
	// AddItem adds a product to the session's cart or increments quantity
	// if the same product/variant is already present.
	AddItem(ctx context.Context, sessionID string, line CartLine) (*CartSummary, error)

	// UpdateItemQuantity updates the quantity of a cart line.
	// If quantity is 0, the line is removed.
	UpdateItemQuantity(ctx context.Context, sessionID string, productID string, quantity int) (*CartSummary, error)

	// RemoveItem removes a product from the session's cart.
	RemoveItem(ctx context.Context, sessionID string, productID string) (*CartSummary, error)

	// GetCartSummary retrieves the cart with all lines and the running subtotal.
	GetCartSummary(ctx context.Context, sessionID string) (*CartSummary, error)

	// ClearCart removes all lines from the session's cart.
	ClearCart(ctx context.Context, sessionID string) error
}

// CartLine is a single cart entry. Prices are integer currency units.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int
	Variant   Variant
}

// Variant holds optional size/color attributes of a cart line.
type Variant struct {
	Size  string
	Color string
}

// LineSubtotal returns unit price times quantity.
func (l CartLine) LineSubtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CartSummary aggregates cart lines with the derived subtotal.
type CartSummary struct {
	SessionID string
	Lines     []CartLine
	Subtotal  int64
	ItemCount int
}

// IsEmpty reports whether the cart has no lines.
func (s *CartSummary) IsEmpty() bool {
	return s == nil || len(s.Lines) == 0
}
