// Package cart holds per-session shopping carts in memory. Carts are
// ephemeral by design; anything worth keeping moves to the backend when
// an order is placed.
package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/asifratul/dokan/internal/domain"
)

// Store implements domain.CartService with an in-memory map keyed by
// session id. Safe for concurrent use.
type Store struct {
	logger *slog.Logger

	mu    sync.RWMutex
	carts map[string][]domain.CartLine
}

func NewStore(logger *slog.Logger) (*Store, error) {
	if logger == nil {
		return nil, &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "logger is required",
			Op:      "cart.NewStore",
		}
	}
	return &Store{
		logger: logger,
		carts:  make(map[string][]domain.CartLine),
	}, nil
}

// AddItem appends a line to the session's cart, merging quantity into an
// existing line when the product and variant match.
func (s *Store) AddItem(ctx context.Context, sessionID string, line domain.CartLine) (*domain.CartSummary, error) {
	const op = "cart.Store.AddItem"

	if line.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if line.ProductID == "" {
		return nil, domain.Errorf(domain.EINVALID, op, "product id is required")
	}
	if line.UnitPrice < 0 {
		return nil, domain.Errorf(domain.EINVALID, op, "unit price cannot be negative")
	}

	s.mu.Lock()
	lines := s.carts[sessionID]
	merged := false
	for i := range lines {
		if lines[i].ProductID == line.ProductID && lines[i].Variant == line.Variant {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}
	s.carts[sessionID] = lines
	s.mu.Unlock()

	s.logger.Debug("cart item added",
		slog.String("session_id", sessionID),
		slog.String("product_id", line.ProductID),
		slog.Int("quantity", line.Quantity))

	return s.GetCartSummary(ctx, sessionID)
}

// UpdateItemQuantity sets the quantity of a cart line. Quantity zero
// removes the line.
func (s *Store) UpdateItemQuantity(ctx context.Context, sessionID string, productID string, quantity int) (*domain.CartSummary, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	s.mu.Lock()
	lines, ok := s.carts[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrCartNotFound
	}
	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			found = true
			break
		}
	}
	s.carts[sessionID] = lines
	s.mu.Unlock()

	if !found {
		return nil, domain.ErrCartItemNotFound
	}
	return s.GetCartSummary(ctx, sessionID)
}

// RemoveItem deletes a product's line from the session's cart.
func (s *Store) RemoveItem(ctx context.Context, sessionID string, productID string) (*domain.CartSummary, error) {
	s.mu.Lock()
	lines, ok := s.carts[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrCartNotFound
	}
	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return nil, domain.ErrCartItemNotFound
	}
	return s.GetCartSummary(ctx, sessionID)
}

// GetCartSummary returns the session's cart with computed totals. A
// session with no cart gets an empty summary, not an error.
func (s *Store) GetCartSummary(ctx context.Context, sessionID string) (*domain.CartSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := &domain.CartSummary{SessionID: sessionID}
	for _, line := range s.carts[sessionID] {
		summary.Lines = append(summary.Lines, line)
		summary.Subtotal += line.LineSubtotal()
		summary.ItemCount += line.Quantity
	}
	return summary, nil
}

// ClearCart drops the session's cart entirely.
func (s *Store) ClearCart(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
