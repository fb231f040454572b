package storefront

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asifratul/dokan/internal/domain"
	"github.com/asifratul/dokan/internal/handler"
	"github.com/asifratul/dokan/internal/middleware"
	"github.com/asifratul/dokan/internal/telemetry"
	"github.com/go-playground/validator/v10"
)

// CartHandler handles cart routes scoped to a checkout session
type CartHandler struct {
	cartService domain.CartService
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService domain.CartService, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// View handles GET /checkout/{session_id}/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cartService.GetCartSummary(r.Context(), r.PathValue("session_id"))
	if err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, fromDomainCart(summary))
}

// Add handles POST /checkout/{session_id}/cart/items
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var req struct {
		ProductID string `json:"product_id" validate:"required"`
		Name      string `json:"name" validate:"required"`
		UnitPrice int64  `json:"unit_price" validate:"gte=0"`
		Quantity  int    `json:"quantity" validate:"required,gt=0"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, logger, domain.ErrInvalidQuantity)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		handler.RespondError(w, logger,
			domain.Errorf(domain.EINVALID, "storefront.CartHandler.Add", "validation failed: %v", err))
		return
	}

	summary, err := h.cartService.AddItem(r.Context(), r.PathValue("session_id"), domain.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		Variant:   domain.Variant{Size: req.Size, Color: req.Color},
	})
	if err != nil {
		handler.RespondError(w, logger, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CartUpdated.WithLabelValues("add").Inc()
	}
	handler.RespondJSON(w, http.StatusOK, fromDomainCart(summary))
}

// UpdateQuantity handles PUT /checkout/{session_id}/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var req struct {
		Quantity int `json:"quantity" validate:"gte=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, logger, domain.ErrInvalidQuantity)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		handler.RespondError(w, logger, domain.ErrInvalidQuantity)
		return
	}

	summary, err := h.cartService.UpdateItemQuantity(r.Context(),
		r.PathValue("session_id"), r.PathValue("product_id"), req.Quantity)
	if err != nil {
		handler.RespondError(w, logger, err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CartUpdated.WithLabelValues("update_quantity").Inc()
	}
	handler.RespondJSON(w, http.StatusOK, fromDomainCart(summary))
}

// Remove handles DELETE /checkout/{session_id}/cart/items/{product_id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cartService.RemoveItem(r.Context(),
		r.PathValue("session_id"), r.PathValue("product_id"))
	if err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CartUpdated.WithLabelValues("remove").Inc()
	}
	handler.RespondJSON(w, http.StatusOK, fromDomainCart(summary))
}

// Clear handles DELETE /checkout/{session_id}/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.ClearCart(r.Context(), r.PathValue("session_id")); err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}

	if telemetry.Business != nil {
		telemetry.Business.CartCleared.WithLabelValues("manual").Inc()
	}
	handler.RespondJSON(w, http.StatusNoContent, nil)
}
