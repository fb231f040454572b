package storefront

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/asifratul/dokan/internal/checkout"
	"github.com/asifratul/dokan/internal/domain"
	"github.com/asifratul/dokan/internal/handler"
	"github.com/asifratul/dokan/internal/middleware"
	"github.com/go-playground/validator/v10"
)

// CheckoutHandler handles all checkout-session routes
type CheckoutHandler struct {
	service  checkout.Service
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service checkout.Service, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Start handles POST /checkout
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.StartSession(r.Context())
	if err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, toStateResponse(state))
}

// Get handles GET /checkout/{session_id}
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.GetState(r.Context(), r.PathValue("session_id"))
	if err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// UpdateForm handles PUT /checkout/{session_id}/form
func (h *CheckoutHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var req formPayload
	if err := h.decode(r, &req); err != nil {
		handler.RespondError(w, logger, err)
		return
	}

	state, err := h.service.UpdateForm(r.Context(), r.PathValue("session_id"), req.toDomain())
	if err != nil {
		handler.RespondError(w, logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// ApplyCoupon handles POST /checkout/{session_id}/coupon
func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var req struct {
		Code string `json:"code" validate:"required"`
	}
	if err := h.decode(r, &req); err != nil {
		handler.RespondError(w, logger, err)
		return
	}

	state, err := h.service.ApplyCoupon(r.Context(), r.PathValue("session_id"), req.Code)
	if err != nil {
		handler.RespondError(w, logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// RemoveCoupon handles DELETE /checkout/{session_id}/coupon
func (h *CheckoutHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.RemoveCoupon(r.Context(), r.PathValue("session_id"))
	if err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// SetPaymentType handles PUT /checkout/{session_id}/payment
func (h *CheckoutHandler) SetPaymentType(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var req struct {
		Type   string `json:"type" validate:"required,oneof=partial full"`
		Method string `json:"method" validate:"omitempty,oneof=bkash nagad rocket card"`
	}
	if err := h.decode(r, &req); err != nil {
		handler.RespondError(w, logger, err)
		return
	}

	state, err := h.service.SetPaymentType(r.Context(), r.PathValue("session_id"),
		domain.PaymentType(req.Type), req.Method)
	if err != nil {
		handler.RespondError(w, logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// SendCode handles POST /checkout/{session_id}/verification/send
func (h *CheckoutHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.SendCode(r.Context(), r.PathValue("session_id"))
	if err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// VerifyCode handles POST /checkout/{session_id}/verification/verify
func (h *CheckoutHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var req struct {
		Code string `json:"code" validate:"required,len=6,numeric"`
	}
	if err := h.decode(r, &req); err != nil {
		handler.RespondError(w, logger, err)
		return
	}

	state, err := h.service.VerifyCode(r.Context(), r.PathValue("session_id"), req.Code)
	if err != nil {
		handler.RespondError(w, logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// Advance handles POST /checkout/{session_id}/advance
func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.AdvanceToPayment(r.Context(), r.PathValue("session_id"))
	if err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// Quote handles GET /checkout/{session_id}/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Quote(r.Context(), r.PathValue("session_id"))
	if err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// Submit handles POST /checkout/{session_id}/submit
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Submit(r.Context(), r.PathValue("session_id"))
	if err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toStateResponse(state))
}

// End handles DELETE /checkout/{session_id}
func (h *CheckoutHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.service.EndSession(r.Context(), r.PathValue("session_id")); err != nil {
		handler.RespondError(w, middleware.GetLogger(r.Context(), h.logger), err)
		return
	}
	handler.RespondJSON(w, http.StatusNoContent, nil)
}

// decode parses and validates a JSON request body.
func (h *CheckoutHandler) decode(r *http.Request, v interface{}) error {
	const op = "storefront.CheckoutHandler.decode"

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Errorf(domain.EINVALID, op, "invalid JSON body")
	}
	if err := h.validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return domain.WrapError(err, op, "validation error")
		}
		return domain.Errorf(domain.EINVALID, op, "validation failed: %v", err)
	}
	return nil
}
