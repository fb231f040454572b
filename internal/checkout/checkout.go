// Package checkout orchestrates the guest checkout flow: one in-memory
// session per shopper ties together the cart, shipping form, delivery
// location, coupon, payment choice and phone verification, and keeps a
// live price breakdown through every change.
package checkout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/asifratul/dokan/internal/backend"
	"github.com/asifratul/dokan/internal/coupon"
	"github.com/asifratul/dokan/internal/domain"
	"github.com/asifratul/dokan/internal/lead"
	"github.com/asifratul/dokan/internal/location"
	"github.com/asifratul/dokan/internal/pricing"
	"github.com/asifratul/dokan/internal/telemetry"
	"github.com/asifratul/dokan/internal/verification"
	"github.com/google/uuid"
)

// LeadSource identifies where captured leads originate.
const LeadSource = "checkout"

// Service provides business logic for checkout sessions.
type Service interface {
	// StartSession creates a new checkout session and returns its state.
	StartSession(ctx context.Context) (*State, error)

	// GetState returns the current state of a session.
	GetState(ctx context.Context, sessionID string) (*State, error)

	// UpdateForm replaces the shipping form, recomputes the breakdown and
	// feeds the lead recorder.
	UpdateForm(ctx context.Context, sessionID string, form domain.CheckoutForm) (*State, error)

	// ApplyCoupon validates a coupon against the current subtotal and
	// applies it to the session.
	ApplyCoupon(ctx context.Context, sessionID, code string) (*State, error)

	// RemoveCoupon drops the applied coupon.
	RemoveCoupon(ctx context.Context, sessionID string) (*State, error)

	// SetPaymentType selects partial or full payment and optionally the
	// payment method (bkash, nagad, card...).
	SetPaymentType(ctx context.Context, sessionID string, pt domain.PaymentType, method string) (*State, error)

	// SendCode requests a verification code for the form's phone number.
	SendCode(ctx context.Context, sessionID string) (*State, error)

	// VerifyCode checks the submitted code.
	VerifyCode(ctx context.Context, sessionID, code string) (*State, error)

	// AdvanceToPayment moves the session past the address step. It
	// requires a complete address and a verified phone.
	AdvanceToPayment(ctx context.Context, sessionID string) (*State, error)

	// Quote recomputes the breakdown from the live cart and returns it.
	Quote(ctx context.Context, sessionID string) (*State, error)

	// Submit places the order. All gating is re-checked locally before
	// any network call is made.
	Submit(ctx context.Context, sessionID string) (*State, error)

	// EndSession discards a session and its lead recorder.
	EndSession(ctx context.Context, sessionID string) error
}

// State is a point-in-time snapshot of one checkout session, safe to
// hand to the HTTP layer.
type State struct {
	SessionID     string
	Step          domain.Step
	Form          domain.CheckoutForm
	Cart          *domain.CartSummary
	Location      location.Selection
	PaymentType   domain.PaymentType
	PaymentMethod string
	Coupon        *coupon.Terms
	Verification  verification.State
	ResendIn      time.Duration
	Breakdown     pricing.Breakdown
	Order         *domain.PlacedOrder
}

// Config carries the orchestrator's tunables.
type Config struct {
	OTPResendCooldown time.Duration
	LeadDebounce      time.Duration
	LeadMinPhoneLen   int

	// now overrides the clock handed to verification machines. Tests
	// set it through WithClock.
	now func() time.Time
}

// Option customizes a Service.
type Option func(*Config)

// WithClock replaces the wall clock used for OTP resend cooldowns.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.now = now }
}

// session is the mutable per-shopper state. Its mutex serializes all
// operations on the session; the registry lock only guards the map.
type session struct {
	mu sync.Mutex

	id            string
	step          domain.Step
	form          domain.CheckoutForm
	selection     location.Selection
	paymentType   domain.PaymentType
	paymentMethod string
	coupon        *coupon.Terms
	verifier      *verification.Machine
	recorder      *lead.Recorder
	breakdown     pricing.Breakdown
	order         *domain.PlacedOrder
	createdAt     time.Time
}

type checkoutService struct {
	logger    *slog.Logger
	carts     domain.CartService
	client    backend.Client
	coupons   coupon.Validator
	directory *location.Directory
	cfg       Config

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewService(
	logger *slog.Logger,
	carts domain.CartService,
	client backend.Client,
	coupons coupon.Validator,
	directory *location.Directory,
	cfg Config,
	opts ...Option,
) (Service, error) {
	const op = "checkout.NewService"

	if logger == nil {
		return nil, domain.Errorf(domain.EINTERNAL, op, "logger is required")
	}
	if carts == nil {
		return nil, domain.Errorf(domain.EINTERNAL, op, "cart service is required")
	}
	if client == nil {
		return nil, domain.Errorf(domain.EINTERNAL, op, "backend client is required")
	}
	if coupons == nil {
		return nil, domain.Errorf(domain.EINTERNAL, op, "coupon validator is required")
	}
	if directory == nil {
		return nil, domain.Errorf(domain.EINTERNAL, op, "location directory is required")
	}
	if cfg.OTPResendCooldown <= 0 {
		cfg.OTPResendCooldown = 60 * time.Second
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &checkoutService{
		logger:    logger,
		carts:     carts,
		client:    client,
		coupons:   coupons,
		directory: directory,
		cfg:       cfg,
		sessions:  make(map[string]*session),
	}, nil
}

func (s *checkoutService) StartSession(ctx context.Context) (*State, error) {
	var clockOpts []verification.Option
	if s.cfg.now != nil {
		clockOpts = append(clockOpts, verification.WithClock(s.cfg.now))
	}

	sess := &session{
		id:          uuid.New().String(),
		step:        domain.StepAddress,
		paymentType: domain.PaymentPartial,
		verifier:    verification.NewMachine(s.client, s.cfg.OTPResendCooldown, clockOpts...),
		recorder: lead.NewRecorder(s.client, s.logger, lead.Config{
			Debounce:    s.cfg.LeadDebounce,
			MinPhoneLen: s.cfg.LeadMinPhoneLen,
		}),
		createdAt: time.Now(),
	}
	sess.selection = s.directory.Resolve("", "")

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	if telemetry.Business != nil {
		telemetry.Business.CheckoutStarted.WithLabelValues("web").Inc()
	}
	s.logger.Info("checkout session started", slog.String("session_id", sess.id))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.refresh(ctx, sess)
}

func (s *checkoutService) GetState(ctx context.Context, sessionID string) (*State, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.refresh(ctx, sess)
}

func (s *checkoutService) UpdateForm(ctx context.Context, sessionID string, form domain.CheckoutForm) (*State, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.order != nil {
		return nil, domain.ErrOrderAlreadyPlaced
	}

	sess.form = form
	sess.selection = s.directory.Resolve(form.District, form.Area)

	// Track the phone in the verifier so a verified session stays
	// verified across form saves that keep the same number.
	if verification.ValidPhone(form.Phone) {
		_ = sess.verifier.SetPhone(form.Phone)
	}

	state, err := s.refresh(ctx, sess)
	if err != nil {
		return nil, err
	}
	sess.recorder.Observe(s.snapshot(sess, state.Cart))
	return state, nil
}

func (s *checkoutService) ApplyCoupon(ctx context.Context, sessionID, code string) (*State, error) {
	const op = "checkout.Service.ApplyCoupon"

	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.order != nil {
		return nil, domain.ErrOrderAlreadyPlaced
	}

	summary, err := s.carts.GetCartSummary(ctx, sess.id)
	if err != nil {
		return nil, domain.WrapError(err, op, "failed to load cart")
	}

	terms, err := s.coupons.Validate(ctx, code, summary.Subtotal)
	if err != nil {
		if telemetry.Business != nil {
			reason := "invalid"
			if domain.IsUnavailable(err) {
				reason = "unavailable"
			}
			telemetry.Business.CouponsRejected.WithLabelValues(reason).Inc()
		}
		return nil, err
	}

	sess.coupon = terms
	if telemetry.Business != nil {
		telemetry.Business.CouponsApplied.WithLabelValues(terms.Code).Inc()
	}
	s.logger.Info("coupon applied",
		slog.String("session_id", sess.id),
		slog.String("code", terms.Code))

	return s.refresh(ctx, sess)
}

func (s *checkoutService) RemoveCoupon(ctx context.Context, sessionID string) (*State, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.order != nil {
		return nil, domain.ErrOrderAlreadyPlaced
	}

	sess.coupon = nil
	return s.refresh(ctx, sess)
}

func (s *checkoutService) SetPaymentType(ctx context.Context, sessionID string, pt domain.PaymentType, method string) (*State, error) {
	const op = "checkout.Service.SetPaymentType"

	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.order != nil {
		return nil, domain.ErrOrderAlreadyPlaced
	}
	if !pt.Valid() {
		return nil, domain.Errorf(domain.EINVALID, op, "unknown payment type %q", pt)
	}

	sess.paymentType = pt
	if method != "" {
		sess.paymentMethod = method
	}
	return s.refresh(ctx, sess)
}

func (s *checkoutService) SendCode(ctx context.Context, sessionID string) (*State, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.verifier.SetPhone(sess.form.Phone); err != nil {
		return nil, err
	}

	resend := sess.verifier.State() == verification.StateCodeSent
	if err := sess.verifier.SendCode(ctx); err != nil {
		return nil, err
	}

	if telemetry.Business != nil {
		kind := "initial"
		if resend {
			kind = "resend"
		}
		telemetry.Business.OTPSent.WithLabelValues(kind).Inc()
	}
	s.logger.Info("verification code sent", slog.String("session_id", sess.id))

	return s.refresh(ctx, sess)
}

func (s *checkoutService) VerifyCode(ctx context.Context, sessionID, code string) (*State, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.verifier.VerifyCode(ctx, code); err != nil {
		if telemetry.Business != nil {
			reason := "mismatch"
			if domain.IsUnavailable(err) {
				reason = "unavailable"
			}
			telemetry.Business.OTPFailed.WithLabelValues(reason).Inc()
		}
		return nil, err
	}

	if telemetry.Business != nil {
		telemetry.Business.OTPVerified.WithLabelValues().Inc()
	}
	s.logger.Info("phone verified", slog.String("session_id", sess.id))

	return s.refresh(ctx, sess)
}

func (s *checkoutService) AdvanceToPayment(ctx context.Context, sessionID string) (*State, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.order != nil {
		return nil, domain.ErrOrderAlreadyPlaced
	}
	if !sess.form.AddressComplete() {
		return nil, domain.ErrIncompleteAddress
	}
	if !s.phoneVerified(sess) {
		return nil, domain.ErrPhoneNotVerified
	}

	sess.step = domain.StepPayment
	if telemetry.Business != nil {
		telemetry.Business.CheckoutStep.WithLabelValues(string(domain.StepAddress)).Inc()
	}
	return s.refresh(ctx, sess)
}

func (s *checkoutService) Quote(ctx context.Context, sessionID string) (*State, error) {
	return s.GetState(ctx, sessionID)
}

func (s *checkoutService) Submit(ctx context.Context, sessionID string) (*State, error) {
	const op = "checkout.Service.Submit"

	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.order != nil {
		return nil, domain.ErrOrderAlreadyPlaced
	}

	// All gating is local. The order endpoint must not be touched unless
	// every check passes.
	summary, err := s.carts.GetCartSummary(ctx, sess.id)
	if err != nil {
		return nil, domain.WrapError(err, op, "failed to load cart")
	}
	if summary.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if !sess.form.AddressComplete() {
		return nil, domain.ErrIncompleteAddress
	}
	if !s.phoneVerified(sess) {
		return nil, domain.ErrPhoneNotVerified
	}
	if !sess.paymentType.Valid() {
		return nil, domain.Errorf(domain.EINVALID, op, "payment type not selected")
	}

	breakdown := s.compute(sess, summary.Subtotal)

	// The final form state should be on the lead before conversion.
	sess.recorder.Flush()

	order := domain.GuestOrder{
		Items:          summary.Lines,
		Shipping:       sess.form,
		Subtotal:       breakdown.Subtotal,
		Discount:       breakdown.Discount,
		DeliveryCharge: breakdown.DeliveryCharge,
		Total:          breakdown.Total,
		PaymentType:    sess.paymentType,
		PaymentMethod:  sess.paymentMethod,
		AdvancePaid:    breakdown.AmountDueNow,
		CODAmount:      breakdown.AmountDueOnDelivery,
		Notes:          sess.form.Notes,
		LeadID:         sess.recorder.LeadID(),
	}
	if sess.coupon != nil {
		order.CouponCode = sess.coupon.Code
	}

	placed, err := s.client.CreateGuestOrder(ctx, order)
	if err != nil {
		s.logger.Error("order submission failed",
			slog.String("session_id", sess.id),
			slog.String("error", err.Error()))
		telemetry.CaptureErrorFromContext(ctx, err, map[string]interface{}{
			"session_id": sess.id,
			"total":      breakdown.Total,
		})
		if domain.IsUnavailable(err) {
			return nil, domain.ErrOrderNotCreated
		}
		return nil, domain.WrapError(err, op, "failed to place order")
	}

	sess.order = placed
	sess.step = domain.StepConfirmation
	sess.breakdown = breakdown

	if err := s.carts.ClearCart(ctx, sess.id); err != nil {
		s.logger.Warn("failed to clear cart after order",
			slog.String("session_id", sess.id),
			slog.String("error", err.Error()))
	}
	sess.recorder.Convert(ctx, placed.ID)
	sess.recorder.Close()

	if telemetry.Business != nil {
		pt := string(sess.paymentType)
		telemetry.Business.CheckoutStep.WithLabelValues(string(domain.StepPayment)).Inc()
		telemetry.Business.OrdersCreated.WithLabelValues(pt).Inc()
		telemetry.Business.OrderValue.WithLabelValues(pt).Observe(float64(breakdown.Total))
		telemetry.Business.OrderItemCount.WithLabelValues(pt).Observe(float64(summary.ItemCount))
		if order.LeadID != "" {
			telemetry.Business.LeadsConverted.WithLabelValues().Inc()
		}
	}
	s.logger.Info("order placed",
		slog.String("session_id", sess.id),
		slog.String("order_id", placed.ID),
		slog.String("order_number", placed.OrderNumber),
		slog.Int64("total", breakdown.Total))

	return s.state(sess, &domain.CartSummary{SessionID: sess.id}), nil
}

func (s *checkoutService) EndSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.recorder.Close()
	return s.carts.ClearCart(ctx, sessionID)
}

func (s *checkoutService) get(sessionID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// phoneVerified requires the verifier to be in the verified state for
// the exact number currently on the form.
func (s *checkoutService) phoneVerified(sess *session) bool {
	return sess.verifier.Verified() && sess.verifier.Phone() == sess.form.Phone
}

func (s *checkoutService) compute(sess *session, subtotal int64) pricing.Breakdown {
	return pricing.Compute(pricing.Input{
		Subtotal:       subtotal,
		Coupon:         sess.coupon,
		DeliveryCharge: sess.selection.BaseCharge,
		PaymentType:    sess.paymentType,
	})
}

// refresh recomputes the breakdown from the live cart and returns the
// session state. Callers hold the session lock.
func (s *checkoutService) refresh(ctx context.Context, sess *session) (*State, error) {
	const op = "checkout.Service.refresh"

	summary, err := s.carts.GetCartSummary(ctx, sess.id)
	if err != nil {
		return nil, domain.WrapError(err, op, "failed to load cart")
	}
	sess.breakdown = s.compute(sess, summary.Subtotal)
	return s.state(sess, summary), nil
}

func (s *checkoutService) state(sess *session, summary *domain.CartSummary) *State {
	// The verifier only tracks well-formed numbers, so an edit that
	// mangles a verified phone leaves its state behind. Report what the
	// form's current number has actually earned.
	verState := sess.verifier.State()
	if sess.form.Phone != sess.verifier.Phone() {
		verState = verification.StateUnverified
	}

	return &State{
		SessionID:     sess.id,
		Step:          sess.step,
		Form:          sess.form,
		Cart:          summary,
		Location:      sess.selection,
		PaymentType:   sess.paymentType,
		PaymentMethod: sess.paymentMethod,
		Coupon:        sess.coupon,
		Verification:  verState,
		ResendIn:      sess.verifier.ResendAvailableIn(),
		Breakdown:     sess.breakdown,
		Order:         sess.order,
	}
}

func (s *checkoutService) snapshot(sess *session, summary *domain.CartSummary) domain.LeadSnapshot {
	snap := domain.LeadSnapshot{
		Form:   sess.form,
		Source: LeadSource,
	}
	if summary != nil {
		snap.Items = summary.Lines
		snap.CartTotal = summary.Subtotal
	}
	return snap
}
