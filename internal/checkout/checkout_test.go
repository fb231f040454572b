package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/asifratul/dokan/internal/backend"
	"github.com/asifratul/dokan/internal/cart"
	"github.com/asifratul/dokan/internal/coupon"
	"github.com/asifratul/dokan/internal/domain"
	"github.com/asifratul/dokan/internal/location"
	"github.com/asifratul/dokan/internal/verification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Fixtures
// ============================================================================

type fixture struct {
	svc   Service
	mock  *backend.MockClient
	carts *cart.Store
	clock *fakeClock
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time          { return c.current }
func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := backend.NewMockClient()

	carts, err := cart.NewStore(logger)
	require.NoError(t, err)

	validator, err := coupon.NewRemoteValidator(mock)
	require.NoError(t, err)

	clock := &fakeClock{current: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	svc, err := NewService(
		logger,
		carts,
		mock,
		validator,
		location.NewDefaultDirectory(),
		Config{
			OTPResendCooldown: 60 * time.Second,
			LeadDebounce:      5 * time.Millisecond,
			LeadMinPhoneLen:   11,
		},
		WithClock(clock.Now),
	)
	require.NoError(t, err)

	return &fixture{svc: svc, mock: mock, carts: carts, clock: clock}
}

func completeForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		Name:     "Rahim Uddin",
		Phone:    "01712345678",
		District: "Dhaka",
		Area:     "Mirpur",
		Address:  "House 7, Road 3, Block B",
	}
}

// startWithCart starts a session and loads the cart with one 1000-taka
// line.
func (f *fixture) startWithCart(t *testing.T) *State {
	t.Helper()
	ctx := context.Background()

	state, err := f.svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = f.carts.AddItem(ctx, state.SessionID, domain.CartLine{
		ProductID: "p1",
		Name:      "Panjabi",
		UnitPrice: 500,
		Quantity:  2,
	})
	require.NoError(t, err)
	return state
}

// verifyPhone walks the session through form entry and OTP verification.
func (f *fixture) verifyPhone(t *testing.T, sessionID string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.UpdateForm(ctx, sessionID, completeForm())
	require.NoError(t, err)
	_, err = f.svc.SendCode(ctx, sessionID)
	require.NoError(t, err)
	_, err = f.svc.VerifyCode(ctx, sessionID, "123456")
	require.NoError(t, err)
}

// ============================================================================
// Constructor
// ============================================================================

func TestNewService_RequiresDependencies(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := backend.NewMockClient()
	carts, err := cart.NewStore(logger)
	require.NoError(t, err)
	validator, err := coupon.NewRemoteValidator(mock)
	require.NoError(t, err)
	dir := location.NewDefaultDirectory()

	_, err = NewService(nil, carts, mock, validator, dir, Config{})
	assert.Error(t, err)
	_, err = NewService(logger, nil, mock, validator, dir, Config{})
	assert.Error(t, err)
	_, err = NewService(logger, carts, nil, validator, dir, Config{})
	assert.Error(t, err)
	_, err = NewService(logger, carts, mock, nil, dir, Config{})
	assert.Error(t, err)
	_, err = NewService(logger, carts, mock, validator, nil, Config{})
	assert.Error(t, err)
}

// ============================================================================
// Session lifecycle
// ============================================================================

func TestStartSession(t *testing.T) {
	f := newFixture(t)

	state, err := f.svc.StartSession(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, state.SessionID)
	assert.Equal(t, domain.StepAddress, state.Step)
	assert.Equal(t, domain.PaymentPartial, state.PaymentType)
	assert.Equal(t, verification.StateUnverified, state.Verification)
	assert.True(t, state.Cart.IsEmpty())
	// No district selected yet: highest delivery tier applies.
	assert.Equal(t, location.OutsideZoneCharge, state.Breakdown.DeliveryCharge)
}

func TestGetState_UnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetState(context.Background(), "nosuch")

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEndSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	require.NoError(t, f.svc.EndSession(ctx, state.SessionID))

	_, err := f.svc.GetState(ctx, state.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	summary, err := f.carts.GetCartSummary(ctx, state.SessionID)
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty())
}

// ============================================================================
// Form updates and pricing
// ============================================================================

func TestUpdateForm_RecomputesDeliveryCharge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	form := completeForm()
	updated, err := f.svc.UpdateForm(ctx, state.SessionID, form)

	require.NoError(t, err)
	assert.Equal(t, location.ZoneDhakaCity, updated.Location.Zone)
	assert.Equal(t, location.ChargeDhakaCity, updated.Breakdown.DeliveryCharge)
	assert.Equal(t, int64(1000), updated.Breakdown.Subtotal)
	assert.Equal(t, int64(1000)+location.ChargeDhakaCity, updated.Breakdown.Total)

	form.District = "Chattogram"
	updated, err = f.svc.UpdateForm(ctx, state.SessionID, form)
	require.NoError(t, err)
	assert.Equal(t, location.ChargeNational, updated.Breakdown.DeliveryCharge)
}

func TestUpdateForm_UnknownDistrictUsesHighestTier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	form := completeForm()
	form.District = "Atlantis"
	updated, err := f.svc.UpdateForm(ctx, state.SessionID, form)

	require.NoError(t, err)
	assert.Equal(t, location.OutsideZoneCharge, updated.Breakdown.DeliveryCharge)
}

func TestUpdateForm_FeedsLeadRecorder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	_, err := f.svc.UpdateForm(ctx, state.SessionID, completeForm())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.mock.Calls("CaptureLead") == 1
	}, time.Second, 5*time.Millisecond)
}

func TestUpdateForm_ShortPhoneNotCaptured(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	form := completeForm()
	form.Phone = "0171234"
	_, err := f.svc.UpdateForm(ctx, state.SessionID, form)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, f.mock.Calls("CaptureLead"))
}

// ============================================================================
// Coupons
// ============================================================================

func TestApplyCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.mock.ValidateCouponFunc = func(ctx context.Context, code string, subtotal int64) (*backend.CouponResult, error) {
		return &backend.CouponResult{Code: code, Kind: "percentage", Value: 10, MaxDiscount: 80}, nil
	}

	_, err := f.svc.UpdateForm(ctx, state.SessionID, completeForm())
	require.NoError(t, err)

	updated, err := f.svc.ApplyCoupon(ctx, state.SessionID, "save10")

	require.NoError(t, err)
	require.NotNil(t, updated.Coupon)
	assert.Equal(t, "SAVE10", updated.Coupon.Code)
	assert.Equal(t, int64(80), updated.Breakdown.Discount)
	assert.Equal(t, int64(1000-80)+location.ChargeDhakaCity, updated.Breakdown.Total)
}

func TestApplyCoupon_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.mock.ValidateCouponFunc = func(ctx context.Context, code string, subtotal int64) (*backend.CouponResult, error) {
		return nil, domain.Errorf(domain.EINVALID, "backend.ValidateCoupon", "unknown code")
	}

	_, err := f.svc.ApplyCoupon(ctx, state.SessionID, "NOPE")

	assert.ErrorIs(t, err, coupon.ErrInvalidCoupon)

	// Session keeps no coupon after a rejection.
	current, err := f.svc.GetState(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Nil(t, current.Coupon)
	assert.Zero(t, current.Breakdown.Discount)
}

func TestRemoveCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	_, err := f.svc.ApplyCoupon(ctx, state.SessionID, "SAVE10")
	require.NoError(t, err)

	updated, err := f.svc.RemoveCoupon(ctx, state.SessionID)

	require.NoError(t, err)
	assert.Nil(t, updated.Coupon)
	assert.Zero(t, updated.Breakdown.Discount)
}

// ============================================================================
// Payment type
// ============================================================================

func TestSetPaymentType_FullWaivesDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	_, err := f.svc.UpdateForm(ctx, state.SessionID, completeForm())
	require.NoError(t, err)

	updated, err := f.svc.SetPaymentType(ctx, state.SessionID, domain.PaymentFull, "bkash")

	require.NoError(t, err)
	assert.Zero(t, updated.Breakdown.DeliveryCharge)
	assert.Equal(t, int64(1000), updated.Breakdown.Total)
	assert.Equal(t, int64(1000), updated.Breakdown.AmountDueNow)
	assert.Zero(t, updated.Breakdown.AmountDueOnDelivery)
	assert.Equal(t, "bkash", updated.PaymentMethod)
}

func TestSetPaymentType_PartialPaysDeliveryChargeUpfront(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	_, err := f.svc.UpdateForm(ctx, state.SessionID, completeForm())
	require.NoError(t, err)

	updated, err := f.svc.SetPaymentType(ctx, state.SessionID, domain.PaymentPartial, "")

	require.NoError(t, err)
	assert.Equal(t, location.ChargeDhakaCity, updated.Breakdown.AmountDueNow)
	assert.Equal(t, int64(1000), updated.Breakdown.AmountDueOnDelivery)
}

func TestSetPaymentType_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	_, err := f.svc.SetPaymentType(ctx, state.SessionID, "credit", "")

	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

// ============================================================================
// Phone verification
// ============================================================================

func TestSendCode_RequiresValidPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	form := completeForm()
	form.Phone = "12345"
	_, err := f.svc.UpdateForm(ctx, state.SessionID, form)
	require.NoError(t, err)

	_, err = f.svc.SendCode(ctx, state.SessionID)

	assert.ErrorIs(t, err, verification.ErrInvalidPhone)
	assert.Equal(t, 0, f.mock.Calls("SendOTP"))
}

func TestSendCode_Cooldown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	_, err := f.svc.UpdateForm(ctx, state.SessionID, completeForm())
	require.NoError(t, err)

	updated, err := f.svc.SendCode(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, verification.StateCodeSent, updated.Verification)
	assert.Equal(t, 60*time.Second, updated.ResendIn)

	_, err = f.svc.SendCode(ctx, state.SessionID)
	assert.ErrorIs(t, err, verification.ErrResendTooSoon)

	f.clock.Advance(61 * time.Second)
	_, err = f.svc.SendCode(ctx, state.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, 2, f.mock.Calls("SendOTP"))
}

func TestVerifyCode_WrongCodeKeepsCodeSent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.mock.VerifyOTPFunc = func(ctx context.Context, phone, code string) error {
		return domain.Errorf(domain.EINVALID, "backend.VerifyOTP", "code mismatch")
	}

	_, err := f.svc.UpdateForm(ctx, state.SessionID, completeForm())
	require.NoError(t, err)
	_, err = f.svc.SendCode(ctx, state.SessionID)
	require.NoError(t, err)

	_, err = f.svc.VerifyCode(ctx, state.SessionID, "000000")

	assert.ErrorIs(t, err, verification.ErrInvalidCode)
	current, err := f.svc.GetState(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, verification.StateCodeSent, current.Verification)
}

func TestVerifiedSurvivesFormSaveWithSamePhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)

	form := completeForm()
	form.Address = "New address 42"
	updated, err := f.svc.UpdateForm(ctx, state.SessionID, form)

	require.NoError(t, err)
	assert.Equal(t, verification.StateVerified, updated.Verification)
}

func TestPhoneChangeResetsVerification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)

	form := completeForm()
	form.Phone = "01898765432"
	updated, err := f.svc.UpdateForm(ctx, state.SessionID, form)

	require.NoError(t, err)
	assert.Equal(t, verification.StateUnverified, updated.Verification)

	_, err = f.svc.AdvanceToPayment(ctx, state.SessionID)
	assert.ErrorIs(t, err, domain.ErrPhoneNotVerified)
}

func TestMalformedPhoneEditDropsVerifiedState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)

	// Dropping a digit leaves a number the verifier never tracked; the
	// reported state must not stay verified for it.
	form := completeForm()
	form.Phone = "0171234567"
	updated, err := f.svc.UpdateForm(ctx, state.SessionID, form)

	require.NoError(t, err)
	assert.Equal(t, verification.StateUnverified, updated.Verification)

	_, err = f.svc.AdvanceToPayment(ctx, state.SessionID)
	assert.ErrorIs(t, err, domain.ErrPhoneNotVerified)

	// Restoring the original number revives the earlier verification.
	restored, err := f.svc.UpdateForm(ctx, state.SessionID, completeForm())
	require.NoError(t, err)
	assert.Equal(t, verification.StateVerified, restored.Verification)
}

// ============================================================================
// Step gating
// ============================================================================

func TestAdvanceToPayment_RequiresCompleteAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	form := completeForm()
	form.Area = ""
	_, err := f.svc.UpdateForm(ctx, state.SessionID, form)
	require.NoError(t, err)

	_, err = f.svc.AdvanceToPayment(ctx, state.SessionID)

	assert.ErrorIs(t, err, domain.ErrIncompleteAddress)
}

func TestAdvanceToPayment_RequiresVerifiedPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	_, err := f.svc.UpdateForm(ctx, state.SessionID, completeForm())
	require.NoError(t, err)

	_, err = f.svc.AdvanceToPayment(ctx, state.SessionID)

	assert.ErrorIs(t, err, domain.ErrPhoneNotVerified)
}

func TestAdvanceToPayment_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)

	updated, err := f.svc.AdvanceToPayment(ctx, state.SessionID)

	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, updated.Step)
}

// ============================================================================
// Submission
// ============================================================================

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)
	_, err := f.svc.SetPaymentType(ctx, state.SessionID, domain.PaymentPartial, "bkash")
	require.NoError(t, err)

	final, err := f.svc.Submit(ctx, state.SessionID)

	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, final.Step)
	require.NotNil(t, final.Order)
	assert.NotEmpty(t, final.Order.OrderNumber)

	require.Len(t, f.mock.Orders, 1)
	order := f.mock.Orders[0]
	assert.Equal(t, int64(1000), order.Subtotal)
	assert.Equal(t, location.ChargeDhakaCity, order.DeliveryCharge)
	assert.Equal(t, int64(1000)+location.ChargeDhakaCity, order.Total)
	assert.Equal(t, location.ChargeDhakaCity, order.AdvancePaid)
	assert.Equal(t, int64(1000), order.CODAmount)
	assert.Equal(t, "bkash", order.PaymentMethod)
	assert.Equal(t, "01712345678", order.Shipping.Phone)

	// Cart is cleared only after the order went through.
	summary, err := f.carts.GetCartSummary(ctx, state.SessionID)
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty())
}

func TestSubmit_FullPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)
	_, err := f.svc.SetPaymentType(ctx, state.SessionID, domain.PaymentFull, "card")
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, state.SessionID)

	require.NoError(t, err)
	require.Len(t, f.mock.Orders, 1)
	order := f.mock.Orders[0]
	assert.Zero(t, order.DeliveryCharge)
	assert.Equal(t, int64(1000), order.Total)
	assert.Equal(t, int64(1000), order.AdvancePaid)
	assert.Zero(t, order.CODAmount)
}

func TestSubmit_UnverifiedMakesZeroOrderCalls(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	_, err := f.svc.UpdateForm(ctx, state.SessionID, completeForm())
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, state.SessionID)

	assert.ErrorIs(t, err, domain.ErrPhoneNotVerified)
	assert.Equal(t, domain.EUNVERIFIED, domain.ErrorCode(err))
	assert.Equal(t, 0, f.mock.Calls("CreateGuestOrder"))
}

func TestSubmit_EmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state, err := f.svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, state.SessionID)

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, 0, f.mock.Calls("CreateGuestOrder"))
}

func TestSubmit_IncompleteAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)

	_, err := f.svc.Submit(ctx, state.SessionID)

	assert.ErrorIs(t, err, domain.ErrIncompleteAddress)
	assert.Equal(t, 0, f.mock.Calls("CreateGuestOrder"))
}

func TestSubmit_BackendFailureKeepsSessionOnPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)
	_, err := f.svc.AdvanceToPayment(ctx, state.SessionID)
	require.NoError(t, err)

	f.mock.CreateGuestOrderFunc = func(ctx context.Context, order domain.GuestOrder) (*domain.PlacedOrder, error) {
		return nil, domain.Unavailable(errors.New("timeout"), "backend.CreateGuestOrder", "order api unreachable")
	}

	_, err = f.svc.Submit(ctx, state.SessionID)

	assert.ErrorIs(t, err, domain.ErrOrderNotCreated)

	// Nothing was committed: cart intact, step unchanged, retry allowed.
	current, err := f.svc.GetState(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, current.Step)
	assert.Nil(t, current.Order)
	summary, err := f.carts.GetCartSummary(ctx, state.SessionID)
	require.NoError(t, err)
	assert.False(t, summary.IsEmpty())

	f.mock.CreateGuestOrderFunc = nil
	_, err = f.svc.Submit(ctx, state.SessionID)
	assert.NoError(t, err)
}

func TestSubmit_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)

	_, err := f.svc.Submit(ctx, state.SessionID)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, state.SessionID)

	assert.ErrorIs(t, err, domain.ErrOrderAlreadyPlaced)
	assert.Equal(t, 1, f.mock.Calls("CreateGuestOrder"))
}

func TestSubmit_ConvertsCapturedLead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)

	// Wait for the debounced capture so the lead id is on the order.
	require.Eventually(t, func() bool {
		return f.mock.Calls("CaptureLead") >= 1
	}, time.Second, 5*time.Millisecond)

	_, err := f.svc.Submit(ctx, state.SessionID)

	require.NoError(t, err)
	require.Len(t, f.mock.Orders, 1)
	assert.NotEmpty(t, f.mock.Orders[0].LeadID)
	assert.Equal(t, 1, f.mock.Calls("ConvertLead"))
}

func TestSubmit_LeadConversionFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)
	require.Eventually(t, func() bool {
		return f.mock.Calls("CaptureLead") >= 1
	}, time.Second, 5*time.Millisecond)

	f.mock.ConvertLeadFunc = func(ctx context.Context, id, orderID string) error {
		return domain.Unavailable(errors.New("timeout"), "backend.ConvertLead", "crm unreachable")
	}

	final, err := f.svc.Submit(ctx, state.SessionID)

	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, final.Step)
}

func TestSubmit_CouponCodeOnOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := f.startWithCart(t)
	f.verifyPhone(t, state.SessionID)
	f.mock.ValidateCouponFunc = func(ctx context.Context, code string, subtotal int64) (*backend.CouponResult, error) {
		return &backend.CouponResult{Code: code, Kind: "percentage", Value: 10, MaxDiscount: 80}, nil
	}
	_, err := f.svc.ApplyCoupon(ctx, state.SessionID, "SAVE10")
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, state.SessionID)

	require.NoError(t, err)
	require.Len(t, f.mock.Orders, 1)
	order := f.mock.Orders[0]
	assert.Equal(t, "SAVE10", order.CouponCode)
	assert.Equal(t, int64(80), order.Discount)
	assert.Equal(t, int64(1000-80)+location.ChargeDhakaCity, order.Total)
}
