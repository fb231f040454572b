// Package verification tracks phone-number verification for a single
// checkout session. One-time codes are generated and checked by the
// backend; this package owns the local state machine and the resend
// cooldown.
package verification

import (
	"context"
	"regexp"
	"time"

	"github.com/asifratul/dokan/internal/backend"
	"github.com/asifratul/dokan/internal/domain"
)

// State is the verification status of a session's phone number.
type State string

const (
	StateUnverified State = "unverified"
	StateCodeSent   State = "code_sent"
	StateVerified   State = "verified"
)

var (
	ErrInvalidPhone = &domain.Error{
		Code:    domain.EINVALID,
		Message: "Enter a valid Bangladeshi mobile number (01XXXXXXXXX).",
	}
	ErrInvalidCode = &domain.Error{
		Code:    domain.EINVALID,
		Message: "The code is incorrect. Please try again.",
	}
	ErrResendTooSoon = &domain.Error{
		Code:    domain.ERATELIMIT,
		Message: "Please wait before requesting another code.",
	}
	ErrNoPhone = &domain.Error{
		Code:    domain.EINVALID,
		Message: "Enter your phone number before requesting a code.",
	}
)

// BD mobile numbers: 11 digits, operator prefixes 013-019.
var phonePattern = regexp.MustCompile(`^01[3-9]\d{8}$`)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// ValidPhone reports whether phone is a well-formed Bangladeshi mobile
// number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Machine is the per-session verification state machine. It is not safe
// for concurrent use; the owning session serializes access.
type Machine struct {
	client   backend.Client
	cooldown time.Duration
	now      func() time.Time

	phone       string
	state       State
	resendAfter time.Time
}

// Option customizes a Machine.
type Option func(*Machine)

// WithClock replaces the wall clock, letting tests drive the resend
// cooldown deterministically.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

func NewMachine(client backend.Client, cooldown time.Duration, opts ...Option) *Machine {
	m := &Machine{
		client:   client,
		cooldown: cooldown,
		now:      time.Now,
		state:    StateUnverified,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current verification state.
func (m *Machine) State() State { return m.state }

// Phone returns the number the machine is tracking.
func (m *Machine) Phone() string { return m.phone }

// Verified reports whether the tracked number has been confirmed.
func (m *Machine) Verified() bool { return m.state == StateVerified }

// ResendAvailableIn returns how long until another code may be sent.
// Zero means a send is allowed now.
func (m *Machine) ResendAvailableIn() time.Duration {
	remaining := m.resendAfter.Sub(m.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetPhone records the number to verify. Changing the number discards
// any previous verification; resubmitting the same number keeps it.
func (m *Machine) SetPhone(phone string) error {
	if !ValidPhone(phone) {
		return ErrInvalidPhone
	}
	if phone == m.phone {
		return nil
	}
	m.phone = phone
	m.state = StateUnverified
	m.resendAfter = time.Time{}
	return nil
}

// SendCode asks the backend to deliver a one-time code to the tracked
// number. Sends are rate limited by the cooldown; the cooldown starts
// only after a successful send, so a failed delivery can be retried
// immediately.
func (m *Machine) SendCode(ctx context.Context) error {
	const op = "verification.Machine.SendCode"

	if m.phone == "" {
		return ErrNoPhone
	}
	if m.state == StateVerified {
		return nil
	}
	if m.now().Before(m.resendAfter) {
		return ErrResendTooSoon
	}

	if err := m.client.SendOTP(ctx, m.phone); err != nil {
		return domain.WrapError(err, op, "failed to send verification code")
	}

	m.state = StateCodeSent
	m.resendAfter = m.now().Add(m.cooldown)
	return nil
}

// VerifyCode checks a submitted code against the backend. A wrong code
// leaves the machine in StateCodeSent so the buyer can retry or resend.
func (m *Machine) VerifyCode(ctx context.Context, code string) error {
	const op = "verification.Machine.VerifyCode"

	if m.state != StateCodeSent {
		return domain.Errorf(domain.EINVALID, op, "request a code before verifying")
	}
	if !codePattern.MatchString(code) {
		return ErrInvalidCode
	}

	if err := m.client.VerifyOTP(ctx, m.phone, code); err != nil {
		if domain.ErrorCode(err) == domain.EINVALID {
			return ErrInvalidCode
		}
		return domain.WrapError(err, op, "failed to verify code")
	}

	m.state = StateVerified
	return nil
}
