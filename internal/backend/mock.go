package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/asifratul/dokan/internal/domain"
	"github.com/google/uuid"
)

// MockClient is a mock backend for testing. Simulates successful flows
// without touching the network. The lead recorder calls it from a
// goroutine, so all state is mutex-guarded.
type MockClient struct {
	mu sync.Mutex

	// Per-method overrides. When nil the default behavior applies.
	SendOTPFunc          func(ctx context.Context, phone string) error
	VerifyOTPFunc        func(ctx context.Context, phone, code string) error
	ValidateCouponFunc   func(ctx context.Context, code string, subtotal int64) (*CouponResult, error)
	CaptureLeadFunc      func(ctx context.Context, snap domain.LeadSnapshot) (string, error)
	UpdateLeadFunc       func(ctx context.Context, id string, snap domain.LeadSnapshot) error
	ConvertLeadFunc      func(ctx context.Context, id, orderID string) error
	CreateGuestOrderFunc func(ctx context.Context, order domain.GuestOrder) (*domain.PlacedOrder, error)

	// Leads stores captured lead snapshots by id.
	Leads map[string]domain.LeadSnapshot

	// ConvertedLeads maps lead id to the order id it was converted with.
	ConvertedLeads map[string]string

	// Orders stores placed guest orders.
	Orders []domain.GuestOrder

	// CallLog tracks method calls for test assertions.
	CallLog []string
}

// NewMockClient creates a new mock backend client.
func NewMockClient() *MockClient {
	return &MockClient{
		Leads:          make(map[string]domain.LeadSnapshot),
		ConvertedLeads: make(map[string]string),
	}
}

func (m *MockClient) log(entry string) {
	m.CallLog = append(m.CallLog, entry)
}

// Calls returns how many logged calls start with the given prefix.
func (m *MockClient) Calls(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, entry := range m.CallLog {
		if len(entry) >= len(prefix) && entry[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// ConvertedOrderID returns the order id a lead was converted with, or
// "" if it has not been converted.
func (m *MockClient) ConvertedOrderID(leadID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ConvertedLeads[leadID]
}

// SendOTP records the call and succeeds by default.
func (m *MockClient) SendOTP(ctx context.Context, phone string) error {
	m.mu.Lock()
	m.log(fmt.Sprintf("SendOTP(%s)", phone))
	fn := m.SendOTPFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, phone)
	}
	return nil
}

// VerifyOTP records the call and succeeds by default.
func (m *MockClient) VerifyOTP(ctx context.Context, phone, code string) error {
	m.mu.Lock()
	m.log(fmt.Sprintf("VerifyOTP(%s, %s)", phone, code))
	fn := m.VerifyOTPFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, phone, code)
	}
	return nil
}

// ValidateCoupon returns a 10% coupon by default.
func (m *MockClient) ValidateCoupon(ctx context.Context, code string, subtotal int64) (*CouponResult, error) {
	m.mu.Lock()
	m.log(fmt.Sprintf("ValidateCoupon(%s, %d)", code, subtotal))
	fn := m.ValidateCouponFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, code, subtotal)
	}
	return &CouponResult{Code: code, Kind: "percentage", Value: 10}, nil
}

// CaptureLead stores the snapshot under a fresh id by default.
func (m *MockClient) CaptureLead(ctx context.Context, snap domain.LeadSnapshot) (string, error) {
	m.mu.Lock()
	m.log(fmt.Sprintf("CaptureLead(%s)", snap.Form.Phone))
	fn := m.CaptureLeadFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, snap)
	}

	id := "lead_" + uuid.New().String()[:8]
	m.mu.Lock()
	m.Leads[id] = snap
	m.mu.Unlock()
	return id, nil
}

// UpdateLead replaces the stored snapshot by default.
func (m *MockClient) UpdateLead(ctx context.Context, id string, snap domain.LeadSnapshot) error {
	m.mu.Lock()
	m.log(fmt.Sprintf("UpdateLead(%s)", id))
	fn := m.UpdateLeadFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id, snap)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Leads[id]; !exists {
		return domain.NotFound("backend.update_lead", "lead", id)
	}
	m.Leads[id] = snap
	return nil
}

// ConvertLead records the conversion by default.
func (m *MockClient) ConvertLead(ctx context.Context, id, orderID string) error {
	m.mu.Lock()
	m.log(fmt.Sprintf("ConvertLead(%s, %s)", id, orderID))
	fn := m.ConvertLeadFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id, orderID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConvertedLeads[id] = orderID
	return nil
}

// CreateGuestOrder stores the order and returns a generated number by default.
func (m *MockClient) CreateGuestOrder(ctx context.Context, order domain.GuestOrder) (*domain.PlacedOrder, error) {
	m.mu.Lock()
	m.log(fmt.Sprintf("CreateGuestOrder(total=%d)", order.Total))
	fn := m.CreateGuestOrderFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, order)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Orders = append(m.Orders, order)
	return &domain.PlacedOrder{
		ID:          uuid.New().String(),
		OrderNumber: fmt.Sprintf("ORD-%04d", len(m.Orders)),
	}, nil
}
