package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asifratul/dokan/internal/backend"
	"github.com/asifratul/dokan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*backend.HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := backend.NewHTTPClient(backend.HTTPConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})
	require.NoError(t, err)
	return client, server
}

func TestNewHTTPClient_RequiresBaseURL(t *testing.T) {
	_, err := backend.NewHTTPClient(backend.HTTPConfig{})
	assert.Error(t, err)
}

func TestHTTPClient_SendOTP(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	err := client.SendOTP(context.Background(), "01712345678")

	assert.NoError(t, err)
	assert.Equal(t, "/auth/send-otp", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "01712345678", gotBody["phone"])
}

func TestHTTPClient_VerifyOTP_Mismatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "Code does not match"}`))
	})

	err := client.VerifyOTP(context.Background(), "01712345678", "000000")

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, "Code does not match", domain.ErrorMessage(err))
}

func TestHTTPClient_ValidateCoupon(t *testing.T) {
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coupons/validate", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "SAVE10", "type": "percentage", "value": 10, "max_discount": 80}`))
	})

	result, err := client.ValidateCoupon(context.Background(), "SAVE10", 1000)

	require.NoError(t, err)
	assert.Equal(t, "SAVE10", gotBody["code"])
	assert.Equal(t, float64(1000), gotBody["subtotal"])
	assert.Equal(t, "SAVE10", result.Code)
	assert.Equal(t, "percentage", result.Kind)
	assert.Equal(t, int64(10), result.Value)
	assert.Equal(t, int64(80), result.MaxDiscount)
}

func TestHTTPClient_ValidateCoupon_InvalidCode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "coupon not found"}`))
	})

	result, err := client.ValidateCoupon(context.Background(), "XXXX", 1000)

	assert.Nil(t, result)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestHTTPClient_CaptureLead(t *testing.T) {
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/leads/capture", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"id": "lead-42"}`))
	})

	snap := domain.LeadSnapshot{
		Form:   domain.CheckoutForm{Name: "Rahim", Phone: "01712345678", District: "Dhaka"},
		Source: "checkout",
		Items: []domain.CartLine{
			{ProductID: "p1", Name: "Panjabi", UnitPrice: 500, Quantity: 2},
		},
		CartTotal: 1000,
	}

	id, err := client.CaptureLead(context.Background(), snap)

	require.NoError(t, err)
	assert.Equal(t, "lead-42", id)
	assert.Equal(t, "Rahim", gotBody["name"])
	assert.Equal(t, "checkout", gotBody["source"])
	assert.Equal(t, float64(1000), gotBody["cart_total"])
	items, ok := gotBody["cart_items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
}

func TestHTTPClient_CaptureLead_MissingID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.CaptureLead(context.Background(), domain.LeadSnapshot{})
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestHTTPClient_UpdateLead_UsesPutWithID(t *testing.T) {
	var gotMethod, gotPath string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateLead(context.Background(), "lead-42", domain.LeadSnapshot{})

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/leads/lead-42", gotPath)
}

func TestHTTPClient_ConvertLead(t *testing.T) {
	var gotBody map[string]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/leads/lead-42", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	err := client.ConvertLead(context.Background(), "lead-42", "order-7")

	assert.NoError(t, err)
	assert.Equal(t, "converted", gotBody["status"])
	assert.Equal(t, "order-7", gotBody["order_id"])
}

func TestHTTPClient_CreateGuestOrder(t *testing.T) {
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/guest", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"_id": "abc123", "order_number": "ORD-20260831-K4P2"}`))
	})

	order := domain.GuestOrder{
		Items: []domain.CartLine{
			{ProductID: "p1", Name: "Panjabi", UnitPrice: 500, Quantity: 2, Variant: domain.Variant{Size: "L"}},
		},
		Shipping:       domain.CheckoutForm{Name: "Rahim", Phone: "01712345678", District: "Dhaka", Area: "Mirpur", Address: "House 7"},
		Subtotal:       1000,
		Discount:       80,
		CouponCode:     "SAVE10",
		DeliveryCharge: 60,
		Total:          980,
		PaymentType:    domain.PaymentPartial,
		PaymentMethod:  "bkash",
		AdvancePaid:    60,
		CODAmount:      920,
		LeadID:         "lead-42",
	}

	placed, err := client.CreateGuestOrder(context.Background(), order)

	require.NoError(t, err)
	assert.Equal(t, "abc123", placed.ID)
	assert.Equal(t, "ORD-20260831-K4P2", placed.OrderNumber)
	assert.Equal(t, "partial", gotBody["payment_type"])
	assert.Equal(t, float64(60), gotBody["advance_paid"])
	assert.Equal(t, float64(920), gotBody["cod_amount"])
	assert.Equal(t, "lead-42", gotBody["lead_id"])

	addr, ok := gotBody["shipping_address"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Mirpur", addr["area"])
}

func TestHTTPClient_ServerError_IsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.SendOTP(context.Background(), "01712345678")
	assert.True(t, domain.IsUnavailable(err))
}

func TestHTTPClient_ConnectionRefused_IsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := backend.NewHTTPClient(backend.HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)
	server.Close()

	err = client.SendOTP(context.Background(), "01712345678")
	assert.True(t, domain.IsUnavailable(err))
}
