package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/asifratul/dokan/internal/domain"
)

// HTTPClient implements Client against the storefront REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// HTTPConfig configures an HTTPClient.
type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewHTTPClient creates a Client over the remote API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs one JSON round trip. Transport failures come back as
// EUNAVAILABLE, 4xx as EINVALID with the backend's message, and everything
// else as EINTERNAL.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return domain.Internal(err, op, "failed to encode request")
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return domain.Internal(err, op, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Unavailable(err, op, "storefront API unreachable")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Unavailable(err, op, "failed to read storefront API response")
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return domain.Internal(err, op, "failed to parse storefront API response")
			}
		}
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var apiErr apiError
		msg := fmt.Sprintf("request rejected (status %d)", resp.StatusCode)
		if err := json.Unmarshal(respBody, &apiErr); err == nil {
			if apiErr.Message != "" {
				msg = apiErr.Message
			} else if apiErr.Error != "" {
				msg = apiErr.Error
			}
		}
		return domain.Errorf(domain.EINVALID, op, "%s", msg)
	default:
		return domain.Unavailable(
			fmt.Errorf("storefront API error (status %d): %s", resp.StatusCode, string(respBody)),
			op, "storefront API error")
	}
}

// SendOTP dispatches a one-time code via POST /auth/send-otp.
func (c *HTTPClient) SendOTP(ctx context.Context, phone string) error {
	payload := struct {
		Phone string `json:"phone"`
	}{Phone: phone}
	return c.do(ctx, "backend.send_otp", http.MethodPost, "/auth/send-otp", payload, nil)
}

// VerifyOTP confirms the code via POST /auth/verify-otp.
func (c *HTTPClient) VerifyOTP(ctx context.Context, phone, code string) error {
	payload := struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
	}{Phone: phone, OTP: code}
	return c.do(ctx, "backend.verify_otp", http.MethodPost, "/auth/verify-otp", payload, nil)
}

type couponResponse struct {
	Code        string `json:"code"`
	Type        string `json:"type"`
	Value       int64  `json:"value"`
	MaxDiscount int64  `json:"max_discount"`
	MinPurchase int64  `json:"min_purchase"`
}

// ValidateCoupon checks a code against the subtotal via POST /coupons/validate.
func (c *HTTPClient) ValidateCoupon(ctx context.Context, code string, subtotal int64) (*CouponResult, error) {
	payload := struct {
		Code     string `json:"code"`
		Subtotal int64  `json:"subtotal"`
	}{Code: code, Subtotal: subtotal}

	var resp couponResponse
	if err := c.do(ctx, "backend.validate_coupon", http.MethodPost, "/coupons/validate", payload, &resp); err != nil {
		return nil, err
	}
	return &CouponResult{
		Code:        resp.Code,
		Kind:        resp.Type,
		Value:       resp.Value,
		MaxDiscount: resp.MaxDiscount,
		MinPurchase: resp.MinPurchase,
	}, nil
}

type leadItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

type leadPayload struct {
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	District  string     `json:"district"`
	Area      string     `json:"area"`
	Address   string     `json:"address"`
	Source    string     `json:"source"`
	CartItems []leadItem `json:"cart_items"`
	CartTotal int64      `json:"cart_total"`
}

func makeLeadPayload(snap domain.LeadSnapshot) leadPayload {
	items := make([]leadItem, len(snap.Items))
	for i, line := range snap.Items {
		items[i] = leadItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
		}
	}
	return leadPayload{
		Name:      snap.Form.Name,
		Phone:     snap.Form.Phone,
		Email:     snap.Form.Email,
		District:  snap.Form.District,
		Area:      snap.Form.Area,
		Address:   snap.Form.Address,
		Source:    snap.Source,
		CartItems: items,
		CartTotal: snap.CartTotal,
	}
}

// CaptureLead creates a lead record via POST /leads/capture.
func (c *HTTPClient) CaptureLead(ctx context.Context, snap domain.LeadSnapshot) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, "backend.capture_lead", http.MethodPost, "/leads/capture", makeLeadPayload(snap), &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", domain.Errorf(domain.EINTERNAL, "backend.capture_lead", "lead capture returned no id")
	}
	return resp.ID, nil
}

// UpdateLead replaces the lead's snapshot via PUT /leads/{id}.
func (c *HTTPClient) UpdateLead(ctx context.Context, id string, snap domain.LeadSnapshot) error {
	return c.do(ctx, "backend.update_lead", http.MethodPut, "/leads/"+id, makeLeadPayload(snap), nil)
}

// ConvertLead marks a lead converted via PUT /leads/{id}.
func (c *HTTPClient) ConvertLead(ctx context.Context, id, orderID string) error {
	payload := struct {
		Status  string `json:"status"`
		OrderID string `json:"order_id"`
	}{Status: domain.LeadStatusConverted, OrderID: orderID}
	return c.do(ctx, "backend.convert_lead", http.MethodPut, "/leads/"+id, payload, nil)
}

type orderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type guestOrderPayload struct {
	Items           []orderItem     `json:"items"`
	ShippingAddress shippingAddress `json:"shipping_address"`
	Subtotal        int64           `json:"subtotal"`
	Discount        int64           `json:"discount"`
	CouponCode      string          `json:"coupon_code,omitempty"`
	DeliveryCharge  int64           `json:"delivery_charge"`
	Total           int64           `json:"total"`
	PaymentType     string          `json:"payment_type"`
	PaymentMethod   string          `json:"payment_method"`
	AdvancePaid     int64           `json:"advance_paid"`
	CODAmount       int64           `json:"cod_amount"`
	Notes           string          `json:"notes,omitempty"`
	LeadID          string          `json:"lead_id,omitempty"`
}

type shippingAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	District string `json:"district"`
	Area     string `json:"area"`
	Address  string `json:"address"`
}

// CreateGuestOrder places the order via POST /orders/guest.
func (c *HTTPClient) CreateGuestOrder(ctx context.Context, order domain.GuestOrder) (*domain.PlacedOrder, error) {
	items := make([]orderItem, len(order.Items))
	for i, line := range order.Items {
		items[i] = orderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			Size:      line.Variant.Size,
			Color:     line.Variant.Color,
		}
	}

	payload := guestOrderPayload{
		Items: items,
		ShippingAddress: shippingAddress{
			Name:     order.Shipping.Name,
			Phone:    order.Shipping.Phone,
			Email:    order.Shipping.Email,
			District: order.Shipping.District,
			Area:     order.Shipping.Area,
			Address:  order.Shipping.Address,
		},
		Subtotal:       order.Subtotal,
		Discount:       order.Discount,
		CouponCode:     order.CouponCode,
		DeliveryCharge: order.DeliveryCharge,
		Total:          order.Total,
		PaymentType:    string(order.PaymentType),
		PaymentMethod:  order.PaymentMethod,
		AdvancePaid:    order.AdvancePaid,
		CODAmount:      order.CODAmount,
		Notes:          order.Notes,
		LeadID:         order.LeadID,
	}

	var resp struct {
		ID          string `json:"_id"`
		OrderNumber string `json:"order_number"`
	}
	if err := c.do(ctx, "backend.create_order", http.MethodPost, "/orders/guest", payload, &resp); err != nil {
		return nil, err
	}
	return &domain.PlacedOrder{ID: resp.ID, OrderNumber: resp.OrderNumber}, nil
}
