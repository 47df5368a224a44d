// Package storefront is the browser-side half of checkout: a typed client for
// the payment API and the handoff to the gateway's hosted widget.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/01moynul/suburbia-storefront/internal/models"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
}

// PaymentConfig is what the checkout page needs before it can open the widget.
type PaymentConfig struct {
	Key          string  `json:"key"`
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchangeRate"`
}

// VerifyResult is the body of a successful verify call.
type VerifyResult struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

type createOrderRequest struct {
	Items       []models.CartItem `json:"items"`
	TotalAmount float64           `json:"totalAmount"`
}

type verifyRequest struct {
	PaymentResult
	Items       []models.CartItem `json:"items"`
	TotalAmount float64           `json:"totalAmount"`
}

type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: u, HTTP: httpClient}, nil
}

func (c *Client) PaymentConfig(ctx context.Context) (*PaymentConfig, error) {
	var out PaymentConfig
	if err := c.do(ctx, http.MethodGet, "/api/payment/config", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder asks the API for a gateway order covering items.
func (c *Client) CreateOrder(ctx context.Context, items []models.CartItem, totalAmount float64) (*models.GatewayOrder, error) {
	var out models.GatewayOrder
	req := createOrderRequest{Items: items, TotalAmount: totalAmount}
	if err := c.do(ctx, http.MethodPost, "/api/payment/create-order", req, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("create order: response has no id")
	}
	return &out, nil
}

// VerifyPayment posts the widget result together with the cart it paid for.
func (c *Client) VerifyPayment(ctx context.Context, result PaymentResult, items []models.CartItem, totalAmount float64) (*VerifyResult, error) {
	var out VerifyResult
	req := verifyRequest{PaymentResult: result, Items: items, TotalAmount: totalAmount}
	if err := c.do(ctx, http.MethodPost, "/api/payment/verify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	u := c.BaseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
