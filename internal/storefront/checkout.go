package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/01moynul/suburbia-storefront/internal/cart"
	"github.com/01moynul/suburbia-storefront/internal/payment"
)

const (
	MerchantName     = "Suburbia Skateboards"
	ThemeColor       = "#d9f154"
	ConfirmationPath = "/order-success"

	// VerificationFailedMessage is the alert shown when ErrVerificationFailed is returned.
	VerificationFailedMessage = "Payment verification failed. Please contact support."
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrVerificationFailed = errors.New("payment verification failed")
)

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// WidgetOptions mirrors what the hosted checkout widget is opened with.
type WidgetOptions struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OrderID     string  `json:"order_id"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
}

type Theme struct {
	Color string `json:"color"`
}

// PaymentResult is what the widget hands back once the shopper has paid.
type PaymentResult struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// Widget is the gateway's hosted payment UI.
type Widget interface {
	Open(ctx context.Context, opts WidgetOptions) (PaymentResult, error)
}

type Checkout struct {
	API     *Client
	Widget  Widget
	Prefill Prefill
}

// Pay runs one checkout for c: create order, collect payment in the widget,
// then verify. The cart is cleared only after the API accepts the payment.
func (co *Checkout) Pay(ctx context.Context, c *cart.Cart) (string, error) {
	if c.IsEmpty() {
		return "", ErrEmptyCart
	}

	cfg, err := co.API.PaymentConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load payment config: %w", err)
	}

	total := c.TotalPrice()
	order, err := co.API.CreateOrder(ctx, c.Items, total)
	if err != nil {
		return "", fmt.Errorf("initiate payment: %w", err)
	}

	conv := payment.NewConverter(cfg.ExchangeRate, cfg.Currency)
	opts := WidgetOptions{
		Key:         cfg.Key,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        MerchantName,
		Description: Description(total, conv),
		OrderID:     order.ID,
		Prefill:     co.Prefill,
		Theme:       Theme{Color: ThemeColor},
	}

	result, err := co.Widget.Open(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("payment widget: %w", err)
	}

	_, err = co.API.VerifyPayment(ctx, result, c.Items, total)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	*c = c.Clear()
	return ConfirmationPath, nil
}

// Description is the line shown in the widget, e.g.
// "Custom Skateboard Purchase - $150.00 USD (₹12450.00 INR)".
func Description(totalUSD float64, conv payment.Converter) string {
	return fmt.Sprintf("Custom Skateboard Purchase - $%.2f USD (₹%s %s)",
		totalUSD, conv.Convert(totalUSD).StringFixed(2), conv.Currency)
}
