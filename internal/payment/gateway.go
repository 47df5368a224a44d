package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/01moynul/suburbia-storefront/internal/models"
	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway mints order references at the payment provider.
type Gateway interface {
	CreateOrder(ctx context.Context, intent models.OrderIntent) (*models.GatewayOrder, error)
}

// OrderCreator is the slice of the Razorpay SDK's order resource we use.
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway is shared for the lifetime of the process.
type RazorpayGateway struct {
	orders OrderCreator
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	return &RazorpayGateway{orders: client.Order}
}

// NewGatewayWithOrders wires a gateway around any order resource.
func NewGatewayWithOrders(orders OrderCreator) *RazorpayGateway {
	return &RazorpayGateway{orders: orders}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, intent models.OrderIntent) (*models.GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	capture := 0
	if intent.Capture {
		capture = 1
	}
	data := map[string]interface{}{
		"amount":          intent.Amount,
		"currency":        intent.Currency,
		"receipt":         intent.Receipt,
		"payment_capture": capture,
	}

	body, err := g.orders.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	return decodeOrder(body)
}

func decodeOrder(body map[string]interface{}) (*models.GatewayOrder, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, errors.New("razorpay create order: response has no id")
	}
	amount, err := toInt64(body["amount"])
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: amount: %w", err)
	}
	currency, _ := body["currency"].(string)
	status, _ := body["status"].(string)

	return &models.GatewayOrder{
		ID:       id,
		Amount:   amount,
		Currency: currency,
		Status:   status,
	}, nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
