// Package events announces completed orders to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/01moynul/suburbia-storefront/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

const OrderCompletedQueue = "order.completed"

// OrderCompleted is the message body published after an order record is stored.
type OrderCompleted struct {
	EventType   string                `json:"eventType"`
	OrderID     string                `json:"orderId"`
	PaymentID   string                `json:"paymentId"`
	Items       []models.ItemSnapshot `json:"items"`
	TotalAmount float64               `json:"totalAmount"`
	Timestamp   time.Time             `json:"timestamp"`
}

type Publisher interface {
	PublishOrderCompleted(ctx context.Context, rec models.OrderRecord) error
}

// Discard is used when no broker is configured.
type Discard struct{}

func (Discard) PublishOrderCompleted(context.Context, models.OrderRecord) error { return nil }

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	ch Channel
}

// NewRabbitPublisher opens a channel on conn and declares the queue.
func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return newRabbitPublisher(ch)
}

func newRabbitPublisher(ch Channel) (*RabbitPublisher, error) {
	if _, err := ch.QueueDeclare(OrderCompletedQueue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", OrderCompletedQueue, err)
	}
	return &RabbitPublisher{ch: ch}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderCompleted(ctx context.Context, rec models.OrderRecord) error {
	ev := OrderCompleted{
		EventType:   "OrderCompleted",
		OrderID:     rec.RazorpayOrderID,
		PaymentID:   rec.RazorpayPaymentID,
		Items:       rec.Items,
		TotalAmount: rec.TotalAmount,
		Timestamp:   rec.CreatedAt.UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderCompleted: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",                  // default exchange
		OrderCompletedQueue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
