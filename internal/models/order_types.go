package models

import "time"

// OrderStatus is the lifecycle state of a persisted order record.
type OrderStatus string

// StatusCompleted is the only state this system writes; records are created
// once per verified payment and never updated afterwards.
const StatusCompleted OrderStatus = "completed"

// OrderIntent is the pre-payment request sent to the gateway.
// Amount is in the smallest unit of Currency (paise for INR).
type OrderIntent struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Capture  bool   `json:"payment_capture"`
}

// GatewayOrder is the gateway's reply to an order intent.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// ItemSnapshot is one cart line exactly as the storefront sent it. It is kept
// opaque so that every field, including nested media objects and fields this
// service does not know about, reaches the order record unchanged.
type ItemSnapshot map[string]any

// PaymentVerification is the payload posted back after the checkout widget completes.
type PaymentVerification struct {
	RazorpayOrderID   string         `json:"razorpay_order_id"`
	RazorpayPaymentID string         `json:"razorpay_payment_id"`
	RazorpaySignature string         `json:"razorpay_signature"`
	Items             []ItemSnapshot `json:"items"`
	TotalAmount       float64        `json:"totalAmount"`
}

// OrderRecord is the document written to the "orders" collection.
type OrderRecord struct {
	RazorpayOrderID   string         `json:"razorpay_order_id" bson:"razorpay_order_id"`
	RazorpayPaymentID string         `json:"razorpay_payment_id" bson:"razorpay_payment_id"`
	RazorpaySignature string         `json:"razorpay_signature" bson:"razorpay_signature"`
	Items             []ItemSnapshot `json:"items" bson:"items"`
	TotalAmount       float64        `json:"totalAmount" bson:"totalAmount"`
	Status            OrderStatus    `json:"status" bson:"status"`
	CreatedAt         time.Time      `json:"createdAt" bson:"createdAt"`
}

// NewOrderRecord builds the completed record for a verified payment.
func NewOrderRecord(v PaymentVerification, now time.Time) OrderRecord {
	return OrderRecord{
		RazorpayOrderID:   v.RazorpayOrderID,
		RazorpayPaymentID: v.RazorpayPaymentID,
		RazorpaySignature: v.RazorpaySignature,
		Items:             v.Items,
		TotalAmount:       v.TotalAmount,
		Status:            StatusCompleted,
		CreatedAt:         now,
	}
}
