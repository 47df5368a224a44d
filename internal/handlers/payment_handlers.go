package handlers

import (
	"net/http"

	"github.com/01moynul/suburbia-storefront/internal/models"
	"github.com/01moynul/suburbia-storefront/internal/payment"
	"github.com/gin-gonic/gin"
)

//
// --- Checkout & Payment Handlers ---
//

// CreateOrderInput is the cart snapshot posted by the checkout page. Items are
// only counted here, never inspected.
// Field order matters: items are reported before the amount.
type CreateOrderInput struct {
	Items       []models.ItemSnapshot `json:"items" binding:"required,min=1"`
	TotalAmount float64               `json:"totalAmount" binding:"gt=0"`
}

// CreateOrder is the handler for POST /api/payment/create-order.
// It converts the USD total to the settlement currency and asks the gateway
// for an order reference.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		switch firstInvalidField(err) {
		case "Items":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid items"})
		case "TotalAmount":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total amount"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		}
		return
	}

	intent, err := payment.NewOrderIntent(input.TotalAmount, h.Converter, h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total amount"})
		return
	}

	order, err := h.Gateway.CreateOrder(c.Request.Context(), intent)
	if err != nil {
		h.logError(c, "create order failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"status":   order.Status,
	})
}

// VerifyPayment is the handler for POST /api/payment/verify.
// Only a callback whose signature matches is persisted.
//
// There is no idempotency key: re-posting the same verified payment writes a
// second record.
func (h *Handlers) VerifyPayment(c *gin.Context) {
	var input models.PaymentVerification
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !payment.VerifySignature(h.KeySecret, input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature) {
		h.Logger.Warn("payment signature mismatch",
			"order_id", input.RazorpayOrderID,
			"payment_id", input.RazorpayPaymentID,
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
		return
	}

	rec := models.NewOrderRecord(input, h.now())
	if err := h.Orders.Insert(c.Request.Context(), rec); err != nil {
		h.logError(c, "store order record failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment verification failed"})
		return
	}

	if err := h.Events.PublishOrderCompleted(c.Request.Context(), rec); err != nil {
		h.logError(c, "publish order completed failed", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment verified successfully",
		"orderId": input.RazorpayOrderID,
	})
}

// PaymentConfig is the handler for GET /api/payment/config.
// It exposes what the browser needs to open the checkout widget.
func (h *Handlers) PaymentConfig(c *gin.Context) {
	rate, _ := h.Converter.Rate.Float64()
	c.JSON(http.StatusOK, gin.H{
		"key":          h.PublicKeyID,
		"currency":     h.Converter.Currency,
		"exchangeRate": rate,
	})
}
