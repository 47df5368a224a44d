package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/01moynul/suburbia-storefront/internal/cart"
	"github.com/01moynul/suburbia-storefront/internal/events"
	"github.com/01moynul/suburbia-storefront/internal/middleware"
	"github.com/01moynul/suburbia-storefront/internal/orders"
	"github.com/01moynul/suburbia-storefront/internal/payment"
	"github.com/01moynul/suburbia-storefront/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// TokenIssuer mints bearer tokens at login.
type TokenIssuer interface {
	GenerateToken(userID int64) (string, error)
}

// Handlers holds every dependency the HTTP handlers need.
type Handlers struct {
	Logger *slog.Logger

	// Checkout
	Gateway     payment.Gateway
	Converter   payment.Converter
	KeySecret   string
	PublicKeyID string
	Orders      orders.Store
	Events      events.Publisher

	// Accounts
	Users  users.Repository
	Tokens TokenIssuer

	// Session carts
	Carts cart.Store

	Now func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handlers) logError(c *gin.Context, msg string, err error) {
	h.Logger.Error(msg,
		"error", err,
		"path", c.FullPath(),
		"request_id", c.GetString(middleware.ContextRequestID),
	)
}

// firstInvalidField returns the struct field name of the first failed
// validation rule, or "" when err is not a validation error.
func firstInvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}
