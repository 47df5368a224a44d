package payment

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/01moynul/suburbia-storefront/internal/models"
	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

// ErrAmountOutOfRange is returned when a total has no int64 minor-unit value.
var ErrAmountOutOfRange = errors.New("amount out of range")

// Converter turns storefront prices (USD) into the gateway's settlement
// currency. The rate is a fixed configured value, not a live feed.
type Converter struct {
	Rate     decimal.Decimal
	Currency string
}

func NewConverter(rate float64, currency string) Converter {
	return Converter{Rate: decimal.NewFromFloat(rate), Currency: currency}
}

// Convert returns total expressed in the settlement currency's major unit.
func (c Converter) Convert(total float64) decimal.Decimal {
	return decimal.NewFromFloat(total).Mul(c.Rate)
}

// ToMinorUnits returns round(total * rate * 100).
func (c Converter) ToMinorUnits(total float64) (int64, error) {
	minor := c.Convert(total).Mul(hundred).Round(0)
	if minor.Abs().GreaterThan(maxMinor) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, minor.String())
	}
	return minor.IntPart(), nil
}

// ReceiptID is the time-based receipt reference sent with every order intent.
func ReceiptID(now time.Time) string {
	return fmt.Sprintf("receipt_%d", now.UnixMilli())
}

// NewOrderIntent builds an auto-captured intent for a cart total in USD.
func NewOrderIntent(total float64, conv Converter, now time.Time) (models.OrderIntent, error) {
	amount, err := conv.ToMinorUnits(total)
	if err != nil {
		return models.OrderIntent{}, err
	}
	return models.OrderIntent{
		Amount:   amount,
		Currency: conv.Currency,
		Receipt:  ReceiptID(now),
		Capture:  true,
	}, nil
}
