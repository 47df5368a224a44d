package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "RAZORPAY_KEY_ID", "NEXT_PUBLIC_RAZORPAY_KEY_ID", "EXCHANGE_RATE",
		"SETTLEMENT_CURRENCY", "MONGODB_DB", "JWT_TTL", "CART_BACKEND", "CART_TTL", "AMQP_URL",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 83.0, cfg.ExchangeRate)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, "test", cfg.MongoDB)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "memory", cfg.CartBackend)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL)
	assert.Empty(t, cfg.AMQPURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("NEXT_PUBLIC_RAZORPAY_KEY_ID", "")
	t.Setenv("EXCHANGE_RATE", "84.5")
	t.Setenv("CART_BACKEND", "Redis")
	t.Setenv("JWT_TTL", "1h")

	cfg := Load()

	assert.Equal(t, "rzp_test_key", cfg.PublicKeyID, "public key falls back to the server key id")
	assert.Equal(t, 84.5, cfg.ExchangeRate)
	assert.Equal(t, "redis", cfg.CartBackend)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("EXCHANGE_RATE", "-1")
	t.Setenv("CART_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 83.0, cfg.ExchangeRate)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL)
}
