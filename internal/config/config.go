package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once at startup. Secrets are passed through as-is; a
// missing value only shows up when the code that needs it runs.
type Config struct {
	Port            string
	CORSAllowOrigin string

	// Payment gateway
	RazorpayKeyID     string
	RazorpayKeySecret string
	PublicKeyID       string
	ExchangeRate      float64
	Currency          string

	// Order records (document store)
	MongoURI string
	MongoDB  string

	// Credential store
	MySQLDSN  string
	JWTSecret string
	JWTTTL    time.Duration

	// Session carts
	CartBackend   string
	RedisAddr     string
	RedisPassword string
	CartTTL       time.Duration

	// Order notifications; empty disables publishing
	AMQPURL string
}

func Load() Config {
	keyID := getenv("RAZORPAY_KEY_ID", "")

	return Config{
		Port:            getenv("PORT", "8080"),
		CORSAllowOrigin: getenv("CORS_ALLOW_ORIGIN", "http://localhost:3000"),

		RazorpayKeyID:     keyID,
		RazorpayKeySecret: getenv("RAZORPAY_KEY_SECRET", ""),
		PublicKeyID:       getenv("NEXT_PUBLIC_RAZORPAY_KEY_ID", keyID),
		ExchangeRate:      parseFloat(getenv("EXCHANGE_RATE", "83"), 83),
		Currency:          getenv("SETTLEMENT_CURRENCY", "INR"),

		MongoURI: getenv("MONGODB_URI", ""),
		MongoDB:  getenv("MONGODB_DB", "test"),

		MySQLDSN:  getenv("DB_DSN_PRIMARY", "root:root@tcp(127.0.0.1:3306)/suburbia?parseTime=true"),
		JWTSecret: getenv("JWT_SECRET", ""),
		JWTTTL:    parseDuration(getenv("JWT_TTL", "720h"), 30*24*time.Hour),

		CartBackend:   strings.ToLower(getenv("CART_BACKEND", "memory")),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		CartTTL:       parseDuration(getenv("CART_TTL", "24h"), 24*time.Hour),

		AMQPURL: getenv("AMQP_URL", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
