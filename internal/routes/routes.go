package routes

import (
	"log/slog"
	"net/http"

	"github.com/01moynul/suburbia-storefront/internal/handlers"
	"github.com/01moynul/suburbia-storefront/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware lets the storefront origin call the API from the browser.
func CORSMiddleware(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-Id")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE, PATCH")

		// Preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, tokens middleware.TokenValidator, allowOrigin string, logger *slog.Logger) *gin.Engine {
	router := gin.New()

	// CORS runs first so preflights never reach auth.
	router.Use(
		CORSMiddleware(allowOrigin),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
	)

	api := router.Group("/api")
	{
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Checkout (Public) ---
		pay := api.Group("/payment")
		{
			pay.POST("/create-order", h.CreateOrder)
			pay.POST("/verify", h.VerifyPayment)
			pay.GET("/config", h.PaymentConfig)
		}

		// --- Auth (Public) ---
		api.POST("/auth/signup", h.Signup)
		api.POST("/auth/login", h.Login)

		// --- Protected Routes (Login Required) ---
		auth := api.Group("/")
		auth.Use(middleware.AuthMiddleware(tokens))
		{
			auth.GET("/auth/me", h.Me)

			auth.GET("/cart", h.GetCart)
			auth.POST("/cart/items", h.AddToCart)
			auth.PATCH("/cart/items/:id", h.UpdateCartItem)
			auth.DELETE("/cart/items/:id", h.DeleteCartItem)
			auth.DELETE("/cart", h.ClearCart)
		}
	}

	return router
}
