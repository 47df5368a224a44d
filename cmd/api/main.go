package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/suburbia-storefront/internal/auth"
	"github.com/01moynul/suburbia-storefront/internal/cart"
	"github.com/01moynul/suburbia-storefront/internal/config"
	"github.com/01moynul/suburbia-storefront/internal/database"
	"github.com/01moynul/suburbia-storefront/internal/events"
	"github.com/01moynul/suburbia-storefront/internal/handlers"
	"github.com/01moynul/suburbia-storefront/internal/orders"
	"github.com/01moynul/suburbia-storefront/internal/payment"
	"github.com/01moynul/suburbia-storefront/internal/routes"
	"github.com/01moynul/suburbia-storefront/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded, relying on process environment")
	}
	cfg := config.Load()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. --- Credential Store (MySQL) ---
	db, err := database.OpenDB(cfg.MySQLDSN, logger)
	if err != nil {
		logger.Error("connect to primary database failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db, logger); err != nil {
		logger.Error("run migrations failed", "error", err)
		os.Exit(1)
	}

	// 2. --- Session Carts ---
	var carts cart.Store
	switch cfg.CartBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Error("connect to redis failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		carts = cart.NewRedisStore(rdb, cfg.CartTTL)
	default:
		carts = cart.NewMemoryStore()
	}
	logger.Info("cart store ready", "backend", cfg.CartBackend)

	// 3. --- Order Notifications (optional) ---
	var publisher events.Publisher = events.Discard{}
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			logger.Error("connect to broker failed", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		rp, err := events.NewRabbitPublisher(conn)
		if err != nil {
			logger.Error("open broker channel failed", "error", err)
			os.Exit(1)
		}
		defer rp.Close()
		publisher = rp
	}

	// 4. --- Order Records (MongoDB, one connection per write) ---
	orderStore := orders.NewMongoStore(func(ctx context.Context) (*mongo.Client, error) {
		return database.ConnectMongo(ctx, cfg.MongoURI)
	}, cfg.MongoDB)

	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	app := &handlers.Handlers{
		Logger:      logger,
		Gateway:     payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		Converter:   payment.NewConverter(cfg.ExchangeRate, cfg.Currency),
		KeySecret:   cfg.RazorpayKeySecret,
		PublicKeyID: cfg.PublicKeyID,
		Orders:      orderStore,
		Events:      publisher,
		Users:       users.NewRepository(db),
		Tokens:      tokens,
		Carts:       carts,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, tokens, cfg.CORSAllowOrigin, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting storefront API", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
