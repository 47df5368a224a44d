package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/01moynul/suburbia-storefront/internal/cart"
	"github.com/01moynul/suburbia-storefront/internal/middleware"
	"github.com/01moynul/suburbia-storefront/internal/models"
	"github.com/01moynul/suburbia-storefront/internal/payment"
	"github.com/01moynul/suburbia-storefront/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_key_secret"

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeGateway struct {
	mu      sync.Mutex
	intents []models.OrderIntent
	err     error
}

func (g *fakeGateway) CreateOrder(_ context.Context, intent models.OrderIntent) (*models.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents = append(g.intents, intent)
	if g.err != nil {
		return nil, g.err
	}
	return &models.GatewayOrder{
		ID:       "order_test_1",
		Amount:   intent.Amount,
		Currency: intent.Currency,
		Status:   "created",
	}, nil
}

type fakeOrders struct {
	mu      sync.Mutex
	records []models.OrderRecord
	err     error
}

func (o *fakeOrders) Insert(_ context.Context, rec models.OrderRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.records = append(o.records, rec)
	return nil
}

type fakeEvents struct {
	published []models.OrderRecord
	err       error
}

func (e *fakeEvents) PublishOrderCompleted(_ context.Context, rec models.OrderRecord) error {
	e.published = append(e.published, rec)
	return e.err
}

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[int64]*models.User
	nextID int64
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return users.ErrDuplicateEmail
		}
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// stubTokens issues "token-<id>" and accepts only those.
type stubTokens struct{}

func (stubTokens) GenerateToken(userID int64) (string, error) {
	return "token-" + strconv.FormatInt(userID, 10), nil
}

func (stubTokens) ValidateToken(token string) (int64, error) {
	raw, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return 0, errors.New("invalid token")
	}
	return strconv.ParseInt(raw, 10, 64)
}

type testEnv struct {
	router  *gin.Engine
	gateway *fakeGateway
	orders  *fakeOrders
	events  *fakeEvents
	users   *fakeUsers
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		gateway: &fakeGateway{},
		orders:  &fakeOrders{},
		events:  &fakeEvents{},
		users:   newFakeUsers(),
	}
	h := &Handlers{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Gateway:     env.gateway,
		Converter:   payment.NewConverter(83, "INR"),
		KeySecret:   testSecret,
		PublicKeyID: "rzp_test_public",
		Orders:      env.orders,
		Events:      env.events,
		Users:       env.users,
		Tokens:      stubTokens{},
		Carts:       cart.NewMemoryStore(),
		Now:         func() time.Time { return fixedNow },
	}

	r := gin.New()
	r.POST("/payment/create-order", h.CreateOrder)
	r.POST("/payment/verify", h.VerifyPayment)
	r.GET("/payment/config", h.PaymentConfig)
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(stubTokens{}))
	protected.GET("/auth/me", h.Me)
	protected.GET("/cart", h.GetCart)
	protected.POST("/cart/items", h.AddToCart)
	protected.PATCH("/cart/items/:id", h.UpdateCartItem)
	protected.DELETE("/cart/items/:id", h.DeleteCartItem)
	protected.DELETE("/cart", h.ClearCart)

	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

// sampleSnapshot is sampleItem as it looks after a JSON round trip.
func sampleSnapshot() models.ItemSnapshot {
	return models.ItemSnapshot{
		"id":       "w1-d1-t1-b1",
		"wheel":    map[string]any{"uid": "w1"},
		"deck":     map[string]any{"uid": "d1"},
		"truck":    map[string]any{"uid": "t1"},
		"bolt":     map[string]any{"uid": "b1"},
		"quantity": 1.0,
		"price":    150.0,
	}
}

func sampleItem() models.CartItem {
	return models.CartItem{
		ID:       "w1-d1-t1-b1",
		Wheel:    models.Component{UID: "w1"},
		Deck:     models.Component{UID: "d1"},
		Truck:    models.Component{UID: "t1"},
		Bolt:     models.Component{UID: "b1"},
		Quantity: 1,
		Price:    150,
	}
}
