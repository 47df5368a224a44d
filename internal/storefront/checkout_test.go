package storefront

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/01moynul/suburbia-storefront/internal/cart"
	"github.com/01moynul/suburbia-storefront/internal/events"
	"github.com/01moynul/suburbia-storefront/internal/handlers"
	"github.com/01moynul/suburbia-storefront/internal/models"
	"github.com/01moynul/suburbia-storefront/internal/payment"
	"github.com/01moynul/suburbia-storefront/internal/routes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keySecret = "shop_secret"

type stubGateway struct{}

func (stubGateway) CreateOrder(_ context.Context, intent models.OrderIntent) (*models.GatewayOrder, error) {
	return &models.GatewayOrder{ID: "order_42", Amount: intent.Amount, Currency: intent.Currency, Status: "created"}, nil
}

type memOrders struct {
	mu      sync.Mutex
	records []models.OrderRecord
}

func (m *memOrders) Insert(_ context.Context, rec models.OrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

type noTokens struct{}

func (noTokens) ValidateToken(string) (int64, error) { return 0, errors.New("unused") }

// fakeWidget plays the shopper completing payment. It signs with secret, so
// a wrong secret simulates a tampered callback.
type fakeWidget struct {
	secret string
	err    error
	opened []WidgetOptions
}

func (w *fakeWidget) Open(_ context.Context, opts WidgetOptions) (PaymentResult, error) {
	w.opened = append(w.opened, opts)
	if w.err != nil {
		return PaymentResult{}, w.err
	}
	return PaymentResult{
		RazorpayOrderID:   opts.OrderID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: payment.Sign(w.secret, opts.OrderID, "pay_1"),
	}, nil
}

func newAPI(t *testing.T) (*Client, *memOrders) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := &memOrders{}
	h := &handlers.Handlers{
		Logger:      logger,
		Gateway:     stubGateway{},
		Converter:   payment.NewConverter(83, "INR"),
		KeySecret:   keySecret,
		PublicKeyID: "rzp_test_pub",
		Orders:      store,
		Events:      events.Discard{},
		Carts:       cart.NewMemoryStore(),
	}
	srv := httptest.NewServer(routes.SetupRouter(h, noTokens{}, "*", logger))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)
	return client, store
}

func boardCart() *cart.Cart {
	c := cart.Cart{}.Add(models.Selection{
		Wheel: models.Component{UID: "w"},
		Deck:  models.Component{UID: "d"},
		Truck: models.Component{UID: "t"},
		Bolt:  models.Component{UID: "b"},
		Price: 150,
	})
	return &c
}

func TestPay_Success(t *testing.T) {
	api, store := newAPI(t)
	widget := &fakeWidget{secret: keySecret}
	co := &Checkout{API: api, Widget: widget}
	c := boardCart()

	next, err := co.Pay(context.Background(), c)

	require.NoError(t, err)
	assert.Equal(t, ConfirmationPath, next)
	assert.True(t, c.IsEmpty())

	require.Len(t, widget.opened, 1)
	opts := widget.opened[0]
	assert.Equal(t, "rzp_test_pub", opts.Key)
	assert.Equal(t, int64(1245000), opts.Amount)
	assert.Equal(t, "INR", opts.Currency)
	assert.Equal(t, "order_42", opts.OrderID)
	assert.Equal(t, MerchantName, opts.Name)
	assert.Equal(t, ThemeColor, opts.Theme.Color)
	assert.Equal(t, "Custom Skateboard Purchase - $150.00 USD (₹12450.00 INR)", opts.Description)

	require.Len(t, store.records, 1)
	assert.Equal(t, models.StatusCompleted, store.records[0].Status)
	assert.Equal(t, 150.0, store.records[0].TotalAmount)
	require.Len(t, store.records[0].Items, 1)
	assert.Equal(t, "w-d-t-b", store.records[0].Items[0]["id"])
	assert.Equal(t, map[string]any{"uid": "w"}, store.records[0].Items[0]["wheel"])
}

func TestPay_VerificationFailureKeepsCart(t *testing.T) {
	api, store := newAPI(t)
	co := &Checkout{API: api, Widget: &fakeWidget{secret: "wrong"}}
	c := boardCart()

	_, err := co.Pay(context.Background(), c)

	require.ErrorIs(t, err, ErrVerificationFailed)
	assert.Equal(t, "payment verification failed", ErrVerificationFailed.Error())
	assert.Equal(t, "Payment verification failed. Please contact support.", VerificationFailedMessage)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Payment verification failed", apiErr.Message)
	assert.Equal(t, 1, c.TotalItems())
	assert.Empty(t, store.records)
}

func TestPay_EmptyCart(t *testing.T) {
	api, _ := newAPI(t)
	widget := &fakeWidget{secret: keySecret}
	co := &Checkout{API: api, Widget: widget}

	_, err := co.Pay(context.Background(), &cart.Cart{})

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, widget.opened)
}

func TestPay_WidgetDismissed(t *testing.T) {
	api, store := newAPI(t)
	co := &Checkout{API: api, Widget: &fakeWidget{err: errors.New("closed by shopper")}}
	c := boardCart()

	_, err := co.Pay(context.Background(), c)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVerificationFailed)
	assert.False(t, c.IsEmpty())
	assert.Empty(t, store.records)
}

func TestClient_CreateOrderRejected(t *testing.T) {
	api, _ := newAPI(t)

	_, err := api.CreateOrder(context.Background(), nil, 10)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid items", apiErr.Message)
}

func TestDescription(t *testing.T) {
	conv := payment.NewConverter(83, "INR")

	assert.Equal(t, "Custom Skateboard Purchase - $19.99 USD (₹1659.17 INR)", Description(19.99, conv))
}
