package checkout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/shopctl/internal/api"
	"github.com/shophub/shopctl/internal/checkout"
	"github.com/shophub/shopctl/internal/demo"
	"github.com/shophub/shopctl/internal/models"
)

type memCart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func (c *memCart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem(nil), c.items...)
}

func (c *memCart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return nil
}

func cartWith(items ...models.CartItem) *memCart {
	return &memCart{items: items}
}

func TestCheckoutCardHappyPath(t *testing.T) {
	server := demo.NewServer(nil)
	uid := server.SeedDefault()
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	cart := cartWith(models.CartItem{
		ProductID: "p1", Name: "Mouse", Price: decimal.RequireFromString("20.00"), Quantity: 1,
	})
	client := api.New(ts.URL)
	o := checkout.New(client, cart, nil)

	result, err := o.Run(context.Background(), uid, models.ShippingAddress{City: "Dhaka"}, "card")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Order.OrderID)
	for _, step := range result.Steps {
		assert.Equal(t, checkout.StepCompleted, step.Status, step.Name)
	}
	assert.Empty(t, cart.Items(), "cart cleared after successful checkout")

	confirmed, err := client.Order(context.Background(), result.Order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, confirmed.PaymentStatus)
}

func TestCheckoutCODSkipsPaymentSteps(t *testing.T) {
	server := demo.NewServer(nil)
	uid := server.SeedDefault()
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	cart := cartWith(models.CartItem{ProductID: "p1", Price: decimal.NewFromInt(10), Quantity: 1})
	o := checkout.New(api.New(ts.URL), cart, nil)

	result, err := o.Run(context.Background(), uid, models.ShippingAddress{}, checkout.PaymentMethodCOD)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepCompleted, result.Steps[0].Status)
	assert.Equal(t, checkout.StepSkipped, result.Steps[1].Status)
	assert.Equal(t, checkout.StepSkipped, result.Steps[2].Status)
	assert.Empty(t, cart.Items())
}

func TestCheckoutEmptyCart(t *testing.T) {
	o := checkout.New(api.New("http://unused"), cartWith(), nil)
	_, err := o.Run(context.Background(), "u1", models.ShippingAddress{}, "card")
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
}

func TestCheckoutPaymentFailureCompensates(t *testing.T) {
	var deleted atomic.Bool
	r := chi.NewRouter()
	r.Post("/orders", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"order":   map[string]any{"orderId": "ORD-TEST"},
		})
	})
	r.Post("/payments/create-intent", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":       true,
			"paymentIntent": map[string]any{"id": "pi_1"},
		})
	})
	r.Post("/payments/confirm", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "card declined"})
	})
	r.Delete("/orders/ORD-TEST", func(w http.ResponseWriter, _ *http.Request) {
		deleted.Store(true)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	cart := cartWith(models.CartItem{ProductID: "p1", Price: decimal.NewFromInt(10), Quantity: 1})
	o := checkout.New(api.New(ts.URL, api.WithRetry(0, 0)), cart, nil)

	result, err := o.Run(context.Background(), "u1", models.ShippingAddress{}, "card")
	require.Error(t, err)
	assert.Equal(t, checkout.StepFailed, result.Steps[2].Status)
	assert.True(t, deleted.Load(), "created order rolled back after payment failure")
	assert.Len(t, cart.Items(), 1, "cart left intact on aborted checkout")
}
