package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/shopctl/internal/api"
	"github.com/shophub/shopctl/internal/demo"
	"github.com/shophub/shopctl/internal/models"
)

func newDemoClient(t *testing.T) (*api.Client, string) {
	t.Helper()
	server := demo.NewServer(nil)
	uid := server.SeedDefault()
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return api.New(ts.URL, api.WithRetry(0, 0)), uid
}

func TestOrdersByUser(t *testing.T) {
	client, uid := newDemoClient(t)

	orders, err := client.OrdersByUser(context.Background(), uid)
	require.NoError(t, err)
	assert.Len(t, orders, 23)
	for _, order := range orders {
		assert.Equal(t, uid, order.UserID)
		assert.NotEmpty(t, order.OrderID)
	}
}

func TestOrderLookupAndTracking(t *testing.T) {
	client, uid := newDemoClient(t)

	orders, err := client.OrdersByUser(context.Background(), uid)
	require.NoError(t, err)
	want := orders[0]

	got, err := client.Order(context.Background(), want.OrderID)
	require.NoError(t, err)
	assert.Equal(t, want.OrderID, got.OrderID)

	byTracking, err := client.OrderByTracking(context.Background(), want.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, want.OrderID, byTracking.OrderID)

	_, err = client.Order(context.Background(), "ORD-missing")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestCreateOrderAndPaymentFlow(t *testing.T) {
	client, uid := newDemoClient(t)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, api.CreateOrderRequest{
		UserID: uid,
		Items: []models.CartItem{
			{ProductID: "p1", Name: "Mouse", Price: decimal.RequireFromString("20.00"), Quantity: 2},
		},
		ShippingAddress: models.ShippingAddress{City: "Dhaka", Country: "BD"},
		PaymentMethod:   "card",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	// 40 subtotal + 5 shipping + 2 tax
	assert.True(t, order.Total.Equal(decimal.RequireFromString("47.00")), "got %s", order.Total)

	intent, err := client.CreatePaymentIntent(ctx, order.OrderID)
	require.NoError(t, err)
	assert.NotEmpty(t, intent.ClientSecret)

	payment, err := client.ConfirmPayment(ctx, order.OrderID, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, "succeeded", payment.Status)
	assert.NotEmpty(t, payment.TransactionID)

	confirmed, err := client.Order(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, confirmed.PaymentStatus)

	record, err := client.PaymentByOrder(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, payment.TransactionID, record.TransactionID)
}

func TestApplicationErrorSurfacesAsAPIError(t *testing.T) {
	client, uid := newDemoClient(t)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, api.CreateOrderRequest{
		UserID:        uid,
		Items:         []models.CartItem{{ProductID: "p1", Price: decimal.NewFromInt(5), Quantity: 1}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	_, err = client.ConfirmPayment(ctx, order.OrderID, "pi_bogus")
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "intent")
}

func TestUpdateStatusAndDelete(t *testing.T) {
	client, uid := newDemoClient(t)
	ctx := context.Background()

	orders, err := client.OrdersByUser(ctx, uid)
	require.NoError(t, err)
	target := orders[0].OrderID

	updated, err := client.UpdateOrderStatus(ctx, target, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	assert.Equal(t, models.OrderStatusDelivered, updated.Timeline[len(updated.Timeline)-1].Status)

	require.NoError(t, client.DeleteOrder(ctx, target))
	_, err = client.Order(ctx, target)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestRetryOnTransportFailure(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// drop the connection to force a transport error
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"orders":[]}`))
	}))
	defer ts.Close()

	client := api.New(ts.URL, api.WithRetry(2, time.Millisecond))
	orders, err := client.OrdersByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, int32(2), calls.Load())
}

func TestContextCancellationIsFinal(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	client := api.New(ts.URL, api.WithRetry(3, time.Millisecond))
	_, err := client.OrdersByUser(ctx, "u1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled))
	assert.Equal(t, int32(1), calls.Load(), "cancelled requests are not retried")
}
