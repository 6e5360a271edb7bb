package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/shopctl/internal/models"
)

type fakeSource struct {
	mu          sync.Mutex
	orders      []models.Order
	profile     models.Profile
	listErr     error
	fetchCalls  int
	updateCalls int
	deleteCalls int

	// when set, the first list call blocks until the context is cancelled
	blockFirst bool
}

func (f *fakeSource) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	f.mu.Lock()
	f.fetchCalls++
	call := f.fetchCalls
	block := f.blockFirst
	orders := f.orders
	err := f.listErr
	f.mu.Unlock()

	if block && call == 1 {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return orders, err
}

func (f *fakeSource) AllOrders(ctx context.Context) ([]models.Order, error) {
	return f.OrdersByUser(ctx, "")
}

func (f *fakeSource) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			f.orders[i].Status = status
			return f.orders[i], nil
		}
	}
	return models.Order{}, errors.New("not found")
}

func (f *fakeSource) DeleteOrder(ctx context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeSource) ProfileByUID(ctx context.Context, uid string) (models.Profile, error) {
	return f.profile, nil
}

func makeOrders(n int) []models.Order {
	orders := make([]models.Order, n)
	for i := range orders {
		orders[i] = models.Order{
			OrderID: "ORD-" + string(rune('A'+i%26)) + string(rune('0'+i/26)),
			Status:  models.OrderStatusProcessing,
			Total:   decimal.NewFromInt(10),
		}
	}
	return orders
}

func TestLoadTransitionsToLoaded(t *testing.T) {
	src := &fakeSource{
		orders:  makeOrders(3),
		profile: models.Profile{UID: "u1", Role: models.RoleUser},
	}
	c := NewOrders(src, "u1")
	assert.Equal(t, PhaseIdle, c.Phase())

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Len(t, c.Visible(), 3)
	assert.Equal(t, "u1", c.Profile().UID)
}

func TestLoadError(t *testing.T) {
	src := &fakeSource{listErr: errors.New("backend down")}
	c := NewOrders(src, "u1")

	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseError, c.Phase())
	assert.Error(t, c.Err())
	assert.Empty(t, c.Visible())
}

func TestClientSideFiltersDoNotRefetch(t *testing.T) {
	orders := makeOrders(23)
	orders[0].Status = models.OrderStatusDelivered
	src := &fakeSource{orders: orders}
	c := NewOrders(src, "u1")
	require.NoError(t, c.Load(context.Background()))

	c.SetStatusFilter("delivered")
	assert.Len(t, c.Visible(), 1)

	c.SetStatusFilter(models.StatusFilterAll)
	c.SetSearch("ord-")
	c.SetPage(2)

	src.mu.Lock()
	calls := src.fetchCalls
	src.mu.Unlock()
	assert.Equal(t, 1, calls, "filter, search and page changes stay client-side")
}

func TestPagination(t *testing.T) {
	src := &fakeSource{orders: makeOrders(23)}
	c := NewOrders(src, "u1")
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, 3, c.TotalPages())
	assert.Equal(t, 1, c.Page())

	c.SetPage(3)
	assert.Equal(t, 3, c.Page())
	assert.Len(t, c.Visible(), 3)

	// out of range is a no-op
	c.SetPage(4)
	assert.Equal(t, 3, c.Page())
	c.SetPage(0)
	assert.Equal(t, 3, c.Page())
}

func TestMutatingActionsRefetch(t *testing.T) {
	src := &fakeSource{orders: makeOrders(5)}
	c := NewOrders(src, "u1")
	require.NoError(t, c.Load(context.Background()))

	target := src.orders[0].OrderID
	require.NoError(t, c.UpdateStatus(context.Background(), target, models.OrderStatusConfirmed))
	require.NoError(t, c.Delete(context.Background(), target))

	src.mu.Lock()
	defer src.mu.Unlock()
	assert.Equal(t, 1, src.updateCalls)
	assert.Equal(t, 1, src.deleteCalls)
	assert.Equal(t, 3, src.fetchCalls, "initial load plus one refetch per mutation")
}

func TestStaleFetchDiscarded(t *testing.T) {
	src := &fakeSource{orders: makeOrders(4), blockFirst: true}
	c := NewOrders(src, "u1")

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background()) }()

	// wait for the first fetch to be in flight
	deadline := time.After(2 * time.Second)
	for {
		src.mu.Lock()
		started := src.fetchCalls >= 1
		src.mu.Unlock()
		if started {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first fetch never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// the second load cancels the first; the first's late result is dropped
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, <-done)

	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Len(t, c.Visible(), 4)
}

func TestSelection(t *testing.T) {
	src := &fakeSource{orders: makeOrders(2)}
	c := NewOrders(src, "u1")
	require.NoError(t, c.Load(context.Background()))

	_, err := c.Selected()
	assert.ErrorIs(t, err, ErrNoSelection)

	id := src.orders[1].OrderID
	require.NoError(t, c.Select(id))
	got, err := c.Selected()
	require.NoError(t, err)
	assert.Equal(t, id, got.OrderID)

	assert.Error(t, c.Select("ORD-NOPE"))

	c.ClearSelection()
	_, err = c.Selected()
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestStatsSkipCancelled(t *testing.T) {
	orders := makeOrders(3)
	orders[2].Status = models.OrderStatusCancelled
	src := &fakeSource{orders: orders}
	c := NewOrders(src, "u1")
	require.NoError(t, c.Load(context.Background()))

	stats := c.Stats()
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.CountByStatus[models.OrderStatusProcessing])
	assert.Equal(t, 1, stats.CountByStatus[models.OrderStatusCancelled])
	assert.True(t, stats.TotalSpent.Equal(decimal.NewFromInt(20)), "cancelled orders excluded from spend")
}
