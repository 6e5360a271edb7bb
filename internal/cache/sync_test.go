package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/shopctl/internal/models"
)

type memOrderCache struct {
	orders []models.Order
	err    error
}

func (m *memOrderCache) ReplaceAll(_ context.Context, orders []models.Order) error {
	if m.err != nil {
		return m.err
	}
	m.orders = orders
	return nil
}
func (m *memOrderCache) GetAll(context.Context) ([]models.Order, error) { return m.orders, nil }
func (m *memOrderCache) Count(context.Context) (int, error)            { return len(m.orders), nil }
func (m *memOrderCache) DeleteAll(context.Context) error               { m.orders = nil; return nil }

type memProductCache struct {
	products []models.Product
}

func (m *memProductCache) ReplaceAll(_ context.Context, products []models.Product) error {
	m.products = products
	return nil
}
func (m *memProductCache) GetAll(context.Context) ([]models.Product, error) { return m.products, nil }
func (m *memProductCache) Count(context.Context) (int, error)               { return len(m.products), nil }
func (m *memProductCache) DeleteAll(context.Context) error                  { m.products = nil; return nil }

type stubSource struct {
	userOrders []models.Order
	allOrders  []models.Order
	products   []models.Product
}

func (s *stubSource) OrdersByUser(context.Context, string) ([]models.Order, error) {
	return s.userOrders, nil
}
func (s *stubSource) AllOrders(context.Context) ([]models.Order, error) { return s.allOrders, nil }
func (s *stubSource) Products(context.Context) ([]models.Product, error) {
	return s.products, nil
}

func TestSyncUserScope(t *testing.T) {
	src := &stubSource{
		userOrders: []models.Order{{OrderID: "ORD-1"}, {OrderID: "ORD-2"}},
		allOrders:  []models.Order{{OrderID: "ORD-1"}, {OrderID: "ORD-2"}, {OrderID: "ORD-3"}},
		products:   []models.Product{{ID: "p1"}},
	}
	orders := &memOrderCache{}
	products := &memProductCache{}

	res, err := NewSyncer(src, orders, products).Sync(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Orders: 2, Products: 1}, res)
	assert.Len(t, orders.orders, 2)
}

func TestSyncAdminScope(t *testing.T) {
	src := &stubSource{
		allOrders: []models.Order{{OrderID: "ORD-1"}, {OrderID: "ORD-2"}, {OrderID: "ORD-3"}},
	}
	orders := &memOrderCache{}
	products := &memProductCache{}

	res, err := NewSyncer(src, orders, products, WithAllOrders()).Sync(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Orders)
}

func TestSyncStoreFailure(t *testing.T) {
	src := &stubSource{userOrders: []models.Order{{OrderID: "ORD-1"}}}
	orders := &memOrderCache{err: errors.New("disk full")}

	_, err := NewSyncer(src, orders, &memProductCache{}).Sync(context.Background(), "u1")
	assert.Error(t, err)
}
