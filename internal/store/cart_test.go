package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/shopctl/internal/models"
)

func newTestCart(t *testing.T) *CartStore {
	t.Helper()
	s, err := NewCartStore(filepath.Join(t.TempDir(), "cart.json"))
	require.NoError(t, err)
	return s
}

func TestCartAddMergesQuantity(t *testing.T) {
	s := newTestCart(t)

	require.NoError(t, s.Add(models.CartItem{ProductID: "p1", Name: "Mouse", Price: decimal.NewFromInt(20), Quantity: 1}))
	require.NoError(t, s.Add(models.CartItem{ProductID: "p1", Name: "Mouse", Price: decimal.NewFromInt(20), Quantity: 2}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartUpdateAndRemove(t *testing.T) {
	s := newTestCart(t)

	require.NoError(t, s.Add(models.CartItem{ProductID: "p1", Price: decimal.NewFromInt(10), Quantity: 2}))
	require.NoError(t, s.Add(models.CartItem{ProductID: "p2", Price: decimal.NewFromInt(5), Quantity: 1}))

	require.NoError(t, s.UpdateQuantity("p1", 5))
	assert.Equal(t, 5, s.Items()[0].Quantity)

	// zero quantity removes the line
	require.NoError(t, s.UpdateQuantity("p2", 0))
	assert.Equal(t, 1, s.Len())

	assert.ErrorIs(t, s.Remove("p2"), ErrItemNotFound)
	require.NoError(t, s.Remove("p1"))
	assert.Zero(t, s.Len())
}

func TestCartSubtotal(t *testing.T) {
	s := newTestCart(t)

	require.NoError(t, s.Add(models.CartItem{ProductID: "p1", Price: decimal.RequireFromString("19.99"), Quantity: 2}))
	require.NoError(t, s.Add(models.CartItem{ProductID: "p2", Price: decimal.RequireFromString("5.50"), Quantity: 1}))

	assert.True(t, s.Subtotal().Equal(decimal.RequireFromString("45.48")), "got %s", s.Subtotal())
}

func TestCartPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")

	s1, err := NewCartStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Add(models.CartItem{ProductID: "p1", Price: decimal.NewFromInt(10), Quantity: 2}))

	s2, err := NewCartStore(path)
	require.NoError(t, err)
	require.Equal(t, 1, s2.Len())
	assert.Equal(t, "p1", s2.Items()[0].ProductID)

	require.NoError(t, s2.Clear())
	s3, err := NewCartStore(path)
	require.NoError(t, err)
	assert.Zero(t, s3.Len())
}
