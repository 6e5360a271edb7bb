package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shophub/shopctl/internal/models"
)

// Source is the slice of the API client the syncer pulls from.
type Source interface {
	OrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	AllOrders(ctx context.Context) ([]models.Order, error)
	Products(ctx context.Context) ([]models.Product, error)
}

type SyncResult struct {
	Orders   int
	Products int
}

type Syncer struct {
	source   Source
	orders   OrderCache
	products ProductCache
	logger   *slog.Logger
	allScope bool
}

type SyncerOption func(*Syncer)

// WithAllOrders mirrors every order instead of the caller's; admin/seller.
func WithAllOrders() SyncerOption {
	return func(s *Syncer) { s.allScope = true }
}

func WithSyncLogger(logger *slog.Logger) SyncerOption {
	return func(s *Syncer) { s.logger = logger }
}

func NewSyncer(source Source, orders OrderCache, products ProductCache, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		source:   source,
		orders:   orders,
		products: products,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync replaces both snapshots from the live API.
func (s *Syncer) Sync(ctx context.Context, userID string) (SyncResult, error) {
	var (
		orders []models.Order
		err    error
	)
	if s.allScope {
		orders, err = s.source.AllOrders(ctx)
	} else {
		orders, err = s.source.OrdersByUser(ctx, userID)
	}
	if err != nil {
		return SyncResult{}, fmt.Errorf("cache: fetching orders: %w", err)
	}
	if err := s.orders.ReplaceAll(ctx, orders); err != nil {
		return SyncResult{}, fmt.Errorf("cache: storing orders: %w", err)
	}
	s.logger.Info("order snapshot replaced", "count", len(orders))

	products, err := s.source.Products(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("cache: fetching products: %w", err)
	}
	if err := s.products.ReplaceAll(ctx, products); err != nil {
		return SyncResult{}, fmt.Errorf("cache: storing products: %w", err)
	}
	s.logger.Info("product snapshot replaced", "count", len(products))

	return SyncResult{Orders: len(orders), Products: len(products)}, nil
}
