// Package cache mirrors the caller's orders and the product catalog into a
// local Postgres schema for offline dashboards and reporting. The snapshot
// is a read copy; the ShopHub backend stays the owner of every record.
package cache

import (
	"context"

	"github.com/shophub/shopctl/internal/models"
)

type OrderCache interface {
	ReplaceAll(ctx context.Context, orders []models.Order) error
	GetAll(ctx context.Context) ([]models.Order, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type ProductCache interface {
	ReplaceAll(ctx context.Context, products []models.Product) error
	GetAll(ctx context.Context) ([]models.Product, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
