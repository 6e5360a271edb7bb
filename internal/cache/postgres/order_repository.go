package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shophub/shopctl/internal/models"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const createOrdersTable = `
    CREATE TABLE IF NOT EXISTS order_snapshots (
        order_id       TEXT PRIMARY KEY,
        user_id        TEXT NOT NULL,
        status         TEXT NOT NULL,
        payment_status TEXT NOT NULL,
        payment_method TEXT,
        tracking_id    TEXT,
        subtotal       NUMERIC(12,2),
        shipping_cost  NUMERIC(12,2),
        tax            NUMERIC(12,2),
        total          NUMERIC(12,2),
        items          JSONB,
        address        JSONB,
        timeline       JSONB,
        created_at     TIMESTAMPTZ,
        updated_at     TIMESTAMPTZ
    )`

func (r *OrderRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, createOrdersTable)
	return err
}

// ReplaceAll swaps the snapshot wholesale inside one transaction, so readers
// never observe a half-synced state.
func (r *OrderRepository) ReplaceAll(ctx context.Context, orders []models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE order_snapshots"); err != nil {
		return err
	}

	stmt := `
        INSERT INTO order_snapshots (
            order_id, user_id, status, payment_status, payment_method,
            tracking_id, subtotal, shipping_cost, tax, total,
            items, address, timeline, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
        )`

	for _, order := range orders {
		items, err := json.Marshal(order.Items)
		if err != nil {
			return fmt.Errorf("encoding items for %s: %w", order.OrderID, err)
		}
		address, err := json.Marshal(order.ShippingAddress)
		if err != nil {
			return fmt.Errorf("encoding address for %s: %w", order.OrderID, err)
		}
		timeline, err := json.Marshal(order.Timeline)
		if err != nil {
			return fmt.Errorf("encoding timeline for %s: %w", order.OrderID, err)
		}

		_, err = tx.Exec(ctx, stmt,
			order.OrderID,
			order.UserID,
			string(order.Status),
			string(order.PaymentStatus),
			order.PaymentMethod,
			order.TrackingID,
			order.Subtotal.String(),
			order.ShippingCost.String(),
			order.Tax.String(),
			order.Total.String(),
			items,
			address,
			timeline,
			order.CreatedAt,
			order.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
        SELECT
            order_id, user_id, status, payment_status, payment_method,
            tracking_id, subtotal::text, shipping_cost::text, tax::text,
            total::text, items, address, timeline, created_at, updated_at
        FROM order_snapshots
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var (
			order                      models.Order
			status, paymentStatus      string
			subtotal, shipping         string
			tax, total                 string
			items, address, timeline   []byte
		)
		err := rows.Scan(
			&order.OrderID,
			&order.UserID,
			&status,
			&paymentStatus,
			&order.PaymentMethod,
			&order.TrackingID,
			&subtotal,
			&shipping,
			&tax,
			&total,
			&items,
			&address,
			&timeline,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		order.Status = models.OrderStatus(status)
		order.PaymentStatus = models.PaymentStatus(paymentStatus)
		if err := decodeMoney(&order, subtotal, shipping, tax, total); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("decoding items for %s: %w", order.OrderID, err)
		}
		if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decoding address for %s: %w", order.OrderID, err)
		}
		if err := json.Unmarshal(timeline, &order.Timeline); err != nil {
			return nil, fmt.Errorf("decoding timeline for %s: %w", order.OrderID, err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM order_snapshots").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE order_snapshots")
	return err
}
