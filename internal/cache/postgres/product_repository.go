package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shophub/shopctl/internal/models"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const createProductsTable = `
    CREATE TABLE IF NOT EXISTS product_snapshots (
        id          TEXT PRIMARY KEY,
        name        TEXT NOT NULL,
        description TEXT,
        price       NUMERIC(12,2),
        category    TEXT,
        image       TEXT,
        stock       INT,
        seller_id   TEXT,
        rating      DOUBLE PRECISION,
        created_at  TIMESTAMPTZ
    )`

func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, createProductsTable)
	return err
}

func (r *ProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE product_snapshots"); err != nil {
		return err
	}

	stmt := `
        INSERT INTO product_snapshots (
            id, name, description, price, category, image, stock,
            seller_id, rating, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, product := range products {
		_, err = tx.Exec(ctx, stmt,
			product.ID,
			product.Name,
			product.Description,
			product.Price.String(),
			product.Category,
			product.Image,
			product.Stock,
			product.SellerID,
			product.Rating,
			product.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `
        SELECT id, name, description, price::text, category, image, stock,
               seller_id, rating, created_at
        FROM product_snapshots
        ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			product models.Product
			price   string
		)
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&price,
			&product.Category,
			&product.Image,
			&product.Stock,
			&product.SellerID,
			&product.Rating,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		product.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("decoding price for %s: %w", product.ID, err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM product_snapshots").Scan(&count)
	return count, err
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE product_snapshots")
	return err
}
