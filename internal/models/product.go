package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Image       string          `json:"image,omitempty"`
	Stock       int             `json:"stock"`
	SellerID    string          `json:"sellerId,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
