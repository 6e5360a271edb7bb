package models

import "github.com/shopspring/decimal"

// CartItem lives in client-local storage only; the server never sees the
// cart until checkout snapshots it into an order.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}
