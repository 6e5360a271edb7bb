package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID         string          `json:"orderId"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	PaymentMethod   string          `json:"paymentMethod"`
	TrackingID      string          `json:"trackingId,omitempty"`
	Rider           *Rider          `json:"rider,omitempty"`
	Timeline        []TimelineEntry `json:"timeline"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

type ShippingAddress struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	District string `json:"district"`
	Division string `json:"division"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

type Rider struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

type TimelineEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
	Location  string      `json:"location,omitempty"`
}

// OrderStats is the aggregate view the dashboards render: overall totals
// plus a per-status breakdown recomputed by scanning the full collection.
type OrderStats struct {
	TotalOrders   int                 `json:"totalOrders"`
	TotalSpent    decimal.Decimal     `json:"totalSpent"`
	CountByStatus map[OrderStatus]int `json:"countByStatus"`
}
