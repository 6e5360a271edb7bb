package models

type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusAssigned       OrderStatus = "assigned"
	OrderStatusCollected      OrderStatus = "collected"
	OrderStatusPickedUp       OrderStatus = "picked_up"
	OrderStatusInTransit      OrderStatus = "in_transit"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"

	// OrderStatusUnknown is what an unrecognised server status maps to.
	// Rendered distinctly instead of silently borrowing the "processing" look.
	OrderStatusUnknown OrderStatus = "unknown"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
	RoleRider  Role = "rider"
)

type Provider string

const (
	ProviderEmail  Provider = "email"
	ProviderGoogle Provider = "google"
)

const (
	OrdersPageSize   = 10
	ProductsPageSize = 50
)

const (
	StatusFilterAll = "all"
)
