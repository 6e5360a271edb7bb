// Package orderview holds the pure view-state derivations shared by the
// order list, the admin orders table and the order tracking views: status
// badges, filter/search predicates, pagination and timeline derivation.
package orderview

import "github.com/shophub/shopctl/internal/models"

type Badge struct {
	Label string
	Icon  string
	Color string
}

var badges = map[models.OrderStatus]Badge{
	models.OrderStatusProcessing:     {Label: "Processing", Icon: "clock", Color: "yellow"},
	models.OrderStatusConfirmed:      {Label: "Confirmed", Icon: "check-circle", Color: "blue"},
	models.OrderStatusAssigned:       {Label: "Rider Assigned", Icon: "user-check", Color: "indigo"},
	models.OrderStatusCollected:      {Label: "Collected", Icon: "package", Color: "purple"},
	models.OrderStatusPickedUp:       {Label: "Picked Up", Icon: "package", Color: "purple"},
	models.OrderStatusInTransit:      {Label: "In Transit", Icon: "truck", Color: "orange"},
	models.OrderStatusShipped:        {Label: "Shipped", Icon: "truck", Color: "orange"},
	models.OrderStatusOutForDelivery: {Label: "Out for Delivery", Icon: "truck", Color: "orange"},
	models.OrderStatusDelivered:      {Label: "Delivered", Icon: "check-badge", Color: "green"},
	models.OrderStatusCancelled:      {Label: "Cancelled", Icon: "x-circle", Color: "red"},
}

var unknownBadge = Badge{Label: "Unknown", Icon: "question-mark", Color: "gray"}

// BadgeFor maps an order status to its display badge. Statuses the client
// does not recognise get a distinct "unknown" badge rather than borrowing
// the processing one; callers should flag them (see Known).
func BadgeFor(status models.OrderStatus) Badge {
	if b, ok := badges[status]; ok {
		return b
	}
	return unknownBadge
}

// Known reports whether the status has a badge mapping.
func Known(status models.OrderStatus) bool {
	_, ok := badges[status]
	return ok
}
