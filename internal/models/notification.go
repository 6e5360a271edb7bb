package models

import "time"

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

const (
	NotifyOrderPlaced    = "order_placed"
	NotifyOrderConfirmed = "order_confirmed"
	NotifyOrderAssigned  = "order_assigned"
	NotifyOrderPickedUp  = "order_picked_up"
	NotifyOrderInTransit = "order_in_transit"
	NotifyOrderDelivered = "order_delivered"
	NotifyOrderCancelled = "order_cancelled"
	NotifyPaymentSuccess = "payment_success"
	NotifyPaymentFailed  = "payment_failed"
	NotifyRefundIssued   = "refund_issued"
	NotifyNewPromotion   = "new_promotion"
	NotifyPriceDrop      = "price_drop"
	NotifyBackInStock    = "back_in_stock"
	NotifyAccountUpdate  = "account_update"
	NotifySystemAlert    = "system_alert"
)

// Notification is owned by the external notification service; the client
// only flips the read flag through the API.
type Notification struct {
	ID        string               `json:"id"`
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Link      string               `json:"link,omitempty"`
	Priority  NotificationPriority `json:"priority"`
	Read      bool                 `json:"read"`
	CreatedAt time.Time            `json:"createdAt"`
}
