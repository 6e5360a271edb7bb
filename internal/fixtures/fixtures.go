// Package fixtures generates realistic ShopHub records for demo mode and
// tests.
package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"

	"github.com/shophub/shopctl/internal/models"
)

var fake = faker.New()

var productCatalog = []string{
	"Wireless Mouse",
	"Mechanical Keyboard",
	"USB-C Hub",
	"Desk Lamp",
	"Monitor Stand",
	"Laptop Sleeve",
	"Bluetooth Speaker",
	"Webcam",
	"Phone Charger",
	"Noise Cancelling Headphones",
	"Portable SSD",
	"Ergonomic Chair Cushion",
	"Cable Organizer",
	"Smart Watch Band",
	"Desk Mat",
}

var orderStatuses = []models.OrderStatus{
	models.OrderStatusProcessing,
	models.OrderStatusConfirmed,
	models.OrderStatusAssigned,
	models.OrderStatusPickedUp,
	models.OrderStatusInTransit,
	models.OrderStatusOutForDelivery,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

// statusPath is the forward progression used to build plausible timelines.
var statusPath = []models.OrderStatus{
	models.OrderStatusProcessing,
	models.OrderStatusConfirmed,
	models.OrderStatusAssigned,
	models.OrderStatusPickedUp,
	models.OrderStatusInTransit,
	models.OrderStatusOutForDelivery,
	models.OrderStatusDelivered,
}

func NewProduct() models.Product {
	name := productCatalog[rand.Intn(len(productCatalog))]
	return models.Product{
		ID:          cuid.New(),
		Name:        name,
		Description: fake.Lorem().Sentence(8),
		Price:       decimal.NewFromFloat(fake.Float64(2, 5, 250)),
		Category:    fake.RandomStringElement([]string{"electronics", "accessories", "office", "audio"}),
		Image:       fmt.Sprintf("https://i.ibb.co/%s/product.jpg", cuid.Slug()),
		Stock:       fake.IntBetween(0, 120),
		SellerID:    cuid.New(),
		Rating:      fake.Float64(1, 1, 5),
		CreatedAt:   fake.Time().TimeBetween(time.Now().AddDate(-1, 0, 0), time.Now()),
	}
}

func NewProfile(role models.Role) models.Profile {
	return models.Profile{
		UID:         cuid.New(),
		Email:       fake.Internet().Email(),
		DisplayName: fake.Person().Name(),
		PhotoURL:    fmt.Sprintf("https://i.ibb.co/%s/avatar.jpg", cuid.Slug()),
		Role:        role,
		Provider:    models.ProviderEmail,
		CreatedAt:   fake.Time().TimeBetween(time.Now().AddDate(-2, 0, 0), time.Now()),
	}
}

// NewOrder builds an order in a random lifecycle state with a timeline
// consistent with that state.
func NewOrder(userID string) models.Order {
	return NewOrderWithStatus(userID, orderStatuses[rand.Intn(len(orderStatuses))])
}

func NewOrderWithStatus(userID string, status models.OrderStatus) models.Order {
	itemCount := fake.IntBetween(1, 4)
	items := make([]models.OrderItem, itemCount)
	subtotal := decimal.Zero
	for i := range items {
		price := decimal.NewFromFloat(fake.Float64(2, 5, 150))
		quantity := fake.IntBetween(1, 3)
		items[i] = models.OrderItem{
			ProductID: cuid.New(),
			Name:      productCatalog[rand.Intn(len(productCatalog))],
			Price:     price,
			Quantity:  quantity,
			Image:     fmt.Sprintf("https://i.ibb.co/%s/product.jpg", cuid.Slug()),
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
	}

	shipping := decimal.NewFromInt(int64(fake.IntBetween(3, 12)))
	tax := subtotal.Mul(decimal.RequireFromString("0.05")).Round(2)
	createdAt := fake.Time().TimeBetween(time.Now().AddDate(0, -3, 0), time.Now().Add(-24*time.Hour))

	order := models.Order{
		OrderID:         "ORD-" + cuid.Slug(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: NewAddress(),
		Subtotal:        subtotal,
		ShippingCost:    shipping,
		Tax:             tax,
		Total:           subtotal.Add(shipping).Add(tax),
		Status:          status,
		PaymentStatus:   models.PaymentStatusCompleted,
		PaymentMethod:   fake.RandomStringElement([]string{"card", "cod", "wallet"}),
		TrackingID:      "TRK-" + cuid.Slug(),
		Timeline:        buildTimeline(status, createdAt),
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}

	switch status {
	case models.OrderStatusCancelled:
		order.PaymentStatus = models.PaymentStatusFailed
	case models.OrderStatusProcessing:
		order.PaymentStatus = models.PaymentStatusPending
	}
	if status == models.OrderStatusAssigned || status == models.OrderStatusPickedUp ||
		status == models.OrderStatusInTransit || status == models.OrderStatusOutForDelivery {
		order.Rider = &models.Rider{
			Name:    fake.Person().Name(),
			Phone:   fake.Phone().Number(),
			Vehicle: fake.RandomStringElement([]string{"bike", "motorbike", "van"}),
		}
	}
	if len(order.Timeline) > 0 {
		order.UpdatedAt = order.Timeline[len(order.Timeline)-1].Timestamp
	}
	return order
}

func buildTimeline(status models.OrderStatus, start time.Time) []models.TimelineEntry {
	if status == models.OrderStatusCancelled {
		return []models.TimelineEntry{
			{Status: models.OrderStatusProcessing, Timestamp: start, Note: "Order placed"},
			{Status: models.OrderStatusCancelled, Timestamp: start.Add(2 * time.Hour), Note: "Order cancelled"},
		}
	}

	var timeline []models.TimelineEntry
	ts := start
	for _, step := range statusPath {
		timeline = append(timeline, models.TimelineEntry{
			Status:    step,
			Timestamp: ts,
			Location:  fake.Address().City(),
		})
		if step == status {
			break
		}
		ts = ts.Add(time.Duration(fake.IntBetween(1, 12)) * time.Hour)
	}
	return timeline
}

func NewAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Street:   fake.Address().StreetAddress(),
		City:     fake.Address().City(),
		District: fake.Address().State(),
		Division: fake.Address().State(),
		Zip:      fake.Address().PostCode(),
		Country:  "BD",
	}
}

func NewNotification(userID string) models.Notification {
	kinds := []string{
		models.NotifyOrderPlaced, models.NotifyOrderConfirmed, models.NotifyOrderDelivered,
		models.NotifyPaymentSuccess, models.NotifyNewPromotion, models.NotifyPriceDrop,
		models.NotifyBackInStock, models.NotifySystemAlert,
	}
	kind := kinds[rand.Intn(len(kinds))]
	return models.Notification{
		ID:       cuid.New(),
		Type:     kind,
		Title:    fake.Lorem().Sentence(3),
		Message:  fake.Lorem().Sentence(10),
		Link:     "/orders",
		Priority: models.NotificationPriority(fake.RandomStringElement([]string{"low", "medium", "high", "urgent"})),
		Read:     fake.Boolean().Bool(),
		CreatedAt: fake.Time().TimeBetween(
			time.Now().AddDate(0, -1, 0), time.Now()),
	}
}

// OrderBatch generates n orders for one user.
func OrderBatch(userID string, n int) []models.Order {
	orders := make([]models.Order, n)
	for i := range orders {
		orders[i] = NewOrder(userID)
	}
	return orders
}
