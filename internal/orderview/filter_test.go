package orderview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shophub/shopctl/internal/models"
)

func sampleOrders() []models.Order {
	return []models.Order{
		{
			OrderID:    "ORD-1001",
			TrackingID: "TRK-0012345",
			Status:     models.OrderStatusProcessing,
			Items:      []models.OrderItem{{Name: "Wireless Mouse"}},
		},
		{
			OrderID:    "ORD-1002",
			TrackingID: "TRK-0098765",
			Status:     models.OrderStatusDelivered,
			Items:      []models.OrderItem{{Name: "Mechanical Keyboard"}, {Name: "USB Hub"}},
		},
		{
			OrderID:    "ORD-1003",
			TrackingID: "TRK-0055555",
			Status:     models.OrderStatusDelivered,
			Items:      []models.OrderItem{{Name: "Desk Lamp"}},
		},
		{
			OrderID:    "ORD-1004",
			TrackingID: "",
			Status:     models.OrderStatusCancelled,
			Items:      []models.OrderItem{{Name: "Monitor Stand"}},
		},
	}
}

func TestFilterByStatus(t *testing.T) {
	orders := sampleOrders()

	all := Filter(orders, models.StatusFilterAll, "")
	assert.Len(t, all, len(orders), "filter 'all' with empty query returns everything")

	delivered := Filter(orders, "delivered", "")
	assert.Len(t, delivered, 2)
	for _, o := range delivered {
		assert.Equal(t, models.OrderStatusDelivered, o.Status)
	}

	none := Filter(orders, "in_transit", "")
	assert.Empty(t, none)
}

func TestFilterSearch(t *testing.T) {
	orders := sampleOrders()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"tracking id prefix", "TRK-001", []string{"ORD-1001"}},
		{"order id", "ord-1003", []string{"ORD-1003"}},
		{"item name case-insensitive", "keyboard", []string{"ORD-1002"}},
		{"substring not fuzzy", "kyboard", nil},
		{"empty matches all", "", []string{"ORD-1001", "ORD-1002", "ORD-1003", "ORD-1004"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(orders, models.StatusFilterAll, tt.query)
			var ids []string
			for _, o := range got {
				ids = append(ids, o.OrderID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterStatusAndSearchCombine(t *testing.T) {
	orders := sampleOrders()

	// status must match AND query must match
	got := Filter(orders, "delivered", "desk")
	assert.Len(t, got, 1)
	assert.Equal(t, "ORD-1003", got[0].OrderID)

	got = Filter(orders, "processing", "desk")
	assert.Empty(t, got)
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(sampleOrders())
	assert.Equal(t, 1, counts[models.OrderStatusProcessing])
	assert.Equal(t, 2, counts[models.OrderStatusDelivered])
	assert.Equal(t, 1, counts[models.OrderStatusCancelled])
	assert.Equal(t, 0, counts[models.OrderStatusInTransit])
}

func TestBadgeFor(t *testing.T) {
	b := BadgeFor(models.OrderStatusDelivered)
	assert.Equal(t, "Delivered", b.Label)
	assert.True(t, Known(models.OrderStatusDelivered))

	// unrecognised statuses render distinctly instead of as "processing"
	u := BadgeFor(models.OrderStatus("exploded"))
	assert.Equal(t, "Unknown", u.Label)
	assert.NotEqual(t, BadgeFor(models.OrderStatusProcessing), u)
	assert.False(t, Known(models.OrderStatus("exploded")))
}
