package orderview

import (
	"strings"

	"github.com/shophub/shopctl/internal/models"
)

// Match reports whether an order passes the selected status filter and the
// free-text query. The status filter is an exact match (or "all"); the query
// is a case-insensitive substring check against the order id, the tracking
// id and every item name. An empty query always matches.
func Match(order models.Order, statusFilter string, query string) bool {
	if statusFilter != models.StatusFilterAll && string(order.Status) != statusFilter {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(order.OrderID), q) {
		return true
	}
	if strings.Contains(strings.ToLower(order.TrackingID), q) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return true
		}
	}
	return false
}

// Filter returns the orders passing Match, preserving input order.
func Filter(orders []models.Order, statusFilter string, query string) []models.Order {
	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if Match(order, statusFilter, query) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// CountByStatus recomputes the per-status breakdown by scanning the full
// collection; nothing is maintained incrementally.
func CountByStatus(orders []models.Order) map[models.OrderStatus]int {
	counts := make(map[models.OrderStatus]int)
	for _, order := range orders {
		counts[order.Status]++
	}
	return counts
}
