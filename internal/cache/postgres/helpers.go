package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shophub/shopctl/internal/models"
)

func decodeMoney(order *models.Order, subtotal, shipping, tax, total string) error {
	var err error
	if order.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return fmt.Errorf("decoding subtotal for %s: %w", order.OrderID, err)
	}
	if order.ShippingCost, err = decimal.NewFromString(shipping); err != nil {
		return fmt.Errorf("decoding shipping cost for %s: %w", order.OrderID, err)
	}
	if order.Tax, err = decimal.NewFromString(tax); err != nil {
		return fmt.Errorf("decoding tax for %s: %w", order.OrderID, err)
	}
	if order.Total, err = decimal.NewFromString(total); err != nil {
		return fmt.Errorf("decoding total for %s: %w", order.OrderID, err)
	}
	return nil
}
