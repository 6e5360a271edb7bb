package api

import (
	"context"

	"github.com/shophub/shopctl/internal/models"
)

type ordersResponse struct {
	envelope
	Orders []models.Order `json:"orders"`
}

type orderResponse struct {
	envelope
	Order models.Order `json:"order"`
}

type deleteResponse struct {
	envelope
}

// OrdersByUser lists the orders belonging to one buyer.
func (c *Client) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var resp ordersResponse
	if err := c.get(ctx, "/orders/user/"+userID, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// AllOrders lists every order; admin/seller scope.
func (c *Client) AllOrders(ctx context.Context) ([]models.Order, error) {
	var resp ordersResponse
	if err := c.get(ctx, "/orders", &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) Order(ctx context.Context, orderID string) (models.Order, error) {
	var resp orderResponse
	if err := c.get(ctx, "/orders/"+orderID, &resp); err != nil {
		return models.Order{}, err
	}
	return resp.Order, nil
}

// OrderByTracking resolves an order from its public tracking id.
func (c *Client) OrderByTracking(ctx context.Context, trackingID string) (models.Order, error) {
	var resp orderResponse
	if err := c.get(ctx, "/orders/tracking/"+trackingID, &resp); err != nil {
		return models.Order{}, err
	}
	return resp.Order, nil
}

// UpdateOrderStatus patches the fulfillment status; admin scope.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error) {
	var resp orderResponse
	body := map[string]models.OrderStatus{"status": status}
	if err := c.patch(ctx, "/orders/"+orderID+"/status", body, &resp); err != nil {
		return models.Order{}, err
	}
	return resp.Order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	var resp deleteResponse
	return c.delete(ctx, "/orders/"+orderID, &resp)
}

// CreateOrderRequest is the checkout snapshot: cart contents, destination
// and payment method. The server computes totals and assigns ids.
type CreateOrderRequest struct {
	UserID          string                 `json:"userId"`
	Items           []models.CartItem      `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	var resp orderResponse
	if err := c.post(ctx, "/orders", req, &resp); err != nil {
		return models.Order{}, err
	}
	return resp.Order, nil
}
