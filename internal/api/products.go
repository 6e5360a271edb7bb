package api

import (
	"context"

	"github.com/shophub/shopctl/internal/models"
)

type productsResponse struct {
	envelope
	Products []models.Product `json:"products"`
}

type productResponse struct {
	envelope
	Product models.Product `json:"product"`
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var resp productsResponse
	if err := c.get(ctx, "/products", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	var resp productResponse
	if err := c.get(ctx, "/products/"+id, &resp); err != nil {
		return models.Product{}, err
	}
	return resp.Product, nil
}
