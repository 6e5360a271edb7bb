package api

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentIntent mirrors the Stripe-backed intent the backend creates; the
// client only ever sees the client secret and derived state.
type PaymentIntent struct {
	ID           string          `json:"id"`
	ClientSecret string          `json:"clientSecret"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
}

type intentResponse struct {
	envelope
	Intent PaymentIntent `json:"paymentIntent"`
}

type paymentResponse struct {
	envelope
	Payment PaymentRecord `json:"payment"`
}

type PaymentRecord struct {
	OrderID       string          `json:"orderId"`
	IntentID      string          `json:"intentId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transactionId,omitempty"`
}

func (c *Client) CreatePaymentIntent(ctx context.Context, orderID string) (PaymentIntent, error) {
	var resp intentResponse
	body := map[string]string{"orderId": orderID}
	if err := c.post(ctx, "/payments/create-intent", body, &resp); err != nil {
		return PaymentIntent{}, err
	}
	return resp.Intent, nil
}

func (c *Client) ConfirmPayment(ctx context.Context, orderID, intentID string) (PaymentRecord, error) {
	var resp paymentResponse
	body := map[string]string{"orderId": orderID, "intentId": intentID}
	if err := c.post(ctx, "/payments/confirm", body, &resp); err != nil {
		return PaymentRecord{}, err
	}
	return resp.Payment, nil
}

func (c *Client) PaymentByOrder(ctx context.Context, orderID string) (PaymentRecord, error) {
	var resp paymentResponse
	if err := c.get(ctx, "/payments/order/"+orderID, &resp); err != nil {
		return PaymentRecord{}, err
	}
	return resp.Payment, nil
}
