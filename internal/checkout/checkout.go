// Package checkout turns the cart into an order through explicit steps with
// compensation: create order, create payment intent, confirm payment, clear
// cart. A payment failure aborts the flow, deletes the just-created order
// and leaves the cart intact.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shophub/shopctl/internal/api"
	"github.com/shophub/shopctl/internal/models"
)

var ErrEmptyCart = errors.New("checkout: cart is empty")

// PaymentMethodCOD skips the Stripe intent steps entirely.
const PaymentMethodCOD = "cod"

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

type Step struct {
	Name   string
	Status StepStatus
	Err    error
}

type Result struct {
	Order models.Order
	Steps []Step
}

// Cart is the slice of the cart store checkout needs.
type Cart interface {
	Items() []models.CartItem
	Clear() error
}

type Orchestrator struct {
	client *api.Client
	cart   Cart
	logger *slog.Logger
}

func New(client *api.Client, cart Cart, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{client: client, cart: cart, logger: logger}
}

// Run executes the checkout for the signed-in user. On payment failure the
// created order is compensated away; the cart is only cleared after every
// step succeeded.
func (o *Orchestrator) Run(ctx context.Context, userID string, address models.ShippingAddress, paymentMethod string) (Result, error) {
	items := o.cart.Items()
	if len(items) == 0 {
		return Result{}, ErrEmptyCart
	}

	result := Result{Steps: []Step{
		{Name: "create_order", Status: StepPending},
		{Name: "create_payment_intent", Status: StepPending},
		{Name: "confirm_payment", Status: StepPending},
		{Name: "clear_cart", Status: StepPending},
	}}

	order, err := o.client.CreateOrder(ctx, api.CreateOrderRequest{
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		result.Steps[0] = Step{Name: "create_order", Status: StepFailed, Err: err}
		return result, fmt.Errorf("checkout: creating order: %w", err)
	}
	result.Steps[0].Status = StepCompleted
	result.Order = order
	o.logger.Info("order created", "orderId", order.OrderID, "total", order.Total.String())

	if paymentMethod == PaymentMethodCOD {
		result.Steps[1].Status = StepSkipped
		result.Steps[2].Status = StepSkipped
	} else {
		intent, err := o.client.CreatePaymentIntent(ctx, order.OrderID)
		if err != nil {
			result.Steps[1] = Step{Name: "create_payment_intent", Status: StepFailed, Err: err}
			o.compensate(ctx, &result)
			return result, fmt.Errorf("checkout: creating payment intent: %w", err)
		}
		result.Steps[1].Status = StepCompleted

		payment, err := o.client.ConfirmPayment(ctx, order.OrderID, intent.ID)
		if err != nil {
			result.Steps[2] = Step{Name: "confirm_payment", Status: StepFailed, Err: err}
			o.compensate(ctx, &result)
			return result, fmt.Errorf("checkout: confirming payment: %w", err)
		}
		result.Steps[2].Status = StepCompleted
		o.logger.Info("payment confirmed", "orderId", order.OrderID, "transactionId", payment.TransactionID)
	}

	if err := o.cart.Clear(); err != nil {
		// the order went through; a stale local cart is an annoyance, not
		// a reason to fail the checkout
		result.Steps[3] = Step{Name: "clear_cart", Status: StepFailed, Err: err}
		o.logger.Warn("failed to clear cart after checkout", "error", err)
		return result, nil
	}
	result.Steps[3].Status = StepCompleted

	return result, nil
}

// compensate undoes the created order after a payment-step failure. The
// cart was never touched, so aborting leaves the user exactly where they
// started.
func (o *Orchestrator) compensate(ctx context.Context, result *Result) {
	if err := o.client.DeleteOrder(ctx, result.Order.OrderID); err != nil {
		o.logger.Warn("failed to roll back order after payment failure",
			"orderId", result.Order.OrderID, "error", err)
		return
	}
	o.logger.Info("order rolled back after payment failure", "orderId", result.Order.OrderID)
	result.Order = models.Order{}
}
