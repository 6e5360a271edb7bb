// Package controller owns the remote-fetch view state behind the order
// list, admin table and detail views: loading phase, the loaded collection,
// client-side filter/search/page state and the selected order. Filters never
// refetch; only status-mutating actions do.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shophub/shopctl/internal/models"
	"github.com/shophub/shopctl/internal/orderview"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
)

var ErrNoSelection = errors.New("controller: no order selected")

// OrderSource is the slice of the API client the controller needs.
type OrderSource interface {
	OrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	AllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (models.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
	ProfileByUID(ctx context.Context, uid string) (models.Profile, error)
}

type Orders struct {
	source   OrderSource
	logger   *slog.Logger
	pageSize int

	mu           sync.Mutex
	phase        Phase
	err          error
	userID       string
	adminScope   bool
	profile      models.Profile
	orders       []models.Order
	statusFilter string
	query        string
	page         int
	selected     string
	generation   uint64
	cancelFetch  context.CancelFunc
}

type OrdersOption func(*Orders)

func WithLogger(logger *slog.Logger) OrdersOption {
	return func(o *Orders) { o.logger = logger }
}

func WithPageSize(size int) OrdersOption {
	return func(o *Orders) { o.pageSize = size }
}

// WithAdminScope fetches every order instead of the caller's.
func WithAdminScope() OrdersOption {
	return func(o *Orders) { o.adminScope = true }
}

func NewOrders(source OrderSource, userID string, opts ...OrdersOption) *Orders {
	o := &Orders{
		source:       source,
		logger:       slog.Default(),
		pageSize:     models.OrdersPageSize,
		phase:        PhaseIdle,
		userID:       userID,
		statusFilter: models.StatusFilterAll,
		page:         1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load fetches the orders plus the profile, sequentially like a page
// mount. A newer Load supersedes any in-flight one: its context is
// cancelled and a late response is discarded by generation check.
func (o *Orders) Load(ctx context.Context) error {
	o.mu.Lock()
	if o.cancelFetch != nil {
		o.cancelFetch()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	o.cancelFetch = cancel
	o.generation++
	gen := o.generation
	o.phase = PhaseLoading
	o.err = nil
	o.mu.Unlock()

	var (
		orders  []models.Order
		profile models.Profile
		err     error
	)
	if o.adminScope {
		orders, err = o.source.AllOrders(fetchCtx)
	} else {
		orders, err = o.source.OrdersByUser(fetchCtx, o.userID)
	}
	if err == nil && o.userID != "" {
		profile, err = o.source.ProfileByUID(fetchCtx, o.userID)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		// superseded by a newer fetch, never write stale data over it
		o.logger.Debug("dropping stale fetch result", "generation", gen)
		return nil
	}
	if err != nil {
		o.phase = PhaseError
		o.err = err
		o.orders = nil
		return err
	}
	o.phase = PhaseLoaded
	o.orders = orders
	o.profile = profile
	o.flagUnknownStatuses(orders)
	if total := orderview.TotalPages(len(o.visibleLocked()), o.pageSize); o.page > total && total > 0 {
		o.page = total
	}
	return nil
}

func (o *Orders) flagUnknownStatuses(orders []models.Order) {
	for _, order := range orders {
		if !orderview.Known(order.Status) && order.Status != models.OrderStatusUnknown {
			o.logger.Warn("order has unmapped status", "orderId", order.OrderID, "status", order.Status)
		}
	}
}

func (o *Orders) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

func (o *Orders) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

func (o *Orders) Profile() models.Profile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.profile
}

// SetStatusFilter narrows the collection client-side; no refetch, page
// resets to 1.
func (o *Orders) SetStatusFilter(filter string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statusFilter = filter
	o.page = 1
}

// SetSearch updates the free-text query; no refetch, page resets to 1.
func (o *Orders) SetSearch(query string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.query = query
	o.page = 1
}

// SetPage moves to another page; out-of-range targets are a no-op.
func (o *Orders) SetPage(page int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	total := orderview.TotalPages(len(o.visibleLocked()), o.pageSize)
	if !orderview.ValidPage(page, total) {
		return
	}
	o.page = page
}

func (o *Orders) Page() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.page
}

func (o *Orders) visibleLocked() []models.Order {
	return orderview.Filter(o.orders, o.statusFilter, o.query)
}

// Visible returns the current page of the filtered collection.
func (o *Orders) Visible() []models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	return orderview.Paginate(o.visibleLocked(), o.pageSize, o.page)
}

// TotalPages is over the filtered collection, not the raw one.
func (o *Orders) TotalPages() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return orderview.TotalPages(len(o.visibleLocked()), o.pageSize)
}

func (o *Orders) PageNumbers() []int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return orderview.PageNumbers(orderview.TotalPages(len(o.visibleLocked()), o.pageSize), o.page)
}

// CountByStatus rescans the full loaded collection.
func (o *Orders) CountByStatus() map[models.OrderStatus]int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return orderview.CountByStatus(o.orders)
}

// Select marks an order for the detail view.
func (o *Orders) Select(orderID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, order := range o.orders {
		if order.OrderID == orderID {
			o.selected = orderID
			return nil
		}
	}
	return fmt.Errorf("controller: order %s not loaded", orderID)
}

func (o *Orders) ClearSelection() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selected = ""
}

func (o *Orders) Selected() (models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.selected == "" {
		return models.Order{}, ErrNoSelection
	}
	for _, order := range o.orders {
		if order.OrderID == o.selected {
			return order, nil
		}
	}
	return models.Order{}, ErrNoSelection
}

// UpdateStatus mutates server state, then refetches; the only kind of
// action (besides Delete) that re-enters loading from loaded.
func (o *Orders) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if _, err := o.source.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}
	return o.Load(ctx)
}

func (o *Orders) Delete(ctx context.Context, orderID string) error {
	if err := o.source.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	o.mu.Lock()
	if o.selected == orderID {
		o.selected = ""
	}
	o.mu.Unlock()
	return o.Load(ctx)
}

// Stats summarizes the loaded collection for the dashboard header.
func (o *Orders) Stats() models.OrderStats {
	o.mu.Lock()
	defer o.mu.Unlock()

	stats := models.OrderStats{
		TotalOrders:   len(o.orders),
		CountByStatus: orderview.CountByStatus(o.orders),
	}
	for _, order := range o.orders {
		if order.Status != models.OrderStatusCancelled {
			stats.TotalSpent = stats.TotalSpent.Add(order.Total)
		}
	}
	return stats
}
