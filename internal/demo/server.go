// Package demo runs a local mock of the ShopHub REST API so the CLI and the
// API client tests work without the real backend. State is in-memory and
// seeded from fixtures.
package demo

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"

	"github.com/shophub/shopctl/internal/fixtures"
	"github.com/shophub/shopctl/internal/models"
)

type Server struct {
	logger *slog.Logger

	mu            sync.Mutex
	orders        map[string]*models.Order
	products      map[string]models.Product
	profiles      map[string]models.Profile
	notifications map[string][]models.Notification
	payments      map[string]paymentState
}

type paymentState struct {
	IntentID      string
	Status        string
	TransactionID string
}

func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:        logger,
		orders:        make(map[string]*models.Order),
		products:      make(map[string]models.Product),
		profiles:      make(map[string]models.Profile),
		notifications: make(map[string][]models.Notification),
		payments:      make(map[string]paymentState),
	}
}

// Seed loads fixture data for one or more users.
func (s *Server) Seed(profiles []models.Profile, orders []models.Order, products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range profiles {
		s.profiles[p.UID] = p
	}
	for i := range orders {
		order := orders[i]
		s.orders[order.OrderID] = &order
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/auth/register", s.handleRegister)
	r.Get("/auth/user/{uid}", s.handleGetProfile)

	r.Get("/orders", s.handleAllOrders)
	r.Get("/orders/user/{userId}", s.handleOrdersByUser)
	r.Get("/orders/tracking/{trackingId}", s.handleOrderByTracking)
	r.Get("/orders/{orderId}", s.handleGetOrder)
	r.Post("/orders", s.handleCreateOrder)
	r.Patch("/orders/{orderId}/status", s.handleUpdateStatus)
	r.Delete("/orders/{orderId}", s.handleDeleteOrder)

	r.Post("/payments/create-intent", s.handleCreateIntent)
	r.Post("/payments/confirm", s.handleConfirmPayment)
	r.Get("/payments/order/{orderId}", s.handlePaymentByOrder)

	r.Get("/products", s.handleProducts)
	r.Get("/products/{id}", s.handleProduct)

	r.Get("/notifications/user/{userId}", s.handleNotifications)
	r.Patch("/notifications/{id}/read", s.handleMarkRead)

	return r
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("demo API listening", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile payload")
		return
	}
	s.mu.Lock()
	if existing, ok := s.profiles[profile.UID]; ok {
		// upsert keeps the original role and creation time
		profile.Role = existing.Role
		profile.CreatedAt = existing.CreatedAt
	} else {
		if profile.Role == "" {
			profile.Role = models.RoleUser
		}
		profile.CreatedAt = time.Now()
	}
	s.profiles[profile.UID] = profile
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": profile})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	s.mu.Lock()
	profile, ok := s.profiles[uid]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": profile})
}

func (s *Server) handleAllOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, *order)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

func (s *Server) handleOrdersByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	s.mu.Lock()
	var orders []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	s.mu.Unlock()
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	s.mu.Lock()
	order, ok := s.orders[orderID]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (s *Server) handleOrderByTracking(w http.ResponseWriter, r *http.Request) {
	trackingID := chi.URLParam(r, "trackingId")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.TrackingID == trackingID {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
			return
		}
	}
	writeError(w, http.StatusNotFound, "no order with that tracking id")
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID          string                 `json:"userId"`
		Items           []models.CartItem      `json:"items"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid order payload")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "order must contain at least one item")
		return
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	shipping := decimal.NewFromInt(5)
	tax := subtotal.Mul(decimal.RequireFromString("0.05")).Round(2)
	now := time.Now()

	order := &models.Order{
		OrderID:         "ORD-" + cuid.Slug(),
		UserID:          req.UserID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Subtotal:        subtotal,
		ShippingCost:    shipping,
		Tax:             tax,
		Total:           subtotal.Add(shipping).Add(tax),
		Status:          models.OrderStatusProcessing,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		TrackingID:      "TRK-" + cuid.Slug(),
		Timeline: []models.TimelineEntry{
			{Status: models.OrderStatusProcessing, Timestamp: now, Note: "Order placed"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.orders[order.OrderID] = order
	s.mu.Unlock()
	s.logger.Info("demo order created", "orderId", order.OrderID, "total", order.Total.String())

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "order": order})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid status payload")
		return
	}

	s.mu.Lock()
	order, ok := s.orders[orderID]
	if ok {
		order.Status = req.Status
		order.UpdatedAt = time.Now()
		order.Timeline = append(order.Timeline, models.TimelineEntry{
			Status:    req.Status,
			Timestamp: order.UpdatedAt,
		})
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	s.mu.Lock()
	_, ok := s.orders[orderID]
	delete(s.orders, orderID)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment payload")
		return
	}

	s.mu.Lock()
	order, ok := s.orders[req.OrderID]
	var intentID string
	if ok {
		intentID = "pi_" + cuid.New()
		s.payments[req.OrderID] = paymentState{IntentID: intentID, Status: "requires_confirmation"}
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"paymentIntent": map[string]any{
			"id":           intentID,
			"clientSecret": intentID + "_secret_" + cuid.Slug(),
			"amount":       order.Total,
			"currency":     "usd",
			"status":       "requires_confirmation",
		},
	})
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID  string `json:"orderId"`
		IntentID string `json:"intentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment payload")
		return
	}

	s.mu.Lock()
	order, ok := s.orders[req.OrderID]
	state, hasIntent := s.payments[req.OrderID]
	if ok && hasIntent && state.IntentID == req.IntentID {
		state.Status = "succeeded"
		state.TransactionID = "txn_" + cuid.New()
		s.payments[req.OrderID] = state
		order.PaymentStatus = models.PaymentStatusCompleted
		order.Status = models.OrderStatusConfirmed
		order.Timeline = append(order.Timeline, models.TimelineEntry{
			Status:    models.OrderStatusConfirmed,
			Timestamp: time.Now(),
			Note:      "Payment confirmed",
		})
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if !hasIntent || state.IntentID != req.IntentID {
		writeError(w, http.StatusBadRequest, "unknown payment intent")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"payment": map[string]any{
			"orderId":       req.OrderID,
			"intentId":      req.IntentID,
			"amount":        order.Total,
			"status":        "succeeded",
			"transactionId": state.TransactionID,
		},
	})
}

func (s *Server) handlePaymentByOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	s.mu.Lock()
	order, okOrder := s.orders[orderID]
	state, ok := s.payments[orderID]
	s.mu.Unlock()
	if !okOrder || !ok {
		writeError(w, http.StatusNotFound, "no payment for that order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"payment": map[string]any{
			"orderId":       orderID,
			"intentId":      state.IntentID,
			"amount":        order.Total,
			"status":        state.Status,
			"transactionId": state.TransactionID,
		},
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "products": products})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	product, ok := s.products[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": product})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	s.mu.Lock()
	notifications := append([]models.Notification(nil), s.notifications[userID]...)
	s.mu.Unlock()
	if notifications == nil {
		notifications = []models.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "notifications": notifications})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	found := false
	for uid, bucket := range s.notifications {
		for i := range bucket {
			if bucket[i].ID == id {
				bucket[i].Read = true
				found = true
			}
		}
		s.notifications[uid] = bucket
	}
	s.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// SeedDefault populates the server with a demo user, an admin, a catalog and
// a spread of orders; returns the demo user's uid.
func (s *Server) SeedDefault() string {
	user := fixtures.NewProfile(models.RoleUser)
	admin := fixtures.NewProfile(models.RoleAdmin)

	products := make([]models.Product, 40)
	for i := range products {
		products[i] = fixtures.NewProduct()
	}
	orders := fixtures.OrderBatch(user.UID, 23)

	notifications := make([]models.Notification, 8)
	for i := range notifications {
		notifications[i] = fixtures.NewNotification(user.UID)
	}

	s.Seed([]models.Profile{user, admin}, orders, products)
	s.mu.Lock()
	s.notifications[user.UID] = notifications
	s.mu.Unlock()
	return user.UID
}
