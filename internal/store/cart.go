// Package store holds the client-local state a web client keeps in browser
// storage: the cart and the theme preference. Stores are explicit injected
// values, never package-level singletons; all mutation goes through the
// defined operations and happens under one mutex.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/shophub/shopctl/internal/models"
)

var ErrItemNotFound = errors.New("store: item not in cart")

// CartStore owns the cart across commands, persisted to a JSON file so it
// survives between invocations and is cleared on successful checkout.
type CartStore struct {
	path  string
	mu    sync.Mutex
	items []models.CartItem
}

func NewCartStore(path string) (*CartStore, error) {
	s := &CartStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CartStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store: reading cart file: %w", err)
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		return fmt.Errorf("store: corrupt cart file: %w", err)
	}
	return nil
}

func (s *CartStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("store: creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encoding cart: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("store: writing cart file: %w", err)
	}
	return nil
}

// Add puts an item in the cart, merging quantities when the product is
// already there.
func (s *CartStore) Add(item models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			return s.persist()
		}
	}
	s.items = append(s.items, item)
	return s.persist()
}

func (s *CartStore) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}
	return ErrItemNotFound
}

// UpdateQuantity sets an item's quantity; zero or negative removes it.
func (s *CartStore) UpdateQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			if quantity <= 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			} else {
				s.items[i].Quantity = quantity
			}
			return s.persist()
		}
	}
	return ErrItemNotFound
}

func (s *CartStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist()
}

// Items returns a copy; callers never see the backing slice.
func (s *CartStore) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *CartStore) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range s.items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
