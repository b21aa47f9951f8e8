// Package cart holds the shopping cart of one visitor, mirrored to a
// key-value repository after every mutation.
package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/obs"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound = errors.New("item not in cart")
	ErrStockLimit   = errors.New("cannot add more than available stock")
)

// Store is the in-memory cart of one session. Entries are keyed by product
// id. Every mutation is written through to the repository under key.
type Store struct {
	mu       sync.Mutex
	repo     repo.KeyValueRepository
	key      string
	notifier notify.Notifier

	items     []models.CartItem
	lastBlob  []byte
	stopWatch func()
}

func NewStore(r repo.KeyValueRepository, key string, n notify.Notifier) *Store {
	if n == nil {
		n = notify.Discard
	}
	return &Store{repo: r, key: key, notifier: n, items: []models.CartItem{}}
}

// Init rehydrates the cart from the repository and, when the repository
// reports changes, follows writes made by other instances.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	err := s.loadLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if w, ok := s.repo.(repo.Watcher); ok {
		stop, err := w.Watch(ctx, s.key, s.reload)
		if err != nil {
			obs.Logger.Warn("cart watch unavailable", "key", s.key, "error", err)
			return nil
		}
		s.mu.Lock()
		s.stopWatch = stop
		s.mu.Unlock()
	}
	return nil
}

// Dispose stops following repository changes. The persisted cart is kept.
func (s *Store) Dispose() {
	s.mu.Lock()
	stop := s.stopWatch
	s.stopWatch = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (s *Store) loadLocked(ctx context.Context) error {
	blob, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, repo.ErrKeyNotFound) {
		s.items = []models.CartItem{}
		s.lastBlob = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	var items []models.CartItem
	if err := json.Unmarshal(blob, &items); err != nil {
		obs.Logger.Warn("discarding unreadable cart", "key", s.key, "error", err)
		items = nil
	}
	if items == nil {
		items = []models.CartItem{}
	}
	s.items = items
	s.lastBlob = blob
	return nil
}

// reload picks up a write made elsewhere. Echoes of this store's own
// writes are skipped.
func (s *Store) reload() {
	ctx := context.Background()
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.repo.Get(ctx, s.key)
	if err != nil && !errors.Is(err, repo.ErrKeyNotFound) {
		obs.Logger.Warn("cart reload failed", "key", s.key, "error", err)
		return
	}
	if bytes.Equal(blob, s.lastBlob) {
		return
	}
	if err := s.loadLocked(ctx); err != nil {
		obs.Logger.Warn("cart reload failed", "key", s.key, "error", err)
	}
}

func (s *Store) persistLocked(ctx context.Context) error {
	blob, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	s.lastBlob = blob
	if err := s.repo.Set(ctx, s.key, blob); err != nil {
		obs.Logger.Error("cart write-through failed", "key", s.key, "error", err)
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (s *Store) indexLocked(id int) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Items returns a copy of the cart entries in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem{}, s.items...)
}

// Subtotal is the sum of price * quantity over every entry.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Subtotal(s.items)
}

func Subtotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// AddToCart increments the entry of p by one, or inserts it with quantity
// one. No stock check happens here; Increase enforces the stock cap.
func (s *Store) AddToCart(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := "Product added to cart"
	if i := s.indexLocked(p.ID); i >= 0 {
		s.items[i].Quantity++
		msg = "Quantity updated in cart"
	} else {
		s.items = append(s.items, models.CartItem{Product: p, Quantity: 1})
	}
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.notifier.Success(ctx, msg)
	return nil
}

// RemoveFromCart deletes the entry of id. An absent id is not an error.
func (s *Store) RemoveFromCart(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.notifier.Success(ctx, "Product removed from cart")
	return nil
}

// ClearCart empties the cart and persists the empty state immediately.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []models.CartItem{}
	return s.persistLocked(ctx)
}

// Increase adds one unit while the quantity is below the product's stock.
func (s *Store) Increase(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return ErrItemNotFound
	}
	if s.items[i].Quantity >= s.items[i].StockQuantity {
		s.notifier.Error(ctx, "Cannot add more than available stock")
		return ErrStockLimit
	}
	s.items[i].Quantity++
	return s.persistLocked(ctx)
}

// Decrease removes one unit but never goes below one.
func (s *Store) Decrease(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return ErrItemNotFound
	}
	s.items[i].Quantity = max(s.items[i].Quantity-1, 1)
	return s.persistLocked(ctx)
}
