// Package checkout writes the stock decrements of a cart back to the remote
// product service, one item at a time.
//
// Checkout is not atomic across items. When item n fails, items 1..n-1 stay
// updated on the remote service, the cart is kept, and the Result shows
// which items were submitted. Nothing is rolled back.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/obs"
	"github.com/rogerio-castellano/storefront/internal/productapi"
)

type State string

const (
	StateIdle       State = "idle"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

var (
	ErrNotConfirmed = errors.New("checkout requires confirmation")
	ErrInProgress   = errors.New("checkout already in progress")
	ErrEmptyCart    = errors.New("cart is empty")
)

// Remote is what checkout needs from the product service.
type Remote interface {
	Image(ctx context.Context, id int) (productapi.Image, error)
	Update(ctx context.Context, id int, p models.Product, img productapi.Image) error
}

// Cart is the cart being checked out.
type Cart interface {
	Items() []models.CartItem
	ClearCart(ctx context.Context) error
}

type ItemStatus string

const (
	ItemSubmitted    ItemStatus = "submitted"
	ItemFailed       ItemStatus = "failed"
	ItemNotAttempted ItemStatus = "not_attempted"
)

type ItemResult struct {
	ProductID    int        `json:"productId"`
	Name         string     `json:"name"`
	Quantity     int        `json:"quantity"`
	UpdatedStock int        `json:"updatedStock"`
	Status       ItemStatus `json:"status"`
	Error        string     `json:"error,omitempty"`
}

type Result struct {
	State State        `json:"state"`
	Items []ItemResult `json:"items"`
}

// Flow is the checkout state machine of one session:
// Idle -> Processing -> {Success, Failed}, restartable from any state but
// Processing.
type Flow struct {
	mu       sync.Mutex
	state    State
	last     Result
	remote   Remote
	cart     Cart
	notifier notify.Notifier
}

func NewFlow(remote Remote, cart Cart, n notify.Notifier) *Flow {
	if n == nil {
		n = notify.Discard
	}
	return &Flow{state: StateIdle, remote: remote, cart: cart, notifier: n}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Last returns the result of the most recent run.
func (f *Flow) Last() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *Flow) finish(r Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = r.State
	f.last = r
}

// Run checks out the cart. confirmed must be true; the caller is expected
// to have asked the user.
func (f *Flow) Run(ctx context.Context, confirmed bool) (Result, error) {
	if !confirmed {
		return Result{State: f.State()}, ErrNotConfirmed
	}

	f.mu.Lock()
	if f.state == StateProcessing {
		f.mu.Unlock()
		return Result{State: StateProcessing}, ErrInProgress
	}
	items := f.cart.Items()
	if len(items) == 0 {
		state := f.state
		f.mu.Unlock()
		return Result{State: state, Items: []ItemResult{}}, ErrEmptyCart
	}
	f.state = StateProcessing
	f.mu.Unlock()

	result := Result{State: StateProcessing, Items: make([]ItemResult, len(items))}
	for i, item := range items {
		// No lower bound: the quantity was clamped when the cart was built.
		result.Items[i] = ItemResult{
			ProductID:    item.ID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			UpdatedStock: item.StockQuantity - item.Quantity,
			Status:       ItemNotAttempted,
		}
	}

	for i, item := range items {
		if err := f.submit(ctx, item, result.Items[i].UpdatedStock); err != nil {
			obs.Logger.Error("checkout item failed", "product_id", item.ID, "submitted_before", i, "error", err)
			result.Items[i].Status = ItemFailed
			result.Items[i].Error = err.Error()
			result.State = StateFailed
			f.finish(result)
			f.notifier.Error(ctx, "Checkout failed")
			return result, fmt.Errorf("checkout of product %d: %w", item.ID, err)
		}
		result.Items[i].Status = ItemSubmitted
	}

	if err := f.cart.ClearCart(ctx); err != nil {
		obs.Logger.Warn("cart clear after checkout failed", "error", err)
	}
	result.State = StateSuccess
	f.finish(result)
	f.notifier.Success(ctx, "Checkout successful!")
	return result, nil
}

// submit refetches the current image and sends the full record with the
// decremented stock.
func (f *Flow) submit(ctx context.Context, item models.CartItem, updatedStock int) error {
	img, err := f.remote.Image(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	img.Name = item.ImageName

	p := item.Product
	p.StockQuantity = updatedStock
	if err := f.remote.Update(ctx, item.ID, p, img); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}
