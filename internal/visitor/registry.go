// Package visitor keeps the per-session state of the storefront: cart,
// theme, checkout flow and notifications. A session plays the role a
// browser profile plays for a single-page app.
package visitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rogerio-castellano/storefront/internal/cart"
	"github.com/rogerio-castellano/storefront/internal/checkout"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/obs"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/rogerio-castellano/storefront/internal/theme"
)

type Visitor struct {
	ID       string
	Cart     *cart.Store
	Theme    *theme.Store
	Checkout *checkout.Flow
	Notifier notify.Notifier

	lastSeen time.Time
}

type Registry struct {
	mu       sync.Mutex
	visitors map[string]*Visitor
	repo     repo.KeyValueRepository
	remote   checkout.Remote
	hub      *notify.Hub
	now      func() time.Time
}

func NewRegistry(r repo.KeyValueRepository, remote checkout.Remote, hub *notify.Hub) *Registry {
	return &Registry{
		visitors: map[string]*Visitor{},
		repo:     r,
		remote:   remote,
		hub:      hub,
		now:      time.Now,
	}
}

func (r *Registry) Hub() *notify.Hub {
	return r.hub
}

// Get returns the visitor of session id, rehydrating it from the repository
// on first use.
func (r *Registry) Get(ctx context.Context, id string) (*Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.visitors[id]; ok {
		v.lastSeen = r.now()
		return v, nil
	}

	n := r.hub.For(id)
	c := cart.NewStore(r.repo, repo.CartKey(id), n)
	if err := c.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	t := theme.NewStore(r.repo, repo.ThemeKey(id))
	if err := t.Init(ctx); err != nil {
		c.Dispose()
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}

	v := &Visitor{
		ID:       id,
		Cart:     c,
		Theme:    t,
		Checkout: checkout.NewFlow(r.remote, c, n),
		Notifier: n,
		lastSeen: r.now(),
	}
	r.visitors[id] = v
	return v, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// Sweep disposes visitors idle for longer than maxIdle together with their
// undelivered notifications. Their persisted state stays in the repository
// and is reloaded on the next request.
// A visitor with a checkout in progress is kept.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, v := range r.visitors {
		if r.now().Sub(v.lastSeen) <= maxIdle || v.Checkout.State() == checkout.StateProcessing {
			continue
		}
		v.Cart.Dispose()
		r.hub.Forget(id)
		delete(r.visitors, id)
		removed++
	}
	return removed
}

// StartCleanupLoop sweeps every interval until ctx is done.
func (r *Registry) StartCleanupLoop(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				obs.Logger.Debug("idle visitors released", "count", n)
			}
		}
	}
}

func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, v := range r.visitors {
		v.Cart.Dispose()
		r.hub.Forget(id)
		delete(r.visitors, id)
	}
}
