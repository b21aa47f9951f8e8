package visitor

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(r repo.KeyValueRepository) *Registry {
	// checkout is not exercised here
	return NewRegistry(r, nil, notify.NewHub(nil))
}

func TestGet_ReusesVisitor(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(repo.NewInMemoryKeyValueRepository())
	defer reg.Close()

	a, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	b, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	c, err := reg.Get(ctx, "s2")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, reg.Len())
}

func TestGet_RehydratesPersistedState(t *testing.T) {
	ctx := context.Background()
	store := repo.NewInMemoryKeyValueRepository()

	reg := newRegistry(store)
	v, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, v.Cart.AddToCart(ctx, models.Product{ID: 7, Name: "x", Price: decimal.NewFromInt(3), StockQuantity: 2}))
	_, err = v.Theme.Toggle(ctx)
	require.NoError(t, err)
	reg.Close()

	reg = newRegistry(store)
	defer reg.Close()
	v, err = reg.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, v.Cart.Items(), 1)
	assert.Equal(t, 7, v.Cart.Items()[0].ID)
	assert.Equal(t, models.ThemeDark, v.Theme.Current())
}

func TestSweep_ReleasesIdleVisitors(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(repo.NewInMemoryKeyValueRepository())
	defer reg.Close()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	old, err := reg.Get(ctx, "old")
	require.NoError(t, err)
	old.Notifier.Error(ctx, "Failed to fetch products")
	now = now.Add(10 * time.Minute)
	fresh, err := reg.Get(ctx, "fresh")
	require.NoError(t, err)
	fresh.Notifier.Success(ctx, "Added to cart")
	require.Equal(t, 2, reg.Hub().Pending())

	assert.Equal(t, 1, reg.Sweep(5*time.Minute))
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, reg.Hub().Pending())
	assert.Empty(t, reg.Hub().Drain("old"))

	_, err = reg.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}

func TestClose_DropsInboxes(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(repo.NewInMemoryKeyValueRepository())

	v, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	v.Notifier.Error(ctx, "Checkout failed")
	require.Equal(t, 1, reg.Hub().Pending())

	reg.Close()
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, reg.Hub().Pending())
}

func TestNotificationsAreScopedToSession(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(repo.NewInMemoryKeyValueRepository())
	defer reg.Close()

	v, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, v.Cart.AddToCart(ctx, models.Product{ID: 1, Price: decimal.NewFromInt(1), StockQuantity: 1}))

	assert.Len(t, reg.Hub().Drain("s1"), 1)
	assert.Empty(t, reg.Hub().Drain("s2"))
}
