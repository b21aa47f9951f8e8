package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int, price int64, stock int) models.Product {
	return models.Product{
		ID:               id,
		Name:             "p",
		Price:            decimal.NewFromInt(price),
		StockQuantity:    stock,
		ProductAvailable: true,
	}
}

func newStore(t *testing.T, r repo.KeyValueRepository) (*Store, *notify.Hub) {
	t.Helper()
	hub := notify.NewHub(nil)
	s := NewStore(r, repo.CartKey("s1"), hub.For("s1"))
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(s.Dispose)
	return s, hub
}

func messages(hub *notify.Hub) []string {
	out := []string{}
	for _, n := range hub.Drain("s1") {
		out = append(out, n.Message)
	}
	return out
}

func TestAddToCart_SameProductTwiceIncrementsSingleEntry(t *testing.T) {
	ctx := context.Background()
	s, hub := newStore(t, repo.NewInMemoryKeyValueRepository())

	require.NoError(t, s.AddToCart(ctx, product(1, 10, 5)))
	require.NoError(t, s.AddToCart(ctx, product(1, 10, 5)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, []string{"Product added to cart", "Quantity updated in cart"}, messages(hub))
}

func TestAddToCart_DoesNotClampToStock(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, repo.NewInMemoryKeyValueRepository())

	for range 3 {
		require.NoError(t, s.AddToCart(ctx, product(1, 10, 1)))
	}
	assert.Equal(t, 3, s.Items()[0].Quantity)
}

func TestIncrease_ClampsToStock(t *testing.T) {
	ctx := context.Background()
	s, hub := newStore(t, repo.NewInMemoryKeyValueRepository())
	require.NoError(t, s.AddToCart(ctx, product(1, 10, 3)))
	hub.Drain("s1")

	for range 5 {
		err := s.Increase(ctx, 1)
		if err != nil {
			assert.ErrorIs(t, err, ErrStockLimit)
		}
		q := s.Items()[0].Quantity
		assert.GreaterOrEqual(t, q, 1)
		assert.LessOrEqual(t, q, 3)
	}
	assert.Equal(t, 3, s.Items()[0].Quantity)
	assert.Contains(t, messages(hub), "Cannot add more than available stock")

	assert.ErrorIs(t, s.Increase(ctx, 99), ErrItemNotFound)
}

func TestDecrease_NeverBelowOne(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, repo.NewInMemoryKeyValueRepository())
	require.NoError(t, s.AddToCart(ctx, product(1, 10, 5)))
	require.NoError(t, s.AddToCart(ctx, product(1, 10, 5)))

	for range 4 {
		require.NoError(t, s.Decrease(ctx, 1))
	}
	items := s.Items()
	require.Len(t, items, 1, "decrease never removes an entry")
	assert.Equal(t, 1, items[0].Quantity)

	assert.ErrorIs(t, s.Decrease(ctx, 2), ErrItemNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	s, hub := newStore(t, repo.NewInMemoryKeyValueRepository())
	require.NoError(t, s.AddToCart(ctx, product(1, 10, 5)))
	require.NoError(t, s.AddToCart(ctx, product(2, 5, 5)))
	hub.Drain("s1")

	require.NoError(t, s.RemoveFromCart(ctx, 1))
	require.NoError(t, s.RemoveFromCart(ctx, 42))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, []string{"Product removed from cart", "Product removed from cart"}, messages(hub))
}

func TestSubtotal(t *testing.T) {
	items := []models.CartItem{
		{Product: product(1, 10, 5), Quantity: 2},
		{Product: product(2, 5, 5), Quantity: 1},
	}
	assert.True(t, Subtotal(items).Equal(decimal.NewFromInt(25)))

	ctx := context.Background()
	s, _ := newStore(t, repo.NewInMemoryKeyValueRepository())
	require.NoError(t, s.AddToCart(ctx, product(1, 10, 5)))
	require.NoError(t, s.AddToCart(ctx, product(1, 10, 5)))
	require.NoError(t, s.AddToCart(ctx, product(2, 5, 5)))
	assert.Equal(t, "25", s.Subtotal().String())
}

func TestSubtotal_DecimalPrices(t *testing.T) {
	items := []models.CartItem{
		{Product: models.Product{ID: 1, Price: decimal.RequireFromString("0.10")}, Quantity: 3},
		{Product: models.Product{ID: 2, Price: decimal.RequireFromString("0.20")}, Quantity: 1},
	}
	assert.Equal(t, "0.50", Subtotal(items).StringFixed(2))
}

func TestClearCart_ReloadIsEmpty(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryKeyValueRepository()
	s, _ := newStore(t, r)
	require.NoError(t, s.AddToCart(ctx, product(1, 10, 5)))
	require.NoError(t, s.ClearCart(ctx))

	reloaded := NewStore(r, repo.CartKey("s1"), nil)
	require.NoError(t, reloaded.Init(ctx))
	defer reloaded.Dispose()
	assert.Empty(t, reloaded.Items())

	blob, err := r.Get(ctx, repo.CartKey("s1"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(blob))
}

func TestInit_RehydratesPersistedCart(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryKeyValueRepository()
	s, _ := newStore(t, r)
	require.NoError(t, s.AddToCart(ctx, product(3, 7, 5)))
	require.NoError(t, s.Increase(ctx, 3))

	again := NewStore(r, repo.CartKey("s1"), nil)
	require.NoError(t, again.Init(ctx))
	defer again.Dispose()

	items := again.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(7)))
}

func TestInit_UnreadableBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryKeyValueRepository()
	require.NoError(t, r.Set(ctx, repo.CartKey("s1"), []byte("not json")))

	s, _ := newStore(t, r)
	assert.Empty(t, s.Items())
}

func TestStore_FollowsWritesFromAnotherStore(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryKeyValueRepository()
	tabA, _ := newStore(t, r)
	tabB, _ := newStore(t, r)

	require.NoError(t, tabA.AddToCart(ctx, product(1, 10, 5)))

	assert.Eventually(t, func() bool {
		items := tabB.Items()
		return len(items) == 1 && items[0].ID == 1
	}, time.Second, 5*time.Millisecond)
}

type failingRepo struct {
	*repo.InMemoryKeyValueRepository
}

func (failingRepo) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestAddToCart_WriteFailureIsReported(t *testing.T) {
	ctx := context.Background()
	s, hub := newStore(t, failingRepo{repo.NewInMemoryKeyValueRepository()})

	err := s.AddToCart(ctx, product(1, 10, 5))
	assert.Error(t, err)
	assert.Len(t, s.Items(), 1, "in-memory state is not rolled back")
	assert.Empty(t, messages(hub))
}
