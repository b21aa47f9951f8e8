package checkout_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rogerio-castellano/storefront/internal/cart"
	"github.com/rogerio-castellano/storefront/internal/checkout"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/productapi"
	"github.com/rogerio-castellano/storefront/internal/productapi/mockapi"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv  *mockapi.Server
	cart *cart.Store
	hub  *notify.Hub
	flow *checkout.Flow
}

func setup(t *testing.T) fixture {
	t.Helper()
	srv := mockapi.NewServer(mockapi.NewInMemoryProductRepository())
	ts := httptest.NewServer(srv.NewRouter())
	t.Cleanup(ts.Close)
	client := productapi.NewClientWithHTTP(ts.URL, ts.Client())

	hub := notify.NewHub(nil)
	store := cart.NewStore(repo.NewInMemoryKeyValueRepository(), repo.CartKey("s1"), notify.Discard)
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(store.Dispose)

	return fixture{srv: srv, cart: store, hub: hub, flow: checkout.NewFlow(client, store, hub.For("s1"))}
}

func (f fixture) addProduct(t *testing.T, name string, stock int) models.Product {
	t.Helper()
	p := f.srv.Repo.Create(models.Product{
		Name:             name,
		Brand:            "Acme",
		Price:            decimal.NewFromInt(10),
		Category:         models.CategoryElectronics,
		StockQuantity:    stock,
		ProductAvailable: true,
		ImageName:        name + ".png",
	}, "image/png", []byte{1, 2, 3})
	return p
}

func (f fixture) messages() []string {
	out := []string{}
	for _, n := range f.hub.Drain("s1") {
		out = append(out, n.Message)
	}
	return out
}

func TestRun_RequiresConfirmation(t *testing.T) {
	f := setup(t)
	p := f.addProduct(t, "a", 3)
	require.NoError(t, f.cart.AddToCart(context.Background(), p))

	_, err := f.flow.Run(context.Background(), false)
	assert.ErrorIs(t, err, checkout.ErrNotConfirmed)
	assert.Empty(t, f.srv.UpdateCalls())
	assert.Equal(t, checkout.StateIdle, f.flow.State())
}

func TestRun_EmptyCart(t *testing.T) {
	f := setup(t)

	_, err := f.flow.Run(context.Background(), true)
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Empty(t, f.srv.UpdateCalls())
}

func TestRun_SuccessDecrementsStockAndClearsCart(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.addProduct(t, "a", 5)
	b := f.addProduct(t, "b", 2)
	require.NoError(t, f.cart.AddToCart(ctx, a))
	require.NoError(t, f.cart.AddToCart(ctx, a))
	require.NoError(t, f.cart.AddToCart(ctx, b))

	res, err := f.flow.Run(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, checkout.StateSuccess, res.State)
	assert.Equal(t, checkout.StateSuccess, f.flow.State())
	assert.Equal(t, []int{a.ID, b.ID}, f.srv.UpdateCalls())
	require.Len(t, res.Items, 2)
	assert.Equal(t, 3, res.Items[0].UpdatedStock)
	assert.Equal(t, 1, res.Items[1].UpdatedStock)

	stored, err := f.srv.Repo.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.StockQuantity)
	assert.Equal(t, "a.png", stored.ImageName)

	ct, data, err := f.srv.Repo.Image(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, []byte{1, 2, 3}, data)

	assert.Empty(t, f.cart.Items())
	assert.Equal(t, []string{"Checkout successful!"}, f.messages())
	assert.Equal(t, res, f.flow.Last())
}

func TestRun_SecondItemFailureKeepsFirstUpdate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.addProduct(t, "a", 5)
	b := f.addProduct(t, "b", 5)
	c := f.addProduct(t, "c", 5)
	for _, p := range []models.Product{a, b, c} {
		require.NoError(t, f.cart.AddToCart(ctx, p))
	}
	f.srv.FailUpdate(b.ID)

	res, err := f.flow.Run(ctx, true)
	require.Error(t, err)

	assert.Equal(t, checkout.StateFailed, res.State)
	assert.Equal(t, checkout.ItemSubmitted, res.Items[0].Status)
	assert.Equal(t, checkout.ItemFailed, res.Items[1].Status)
	assert.NotEmpty(t, res.Items[1].Error)
	assert.Equal(t, checkout.ItemNotAttempted, res.Items[2].Status)
	assert.Equal(t, []int{a.ID, b.ID}, f.srv.UpdateCalls())

	stored, err := f.srv.Repo.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.StockQuantity)
	stored, err = f.srv.Repo.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.StockQuantity)

	assert.Len(t, f.cart.Items(), 3)
	assert.Equal(t, []string{"Checkout failed"}, f.messages())
}

func TestRun_ImageFetchFailureFailsItem(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.addProduct(t, "a", 5)
	require.NoError(t, f.cart.AddToCart(ctx, a))
	f.srv.FailImage(a.ID)

	res, err := f.flow.Run(ctx, true)
	require.Error(t, err)
	assert.Equal(t, checkout.StateFailed, res.State)
	assert.Empty(t, f.srv.UpdateCalls())
}

func TestRun_OversizedImageFailsItemWithoutUpload(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	big := bytes.Repeat([]byte{7}, 11<<20)
	p := f.srv.Repo.Create(models.Product{
		Name:             "poster",
		Brand:            "Acme",
		Price:            decimal.NewFromInt(10),
		Category:         models.CategoryElectronics,
		StockQuantity:    5,
		ProductAvailable: true,
		ImageName:        "poster.png",
	}, "image/png", big)
	require.NoError(t, f.cart.AddToCart(ctx, p))

	res, err := f.flow.Run(ctx, true)
	require.ErrorIs(t, err, productapi.ErrImageTooLarge)
	assert.Equal(t, checkout.StateFailed, res.State)
	require.Len(t, res.Items, 1)
	assert.Equal(t, checkout.ItemFailed, res.Items[0].Status)
	assert.Empty(t, f.srv.UpdateCalls())

	_, data, err := f.srv.Repo.Image(p.ID)
	require.NoError(t, err)
	assert.Len(t, data, len(big))
	stored, err := f.srv.Repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.StockQuantity)
	assert.Len(t, f.cart.Items(), 1)
}

func TestRun_RestartableAfterFailure(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.addProduct(t, "a", 5)
	require.NoError(t, f.cart.AddToCart(ctx, a))
	f.srv.FailUpdate(a.ID)

	_, err := f.flow.Run(ctx, true)
	require.Error(t, err)

	f.srv.Reset()
	a = f.addProduct(t, "a", 5)
	require.NoError(t, f.cart.ClearCart(ctx))
	require.NoError(t, f.cart.AddToCart(ctx, a))

	res, err := f.flow.Run(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateSuccess, res.State)
}
