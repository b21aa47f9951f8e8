package productapi_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/productapi"
	"github.com/rogerio-castellano/storefront/internal/productapi/mockapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*productapi.Client, *mockapi.Server) {
	t.Helper()
	srv := mockapi.NewServer(mockapi.NewInMemoryProductRepository())
	ts := httptest.NewServer(srv.NewRouter())
	t.Cleanup(ts.Close)
	return productapi.NewClientWithHTTP(ts.URL, ts.Client()), srv
}

func TestClient_CreateListGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newClient(t)

	p := models.Product{
		Name:             "ZenBook",
		Brand:            "Asus",
		Price:            decimal.RequireFromString("999.50"),
		Category:         models.CategoryLaptop,
		StockQuantity:    3,
		ProductAvailable: true,
	}
	img := productapi.Image{Name: "zen.png", ContentType: "image/png", Data: []byte("png-bytes")}
	require.NoError(t, c.Create(ctx, p, img))

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ZenBook", list[0].Name)
	assert.True(t, list[0].Price.Equal(decimal.RequireFromString("999.5")))
	assert.Equal(t, "zen.png", list[0].ImageName)

	got, err := c.Get(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQuantity)

	image, err := c.Image(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), image.Data)
	assert.Equal(t, "image/png", image.ContentType)
}

func TestClient_GetMissingIsNotFound(t *testing.T) {
	c, _ := newClient(t)

	_, err := c.Get(context.Background(), 42)
	assert.ErrorIs(t, err, productapi.ErrNotFound)

	var statusErr *productapi.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.Code)
}

func TestClient_UpdateResubmitsImage(t *testing.T) {
	ctx := context.Background()
	c, srv := newClient(t)
	mockapi.Seed(srv.Repo)

	p, err := c.Get(ctx, 1)
	require.NoError(t, err)
	img, err := c.Image(ctx, 1)
	require.NoError(t, err)
	img.Name = p.ImageName

	p.StockQuantity = 1
	require.NoError(t, c.Update(ctx, 1, p, img))

	updated, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.StockQuantity)
	assert.Equal(t, p.ImageName, updated.ImageName)
	assert.Equal(t, []int{1}, srv.UpdateCalls())
}

func TestClient_SearchAndDelete(t *testing.T) {
	ctx := context.Background()
	c, srv := newClient(t)
	mockapi.Seed(srv.Repo)

	found, err := c.Search(ctx, "sony")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "WH-1000XM5", found[0].Name)

	none, err := c.Search(ctx, "nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, c.Delete(ctx, found[0].ID))
	assert.ErrorIs(t, c.Delete(ctx, found[0].ID), productapi.ErrNotFound)
}

func TestClient_ListFailure(t *testing.T) {
	c, srv := newClient(t)
	srv.FailList(true)

	_, err := c.List(context.Background())
	var statusErr *productapi.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.Code)
}
