// Package catalog builds the renderable product records of the catalog,
// detail and cart views by joining product records with their images.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/obs"
	"github.com/rogerio-castellano/storefront/internal/productapi"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCatalogUnavailable = errors.New("product catalog unavailable")
	ErrProductNotFound    = errors.New("product not found")
)

// Remote is the part of the remote product service the catalog reads from
// and the manager writes to.
type Remote interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int) (models.Product, error)
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	Image(ctx context.Context, id int) (productapi.Image, error)
	Create(ctx context.Context, p models.Product, img productapi.Image) error
	Update(ctx context.Context, id int, p models.Product, img productapi.Image) error
	Delete(ctx context.Context, id int) error
}

// Listing is a product joined with its image handle. ImageURL is nil when
// the product has no usable image; clients render a placeholder.
type Listing struct {
	models.Product
	ImageURL  *string `json:"imageUrl"`
	Available bool    `json:"available"`
}

// CartLine is a cart entry joined with its image handle.
type CartLine struct {
	models.CartItem
	ImageURL  *string `json:"imageUrl"`
	LineTotal string  `json:"lineTotal"`
}

type Catalog struct {
	remote      Remote
	images      *ImageCache
	concurrency int
	onImageFail func()
}

func New(remote Remote, images *ImageCache, concurrency int) *Catalog {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Catalog{remote: remote, images: images, concurrency: concurrency}
}

func (c *Catalog) Images() *ImageCache {
	return c.images
}

// OnImageFailure registers fn to be called for every image that could not
// be fetched.
func (c *Catalog) OnImageFailure(fn func()) {
	c.onImageFail = fn
}

// fetchImage returns the handle URL of the product image, or nil when the
// payload is empty or the request fails.
func (c *Catalog) fetchImage(ctx context.Context, id int, name string) *string {
	img, err := c.remote.Image(ctx, id)
	if err != nil {
		obs.Logger.Warn("image fetch failed", "product_id", id, "error", err)
		if c.onImageFail != nil {
			c.onImageFail()
		}
		return nil
	}
	if img.Empty() {
		c.images.Forget(id)
		return nil
	}
	img.Name = name
	url := ImageURL(c.images.Put(id, name, img))
	return &url
}

// joinImages fetches one image per product concurrently. The result is
// aligned with products; an individual failure only nils its own slot.
func (c *Catalog) joinImages(ctx context.Context, products []models.Product) []*string {
	urls := make([]*string, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, p := range products {
		g.Go(func() error {
			urls[i] = c.fetchImage(gctx, p.ID, p.ImageName)
			return nil
		})
	}
	g.Wait()
	return urls
}

// JoinImages attaches image handles to products, preserving their order.
func (c *Catalog) JoinImages(ctx context.Context, products []models.Product) []Listing {
	urls := c.joinImages(ctx, products)
	listings := make([]Listing, len(products))
	for i, p := range products {
		listings[i] = Listing{Product: p, ImageURL: urls[i], Available: models.Available(p)}
	}
	return listings
}

// List fetches the product list and joins images. Only a failure of the
// list request itself is an error.
func (c *Catalog) List(ctx context.Context) ([]Listing, error) {
	products, err := c.remote.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	c.images.Retain(products)
	return c.JoinImages(ctx, products), nil
}

// Detail fetches one product and, when it names an image, the image.
func (c *Catalog) Detail(ctx context.Context, id int) (Listing, error) {
	p, err := c.remote.Get(ctx, id)
	if err != nil {
		if errors.Is(err, productapi.ErrNotFound) {
			return Listing{}, ErrProductNotFound
		}
		return Listing{}, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	l := Listing{Product: p, Available: models.Available(p)}
	if p.ImageName != "" {
		l.ImageURL = c.fetchImage(ctx, p.ID, p.ImageName)
	}
	return l, nil
}

// Product fetches the bare record, as needed before adding it to a cart.
func (c *Catalog) Product(ctx context.Context, id int) (models.Product, error) {
	p, err := c.remote.Get(ctx, id)
	if errors.Is(err, productapi.ErrNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Search returns keyword matches. An empty keyword matches nothing.
func (c *Catalog) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	if keyword == "" {
		return []models.Product{}, nil
	}
	return c.remote.Search(ctx, keyword)
}

// CartLines joins cart items with their images.
func (c *Catalog) CartLines(ctx context.Context, items []models.CartItem) []CartLine {
	products := make([]models.Product, len(items))
	for i, item := range items {
		products[i] = item.Product
	}
	urls := c.joinImages(ctx, products)
	lines := make([]CartLine, len(items))
	for i, item := range items {
		lines[i] = CartLine{CartItem: item, ImageURL: urls[i], LineTotal: item.LineTotal().StringFixed(2)}
	}
	return lines
}

// FilterByCategory returns the listings whose category equals token. An
// empty token returns the input unchanged.
func FilterByCategory(listings []Listing, token string) []Listing {
	if token == "" {
		return listings
	}
	filtered := []Listing{}
	for _, l := range listings {
		if string(l.Category) == token {
			filtered = append(filtered, l)
		}
	}
	return filtered
}
