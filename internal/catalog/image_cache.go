package catalog

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/productapi"
)

// handleNamespace scopes image handles so they never collide with other SHA1 UUIDs.
var handleNamespace = uuid.MustParse("8f0c6f8e-5d7a-4f4e-9a53-2f1de6c7b1a4")

// ImageCache maps locally resolvable handles to fetched image bytes. A
// product image always gets the same handle, so refetches overwrite. Each
// product holds at most one handle.
type ImageCache struct {
	mu        sync.RWMutex
	images    map[string]productapi.Image
	byProduct map[int]string
}

func NewImageCache() *ImageCache {
	return &ImageCache{
		images:    map[string]productapi.Image{},
		byProduct: map[int]string{},
	}
}

// Put stores img and returns its handle. A previous handle of the same
// product under another image name is released.
func (c *ImageCache) Put(productID int, name string, img productapi.Image) string {
	handle := uuid.NewSHA1(handleNamespace, []byte(fmt.Sprintf("%d/%s", productID, name))).String()
	c.mu.Lock()
	if old, ok := c.byProduct[productID]; ok && old != handle {
		delete(c.images, old)
	}
	c.images[handle] = img
	c.byProduct[productID] = handle
	c.mu.Unlock()
	return handle
}

// Forget releases the image of productID.
func (c *ImageCache) Forget(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if handle, ok := c.byProduct[productID]; ok {
		delete(c.images, handle)
		delete(c.byProduct, productID)
	}
}

// Retain releases the images of every product not in products.
func (c *ImageCache) Retain(products []models.Product) {
	keep := make(map[int]struct{}, len(products))
	for _, p := range products {
		keep[p.ID] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, handle := range c.byProduct {
		if _, ok := keep[id]; !ok {
			delete(c.images, handle)
			delete(c.byProduct, id)
		}
	}
}

func (c *ImageCache) Get(handle string) (productapi.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[handle]
	return img, ok
}

func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageURL is the path the storefront serves a handle under.
func ImageURL(handle string) string {
	return "/images/" + handle
}
