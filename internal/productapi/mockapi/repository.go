package mockapi

import (
	"errors"
	"strings"
	"sync"

	"github.com/rogerio-castellano/storefront/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

type storedImage struct {
	contentType string
	data        []byte
}

// InMemoryProductRepository holds the products and images of the mock service.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	images   map[int]storedImage
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		images:   map[int]storedImage{},
		nextID:   1,
	}
}

func matchesKeyword(p models.Product, keyword string) bool {
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(p.Name), k) ||
		strings.Contains(strings.ToLower(p.Brand), k) ||
		strings.Contains(strings.ToLower(p.Description), k) ||
		strings.Contains(strings.ToLower(string(p.Category)), k)
}

// Create adds a product and its image; the product gets the next id.
func (r *InMemoryProductRepository) Create(product models.Product, contentType string, image []byte) models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	r.images[product.ID] = storedImage{contentType: contentType, data: image}
	return product
}

func (r *InMemoryProductRepository) GetAll() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Product(nil), r.products...)
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Search(keyword string) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := []models.Product{}
	for _, p := range r.products {
		if matchesKeyword(p, keyword) {
			found = append(found, p)
		}
	}
	return found
}

// Update replaces the product record and its image.
func (r *InMemoryProductRepository) Update(product models.Product, contentType string, image []byte) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			r.images[product.ID] = storedImage{contentType: contentType, data: image}
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			delete(r.images, id)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Image(id int) (string, []byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[id]
	if !ok {
		return "", nil, ErrProductNotFound
	}
	return img.contentType, img.data, nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
	r.images = map[int]storedImage{}
	r.nextID = 1
}
