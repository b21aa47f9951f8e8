package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/productapi"
	"github.com/shopspring/decimal"
)

// ProductForm is the add/edit product submission.
type ProductForm struct {
	Name             string          `json:"name" validate:"required"`
	Brand            string          `json:"brand" validate:"required"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Category         string          `json:"category" validate:"required,oneof=Laptop Headphone Mobile Electronics Toys Fashion"`
	StockQuantity    int             `json:"stockQuantity" validate:"gte=0"`
	ReleaseDate      string          `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	ProductAvailable bool            `json:"productAvailable"`
}

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationError lists every rejected field of a ProductForm.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid product: %d field error(s)", len(e.Fields))
}

var ErrImageRequired = errors.New("product image is required")

// Manager performs the product create, update and delete operations.
type Manager struct {
	remote   Remote
	images   *ImageCache
	validate *validator.Validate
}

// NewManager returns a Manager that releases cached images of products it
// changes. images may be nil.
func NewManager(remote Remote, images *ImageCache) *Manager {
	return &Manager{remote: remote, images: images, validate: validator.New()}
}

func (m *Manager) forgetImage(id int) {
	if m.images != nil {
		m.images.Forget(id)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "gte":
		return fe.Field() + " cannot be negative"
	case "datetime":
		return fe.Field() + " must be a YYYY-MM-DD date"
	}
	return fe.Field() + " is invalid"
}

// Validate checks the form and converts it into a product record.
func (m *Manager) Validate(form ProductForm) (models.Product, error) {
	var fields []FieldError
	if err := m.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.Product{}, err
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Description: describe(fe)})
		}
	}
	if form.Price.IsNegative() {
		fields = append(fields, FieldError{Field: "Price", Description: "Price cannot be negative"})
	}
	if len(fields) > 0 {
		return models.Product{}, &ValidationError{Fields: fields}
	}

	date, err := models.ParseDate(form.ReleaseDate)
	if err != nil {
		return models.Product{}, &ValidationError{Fields: []FieldError{{Field: "ReleaseDate", Description: err.Error()}}}
	}
	return models.Product{
		Name:             form.Name,
		Brand:            form.Brand,
		Description:      form.Description,
		Price:            form.Price,
		Category:         models.Category(form.Category),
		StockQuantity:    form.StockQuantity,
		ReleaseDate:      date,
		ProductAvailable: form.ProductAvailable,
	}, nil
}

// Create validates form and submits it with img.
func (m *Manager) Create(ctx context.Context, n notify.Notifier, form ProductForm, img *productapi.Image) error {
	err := m.create(ctx, form, img)
	if err != nil {
		n.Error(ctx, "Failed to add product")
		return err
	}
	n.Success(ctx, "Product added successfully!")
	return nil
}

func (m *Manager) create(ctx context.Context, form ProductForm, img *productapi.Image) error {
	p, err := m.Validate(form)
	if err != nil {
		return err
	}
	if img == nil || img.Empty() {
		return ErrImageRequired
	}
	p.ImageName = img.Name
	p.ImageType = img.ContentType
	if err := m.remote.Create(ctx, p, *img); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces product id. Without a new image the current one is
// fetched and resubmitted, because the remote update requires it.
func (m *Manager) Update(ctx context.Context, n notify.Notifier, id int, form ProductForm, img *productapi.Image) error {
	err := m.update(ctx, id, form, img)
	if err != nil {
		n.Error(ctx, "Failed to update product")
		return err
	}
	n.Success(ctx, "Product updated successfully!")
	return nil
}

func (m *Manager) update(ctx context.Context, id int, form ProductForm, img *productapi.Image) error {
	p, err := m.Validate(form)
	if err != nil {
		return err
	}
	p.ID = id

	if img == nil || img.Empty() {
		current, err := m.remote.Get(ctx, id)
		if err != nil {
			if errors.Is(err, productapi.ErrNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("failed to load product %d: %w", id, err)
		}
		existing, err := m.remote.Image(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load image of product %d: %w", id, err)
		}
		existing.Name = current.ImageName
		img = &existing
	}
	p.ImageName = img.Name
	p.ImageType = img.ContentType

	if err := m.remote.Update(ctx, id, p, *img); err != nil {
		if errors.Is(err, productapi.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to update product %d: %w", id, err)
	}
	m.forgetImage(id)
	return nil
}

func (m *Manager) Delete(ctx context.Context, n notify.Notifier, id int) error {
	if err := m.remote.Delete(ctx, id); err != nil {
		n.Error(ctx, "Failed to delete product")
		if errors.Is(err, productapi.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	m.forgetImage(id)
	n.Success(ctx, "Product deleted successfully")
	return nil
}
