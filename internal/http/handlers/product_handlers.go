package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/storefront/internal/catalog"
	"github.com/rogerio-castellano/storefront/internal/obs"
)

// GetProductsHandler godoc
// @Summary List the catalog
// @Description Products joined with their image URLs, optionally filtered by category
// @Tags products
// @Produce json
// @Param category query string false "Exact category token"
// @Success 200 {array} catalog.Listing
// @Failure 502 {object} ErrorResponse
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	listings, err := catalogSvc.List(r.Context())
	if err != nil {
		obs.Logger.Error("product list failed", "error", err)
		v.Notifier.Error(r.Context(), "Failed to fetch products")
		writeError(w, http.StatusBadGateway, "failed to fetch products")
		return
	}
	respond(w, http.StatusOK, catalog.FilterByCategory(listings, r.URL.Query().Get("category")))
}

// SearchProductsHandler godoc
// @Summary Search products by keyword
// @Tags products
// @Produce json
// @Param keyword query string true "Keyword"
// @Success 200 {array} models.Product
// @Failure 502 {object} ErrorResponse
// @Router /products/search [get]
func SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := catalogSvc.Search(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		obs.Logger.Error("product search failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to search products")
		return
	}
	respond(w, http.StatusOK, products)
}

// GetProductByIDHandler godoc
// @Summary Get product detail
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} catalog.Listing
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 502 {object} ErrorResponse
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}
	listing, err := catalogSvc.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		obs.Logger.Error("product detail failed", "product_id", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch product")
		return
	}
	respond(w, http.StatusOK, listing)
}

// writeManagerError maps a product management failure to a response.
func writeManagerError(w http.ResponseWriter, err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		respond(w, http.StatusBadRequest, ProductValidationResponse{Error: "invalid product", Fields: verr.Fields})
	case errors.Is(err, catalog.ErrImageRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	default:
		obs.Logger.Error("product management failed", "error", err)
		writeError(w, http.StatusBadGateway, "product service request failed")
	}
}

// CreateProductHandler godoc
// @Summary Add a product
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BasicAuth
// @Param product formData string true "Product JSON"
// @Param imageFile formData file true "Product image"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ProductValidationResponse
// @Failure 502 {object} ErrorResponse
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	form, img, err := readProductSubmission(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := productManager.Create(r.Context(), v.Notifier, form, img); err != nil {
		writeManagerError(w, err)
		return
	}
	respond(w, http.StatusCreated, MessageResponse{Message: "product created", Notifications: delivered(v)})
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Without a new image the current one is kept
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BasicAuth
// @Param id path int true "Product ID"
// @Param product formData string true "Product JSON"
// @Param imageFile formData file false "New product image"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ProductValidationResponse
// @Failure 404 {string} string "Not found"
// @Failure 502 {object} ErrorResponse
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	form, img, err := readProductSubmission(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := productManager.Update(r.Context(), v.Notifier, id, form, img); err != nil {
		writeManagerError(w, err)
		return
	}
	respond(w, http.StatusOK, MessageResponse{Message: "product updated", Notifications: delivered(v)})
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Security BasicAuth
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {string} string "Not found"
// @Failure 502 {object} ErrorResponse
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	if err := productManager.Delete(r.Context(), v.Notifier, id); err != nil {
		writeManagerError(w, err)
		return
	}
	respond(w, http.StatusOK, MessageResponse{Message: "product deleted", Notifications: delivered(v)})
}
