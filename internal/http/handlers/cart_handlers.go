package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/storefront/internal/cart"
	"github.com/rogerio-castellano/storefront/internal/catalog"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/obs"
	"github.com/rogerio-castellano/storefront/internal/visitor"
)

func cartResponse(r *http.Request, v *visitor.Visitor) CartResponse {
	items := v.Cart.Items()
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return CartResponse{
		Items:         catalogSvc.CartLines(r.Context(), items),
		Count:         count,
		Subtotal:      cart.Subtotal(items),
		Notifications: delivered(v),
	}
}

// writeCartError maps a cart mutation failure to a response.
func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		http.Error(w, "item not in cart", http.StatusNotFound)
	case errors.Is(err, cart.ErrStockLimit):
		writeError(w, http.StatusConflict, err.Error())
	default:
		obs.Logger.Error("cart write failed", "error", err)
		http.Error(w, "could not save cart", http.StatusInternalServerError)
	}
}

// GetCartHandler godoc
// @Summary Current cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /cart [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, cartResponse(r, v))
}

// AddToCartHandler godoc
// @Summary Add a product to the cart
// @Description Adding a product already in the cart increments its quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddToCartRequest true "Product to add"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /cart/items [post]
func AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}

	p, err := catalogSvc.Product(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		obs.Logger.Error("product fetch failed", "product_id", req.ProductID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch product")
		return
	}
	if !models.Available(p) {
		writeError(w, http.StatusConflict, "product unavailable")
		return
	}

	if err := v.Cart.AddToCart(r.Context(), p); err != nil {
		writeCartError(w, err)
		return
	}
	respond(w, http.StatusOK, cartResponse(r, v))
}

// IncreaseCartItemHandler godoc
// @Summary Increase the quantity of a cart item
// @Description Quantity never exceeds the stock of the product
// @Tags cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Not in cart"
// @Failure 409 {object} ErrorResponse
// @Router /cart/items/{id}/increase [post]
func IncreaseCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	if err := v.Cart.Increase(r.Context(), id); err != nil {
		writeCartError(w, err)
		return
	}
	respond(w, http.StatusOK, cartResponse(r, v))
}

// DecreaseCartItemHandler godoc
// @Summary Decrease the quantity of a cart item
// @Description Quantity never goes below one
// @Tags cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Not in cart"
// @Router /cart/items/{id}/decrease [post]
func DecreaseCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	if err := v.Cart.Decrease(r.Context(), id); err != nil {
		writeCartError(w, err)
		return
	}
	respond(w, http.StatusOK, cartResponse(r, v))
}

// RemoveCartItemHandler godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} CartResponse
// @Router /cart/items/{id} [delete]
func RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	if err := v.Cart.RemoveFromCart(r.Context(), id); err != nil {
		writeCartError(w, err)
		return
	}
	respond(w, http.StatusOK, cartResponse(r, v))
}

// ClearCartHandler godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /cart [delete]
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	if err := v.Cart.ClearCart(r.Context()); err != nil {
		writeCartError(w, err)
		return
	}
	respond(w, http.StatusOK, cartResponse(r, v))
}
