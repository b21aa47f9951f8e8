package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/storefront/internal/checkout"
)

// CheckoutHandler godoc
// @Summary Check out the cart
// @Description Items are submitted one at a time. A failure stops the run; earlier items stay submitted.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Confirmation"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} CheckoutResponse
// @Router /checkout [post]
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}

	result, err := v.Checkout.Run(r.Context(), req.Confirm)
	switch {
	case errors.Is(err, checkout.ErrNotConfirmed), errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrInProgress):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		if collector != nil {
			collector.CheckoutFinished(string(checkout.StateFailed))
		}
		respond(w, http.StatusBadGateway, CheckoutResponse{Result: result, Notifications: delivered(v)})
	default:
		if collector != nil {
			collector.CheckoutFinished(string(checkout.StateSuccess))
		}
		respond(w, http.StatusOK, CheckoutResponse{Result: result, Notifications: delivered(v)})
	}
}

// GetCheckoutHandler godoc
// @Summary Current checkout state
// @Tags checkout
// @Produce json
// @Success 200 {object} checkout.Result
// @Router /checkout [get]
func GetCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	result := v.Checkout.Last()
	result.State = v.Checkout.State()
	if result.Items == nil {
		result.Items = []checkout.ItemResult{}
	}
	respond(w, http.StatusOK, result)
}
