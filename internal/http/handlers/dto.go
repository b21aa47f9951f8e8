package handlers

import (
	"github.com/rogerio-castellano/storefront/internal/catalog"
	"github.com/rogerio-castellano/storefront/internal/checkout"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message       string                `json:"message"`
	Notifications []notify.Notification `json:"notifications"`
}

type ProductValidationResponse struct {
	Error  string               `json:"error"`
	Fields []catalog.FieldError `json:"fields"`
}

type AddToCartRequest struct {
	ProductID int `json:"productId"`
}

type CartResponse struct {
	Items         []catalog.CartLine    `json:"items"`
	Count         int                   `json:"count"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Notifications []notify.Notification `json:"notifications"`
}

type CheckoutRequest struct {
	Confirm bool `json:"confirm"`
}

type CheckoutResponse struct {
	checkout.Result
	Notifications []notify.Notification `json:"notifications"`
}

type ThemeResponse struct {
	Theme models.Theme `json:"theme"`
}
