package handlers_integrated_test_suite

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/shopspring/decimal"
)

func TestCartPersistsInPostgres(t *testing.T) {
	t.Cleanup(remote.Reset)
	r := newRouter()
	id, cookie := newSession(t)

	p := remote.Repo.Create(models.Product{
		Name:             "Laptop",
		Brand:            "Acme",
		Price:            decimal.NewFromInt(900),
		Category:         models.CategoryLaptop,
		StockQuantity:    3,
		ProductAvailable: true,
	}, "image/png", []byte("png"))

	if w := do(r, http.MethodPost, "/cart/items", handlers.AddToCartRequest{ProductID: p.ID}, cookie); w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	raw, err := kvRepo.Get(context.Background(), repo.CartKey(id))
	if err != nil {
		t.Fatalf("expected cart row, got %v", err)
	}
	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("stored cart is not JSON: %v", err)
	}
	if len(items) != 1 || items[0].ID != p.ID || items[0].Quantity != 1 {
		t.Errorf("unexpected stored cart %+v", items)
	}

	visitors.Close()

	w := do(r, http.MethodGet, "/cart", nil, cookie)
	var cart handlers.CartResponse
	json.NewDecoder(w.Body).Decode(&cart)
	if len(cart.Items) != 1 || cart.Items[0].ID != p.ID {
		t.Errorf("expected cart to be rehydrated, got %+v", cart.Items)
	}

	if w := do(r, http.MethodDelete, "/cart", nil, cookie); w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	visitors.Close()
	w = do(r, http.MethodGet, "/cart", nil, cookie)
	cart = handlers.CartResponse{}
	json.NewDecoder(w.Body).Decode(&cart)
	if len(cart.Items) != 0 {
		t.Errorf("expected cleared cart after reload, got %d items", len(cart.Items))
	}
}

func TestThemePersistsInPostgres(t *testing.T) {
	r := newRouter()
	id, cookie := newSession(t)

	if w := do(r, http.MethodPost, "/theme/toggle", nil, cookie); w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	raw, err := kvRepo.Get(context.Background(), repo.ThemeKey(id))
	if err != nil {
		t.Fatalf("expected theme row, got %v", err)
	}
	if string(raw) != string(models.ThemeDark) {
		t.Errorf("expected dark, got %q", raw)
	}
}
