package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rogerio-castellano/storefront/internal/checkout"
	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	"github.com/rogerio-castellano/storefront/internal/models"
)

func postCheckout(r http.Handler, cookie *http.Cookie, confirm bool) (handlers.CheckoutResponse, int) {
	body, _ := json.Marshal(handlers.CheckoutRequest{Confirm: confirm})
	w := do(r, http.MethodPost, "/checkout", body, cookie)
	var resp handlers.CheckoutResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp, w.Code
}

func TestCheckoutHandler_Success(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	cookie := newSession()
	a := seedProduct("A", models.CategoryToys, 10, 5, true)
	b := seedProduct("B", models.CategoryToys, 5, 3, true)
	addToCart(r, cookie, a.ID)
	addToCart(r, cookie, a.ID)
	addToCart(r, cookie, b.ID)

	resp, code := postCheckout(r, cookie, true)
	if code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", code)
	}
	if resp.State != checkout.StateSuccess {
		t.Errorf("expected success, got %s", resp.State)
	}
	if got := messagesOf(resp.Notifications); len(got) != 1 || got[0] != "Checkout successful!" {
		t.Errorf("unexpected notifications %v", got)
	}

	stored, _ := remote.Repo.GetByID(a.ID)
	if stored.StockQuantity != 3 {
		t.Errorf("expected stock 3 for A, got %d", stored.StockQuantity)
	}
	stored, _ = remote.Repo.GetByID(b.ID)
	if stored.StockQuantity != 2 {
		t.Errorf("expected stock 2 for B, got %d", stored.StockQuantity)
	}

	cart, _ := getCart(r, cookie)
	if len(cart.Items) != 0 {
		t.Errorf("expected cart to be cleared, got %d items", len(cart.Items))
	}

	w := do(r, http.MethodGet, "/checkout", nil, cookie)
	var state checkout.Result
	json.NewDecoder(w.Body).Decode(&state)
	if state.State != checkout.StateSuccess || len(state.Items) != 2 {
		t.Errorf("unexpected checkout state %+v", state)
	}
}

func TestCheckoutHandler_PartialFailure(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	cookie := newSession()
	a := seedProduct("A", models.CategoryToys, 10, 5, true)
	b := seedProduct("B", models.CategoryToys, 5, 3, true)
	addToCart(r, cookie, a.ID)
	addToCart(r, cookie, b.ID)
	remote.FailUpdate(b.ID)

	resp, code := postCheckout(r, cookie, true)
	if code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", code)
	}
	if resp.State != checkout.StateFailed {
		t.Errorf("expected failed, got %s", resp.State)
	}
	if len(resp.Items) != 2 || resp.Items[0].Status != checkout.ItemSubmitted || resp.Items[1].Status != checkout.ItemFailed {
		t.Errorf("unexpected item results %+v", resp.Items)
	}
	if got := messagesOf(resp.Notifications); len(got) != 1 || got[0] != "Checkout failed" {
		t.Errorf("unexpected notifications %v", got)
	}

	stored, _ := remote.Repo.GetByID(a.ID)
	if stored.StockQuantity != 4 {
		t.Errorf("expected first item to stay updated at 4, got %d", stored.StockQuantity)
	}
	cart, _ := getCart(r, cookie)
	if len(cart.Items) != 2 {
		t.Errorf("expected cart to be kept, got %d items", len(cart.Items))
	}
}

func TestCheckoutHandler_Rejections(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	cookie := newSession()

	if _, code := postCheckout(r, cookie, true); code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty cart, got %d", code)
	}

	p := seedProduct("A", models.CategoryToys, 10, 5, true)
	addToCart(r, cookie, p.ID)
	if _, code := postCheckout(r, cookie, false); code != http.StatusBadRequest {
		t.Errorf("expected 400 without confirmation, got %d", code)
	}
	if calls := remote.UpdateCalls(); len(calls) != 0 {
		t.Errorf("expected no remote update, got %v", calls)
	}
}
