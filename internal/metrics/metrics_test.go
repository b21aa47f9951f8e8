package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New(func() int { return 3 })

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
	}

	m.CheckoutFinished("success")
	m.ImageFetchFailed()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `storefront_http_requests_total{method="GET",route="/products/{id}",status="404"} 2`))
	assert.True(t, strings.Contains(body, `storefront_checkouts_total{outcome="success"} 1`))
	assert.True(t, strings.Contains(body, "storefront_active_visitors 3"))
	assert.True(t, strings.Contains(body, "storefront_image_fetch_failures_total 1"))
}
