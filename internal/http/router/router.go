package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/storefront/docs"
	"github.com/rogerio-castellano/storefront/internal/auth"
	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	mw "github.com/rogerio-castellano/storefront/internal/http/middleware"
	rl "github.com/rogerio-castellano/storefront/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront/internal/metrics"
	"github.com/rogerio-castellano/storefront/internal/obs"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Config struct {
	Sessions *auth.Sessions
	Admin    *auth.Admin
	Limiter  *rl.Limiter
	Metrics  *metrics.Metrics
}

func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(obs.RequestLogger)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Get("/images/{handle}", handlers.GetImageHandler)

	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Middleware)
		}
		r.Use(mw.Session(cfg.Sessions))

		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/search", handlers.SearchProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.AdminOnly(cfg.Admin))
			r.Post("/products", handlers.CreateProductHandler)
			r.Put("/products/{id}", handlers.UpdateProductHandler)
			r.Delete("/products/{id}", handlers.DeleteProductHandler)
			r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
		})

		r.Get("/cart", handlers.GetCartHandler)
		r.Delete("/cart", handlers.ClearCartHandler)
		r.Post("/cart/items", handlers.AddToCartHandler)
		r.Post("/cart/items/{id}/increase", handlers.IncreaseCartItemHandler)
		r.Post("/cart/items/{id}/decrease", handlers.DecreaseCartItemHandler)
		r.Delete("/cart/items/{id}", handlers.RemoveCartItemHandler)

		r.Post("/checkout", handlers.CheckoutHandler)
		r.Get("/checkout", handlers.GetCheckoutHandler)

		r.Get("/theme", handlers.GetThemeHandler)
		r.Post("/theme/toggle", handlers.ToggleThemeHandler)

		r.Get("/notifications", handlers.GetNotificationsHandler)
	})
	return r
}
