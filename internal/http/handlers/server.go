package handlers

import (
	"github.com/rogerio-castellano/storefront/internal/catalog"
	"github.com/rogerio-castellano/storefront/internal/metrics"
	"github.com/rogerio-castellano/storefront/internal/visitor"
)

var (
	catalogSvc     *catalog.Catalog
	productManager *catalog.Manager
	visitors       *visitor.Registry
	collector      *metrics.Metrics
)

func SetCatalog(c *catalog.Catalog) {
	catalogSvc = c
}

func SetProductManager(m *catalog.Manager) {
	productManager = m
}

func SetVisitorRegistry(r *visitor.Registry) {
	visitors = r
}

func SetMetrics(m *metrics.Metrics) {
	collector = m
}
