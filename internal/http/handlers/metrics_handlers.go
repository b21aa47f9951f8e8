package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/storefront/internal/obs"
)

// GetDashboardMetricsHandler godoc
// @Summary Catalog metrics for admin view
// @Tags metrics
// @Produce json
// @Security BasicAuth
// @Success 200 {object} catalog.Dashboard
// @Failure 502 {object} ErrorResponse
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	d, err := catalogSvc.Dashboard(r.Context())
	if err != nil {
		obs.Logger.Error("dashboard failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch metrics")
		return
	}
	respond(w, http.StatusOK, d)
}
