package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/storefront/internal/obs"
)

// GetThemeHandler godoc
// @Summary Current theme
// @Tags theme
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /theme [get]
func GetThemeHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, ThemeResponse{Theme: v.Theme.Current()})
}

// ToggleThemeHandler godoc
// @Summary Switch between light and dark
// @Tags theme
// @Produce json
// @Success 200 {object} ThemeResponse
// @Failure 500 {string} string "Internal error"
// @Router /theme/toggle [post]
func ToggleThemeHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	t, err := v.Theme.Toggle(r.Context())
	if err != nil {
		obs.Logger.Error("theme write failed", "error", err)
		http.Error(w, "could not save theme", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, ThemeResponse{Theme: t})
}
