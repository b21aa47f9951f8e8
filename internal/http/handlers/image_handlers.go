package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetImageHandler godoc
// @Summary Product image by handle
// @Tags images
// @Produce octet-stream
// @Param handle path string true "Image handle"
// @Success 200 {file} binary
// @Failure 404 {string} string "Not found"
// @Router /images/{handle} [get]
func GetImageHandler(w http.ResponseWriter, r *http.Request) {
	img, ok := catalogSvc.Images().Get(chi.URLParam(r, "handle"))
	if !ok {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(img.Data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}
