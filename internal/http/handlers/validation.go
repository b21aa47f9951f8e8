package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/storefront/internal/catalog"
	"github.com/rogerio-castellano/storefront/internal/productapi"
)

const maxFormBytes = 10 << 20

// readProductSubmission decodes an add/edit submission: a "product" part
// holding the JSON record, sent either as a file part or a plain field,
// and an optional "imageFile" part.
func readProductSubmission(r *http.Request) (catalog.ProductForm, *productapi.Image, error) {
	var form catalog.ProductForm
	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		return form, nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	var raw []byte
	if f, _, err := r.FormFile("product"); err == nil {
		defer f.Close()
		if raw, err = io.ReadAll(f); err != nil {
			return form, nil, err
		}
	} else {
		raw = []byte(r.FormValue("product"))
	}
	if err := json.Unmarshal(raw, &form); err != nil {
		return form, nil, fmt.Errorf("invalid product part: %w", err)
	}

	f, hdr, err := r.FormFile("imageFile")
	if err != nil {
		return form, nil, nil
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return form, nil, fmt.Errorf("failed to read image: %w", err)
	}
	contentType := hdr.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return form, &productapi.Image{Name: hdr.Filename, ContentType: contentType, Data: data}, nil
}
