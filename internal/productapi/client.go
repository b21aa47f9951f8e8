// Package productapi is the HTTP client of the remote product service, the
// authoritative store of product records and images.
package productapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/rogerio-castellano/storefront/internal/models"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrImageTooLarge = errors.New("product image too large")
)

const maxImageBytes = 10 << 20

// StatusError is returned for any non-2xx answer of the remote service.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Image is a binary product image as served by the remote service.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Client talks to the remote product service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP is used by tests to reuse an httptest server client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(msg)}
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: failed to decode response: %w", path, err)
	}
	return nil
}

// List returns every product.
func (c *Client) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Get returns one product; ErrNotFound matches when it does not exist.
func (c *Client) Get(ctx context.Context, id int) (models.Product, error) {
	var p models.Product
	if err := c.getJSON(ctx, "/products/"+strconv.Itoa(id), &p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Search returns the products matching keyword.
func (c *Client) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/products/search?keyword="+url.QueryEscape(keyword), &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Image returns the product image. An empty Data slice is a valid answer.
func (c *Client) Image(ctx context.Context, id int) (Image, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products/"+strconv.Itoa(id)+"/image", nil, "")
	if err != nil {
		return Image{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image of product %d: %w", id, err)
	}
	if len(data) > maxImageBytes {
		return Image{}, fmt.Errorf("image of product %d exceeds %d bytes: %w", id, maxImageBytes, ErrImageTooLarge)
	}
	return Image{ContentType: resp.Header.Get("Content-Type"), Data: data}, nil
}

// Create submits a new product with its image.
func (c *Client) Create(ctx context.Context, p models.Product, img Image) error {
	body, contentType, err := productForm(p, img)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, "/products", body, contentType)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Update replaces every field and the image of product id. The remote
// service has no partial update, so the image is always resubmitted.
func (c *Client) Update(ctx context.Context, id int, p models.Product, img Image) error {
	body, contentType, err := productForm(p, img)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPut, "/products/"+strconv.Itoa(id), body, contentType)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c *Client) Delete(ctx context.Context, id int) error {
	resp, err := c.do(ctx, http.MethodDelete, "/products/"+strconv.Itoa(id), nil, "")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// productForm builds the multipart body: an "imageFile" file part and a
// "product" part holding the JSON record.
func productForm(p models.Product, img Image) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := img.Name
	if name == "" {
		name = p.ImageName
	}
	if name == "" {
		name = "image"
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageFile"; filename=%q`, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}

	record, err := json.Marshal(p)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode product: %w", err)
	}
	h = make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="product"; filename="blob"`)
	h.Set("Content-Type", "application/json")
	part, err = w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(record); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
