// Package mockapi is an in-memory stand-in for the remote product service.
// It backs the mock-api command and the tests of every package that talks
// to the remote service.
package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/obs"
)

// Server serves the product service routes from an InMemoryProductRepository.
// Faults can be injected per product to exercise failure paths.
type Server struct {
	Repo *InMemoryProductRepository

	mu          sync.Mutex
	failList    bool
	failUpdates map[int]bool
	failImages  map[int]bool
	updateCalls []int
}

func NewServer(repo *InMemoryProductRepository) *Server {
	return &Server{
		Repo:        repo,
		failUpdates: map[int]bool{},
		failImages:  map[int]bool{},
	}
}

func (s *Server) FailList(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failList = fail
}

func (s *Server) FailUpdate(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUpdates[id] = true
}

func (s *Server) FailImage(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failImages[id] = true
}

// UpdateCalls lists the product ids of every PUT received, in order.
func (s *Server) UpdateCalls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.updateCalls...)
}

func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failList = false
	s.failUpdates = map[int]bool{}
	s.failImages = map[int]bool{}
	s.updateCalls = nil
	s.Repo.Clear()
}

func (s *Server) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/products", s.listProducts)
	r.Post("/products", s.createProduct)
	r.Get("/products/search", s.searchProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Put("/products/{id}", s.updateProduct)
	r.Delete("/products/{id}", s.deleteProduct)
	r.Get("/products/{id}/image", s.getImage)
	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		obs.Logger.Warn("mock api: failed to encode response", "error", err)
	}
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fail := s.failList
	s.mu.Unlock()
	if fail {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s.Repo.GetAll())
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Repo.Search(r.URL.Query().Get("keyword")))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	p, err := s.Repo.GetByID(id)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) getImage(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	fail := s.failImages[id]
	s.mu.Unlock()
	if fail {
		http.Error(w, "could not fetch image", http.StatusInternalServerError)
		return
	}
	contentType, data, err := s.Repo.Image(id)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// readProductForm decodes the "product" JSON part and the optional
// "imageFile" part of a multipart submission.
func readProductForm(r *http.Request) (models.Product, string, []byte, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return models.Product{}, "", nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	var raw []byte
	if f, _, err := r.FormFile("product"); err == nil {
		defer f.Close()
		if raw, err = io.ReadAll(f); err != nil {
			return models.Product{}, "", nil, err
		}
	} else {
		raw = []byte(r.FormValue("product"))
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Product{}, "", nil, fmt.Errorf("invalid product part: %w", err)
	}

	var contentType string
	var image []byte
	if f, hdr, err := r.FormFile("imageFile"); err == nil {
		defer f.Close()
		if image, err = io.ReadAll(f); err != nil {
			return models.Product{}, "", nil, err
		}
		contentType = hdr.Header.Get("Content-Type")
		p.ImageName = hdr.Filename
		p.ImageType = contentType
	}
	return p, contentType, image, nil
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	p, contentType, image, err := readProductForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, s.Repo.Create(p, contentType, image))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	s.updateCalls = append(s.updateCalls, id)
	fail := s.failUpdates[id]
	s.mu.Unlock()
	if fail {
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	p, contentType, image, err := readProductForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p.ID = id
	updated, err := s.Repo.Update(p, contentType, image)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	if err := s.Repo.Delete(id); err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
