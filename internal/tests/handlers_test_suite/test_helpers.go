package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront/internal/auth"
	"github.com/rogerio-castellano/storefront/internal/catalog"
	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	mw "github.com/rogerio-castellano/storefront/internal/http/middleware"
	"github.com/rogerio-castellano/storefront/internal/http/router"
	"github.com/rogerio-castellano/storefront/internal/metrics"
	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/productapi"
	"github.com/rogerio-castellano/storefront/internal/productapi/mockapi"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/rogerio-castellano/storefront/internal/visitor"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	remote   *mockapi.Server
	kvRepo   *repo.InMemoryKeyValueRepository
	visitors *visitor.Registry
	sessions *auth.Sessions
	admin    *auth.Admin
)

func init() {
	setupTestRepos("secret")
}

func setupTestRepos(password string) {
	remote = mockapi.NewServer(mockapi.NewInMemoryProductRepository())
	ts := httptest.NewServer(remote.NewRouter())
	client := productapi.NewClientWithHTTP(ts.URL, ts.Client())

	kvRepo = repo.NewInMemoryKeyValueRepository()
	visitors = visitor.NewRegistry(kvRepo, client, notify.NewHub(nil))

	images := catalog.NewImageCache()
	handlers.SetCatalog(catalog.New(client, images, 4))
	handlers.SetProductManager(catalog.NewManager(client, images))
	handlers.SetVisitorRegistry(visitors)
	handlers.SetMetrics(metrics.New(visitors.Len))

	sessions = auth.NewSessions("test-secret", time.Hour)
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	admin = auth.NewAdmin("admin", string(hash))
}

func newRouter() http.Handler {
	return router.NewRouter(router.Config{Sessions: sessions, Admin: admin})
}

func clearAll() {
	remote.Reset()
	kvRepo.Clear()
	visitors.Close()
}

// newSession returns a cookie for a fresh visitor session.
func newSession() *http.Cookie {
	_, token, err := sessions.NewSession()
	if err != nil {
		panic(fmt.Sprintf("error creating session: %v", err))
	}
	return &http.Cookie{Name: mw.SessionCookie, Value: token}
}

func seedProduct(name string, category models.Category, price int64, stock int, available bool) models.Product {
	return remote.Repo.Create(models.Product{
		Name:             name,
		Brand:            "Acme",
		Description:      name + " description",
		Price:            decimal.NewFromInt(price),
		Category:         category,
		StockQuantity:    stock,
		ReleaseDate:      models.NewDate(2024, time.January, 15),
		ProductAvailable: available,
		ImageName:        strings.ToLower(name) + ".png",
	}, "image/png", []byte("png-"+name))
}

func do(r http.Handler, method, path string, body []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addToCart(r http.Handler, cookie *http.Cookie, productID int) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handlers.AddToCartRequest{ProductID: productID})
	return do(r, http.MethodPost, "/cart/items", body, cookie)
}

func getCart(r http.Handler, cookie *http.Cookie) (handlers.CartResponse, int) {
	w := do(r, http.MethodGet, "/cart", nil, cookie)
	var resp handlers.CartResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp, w.Code
}

// productSubmission builds the multipart body of an add/edit request.
func productSubmission(form catalog.ProductForm, image []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mpw := multipart.NewWriter(&buf)

	record, _ := json.Marshal(form)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="product"; filename="blob"`)
	h.Set("Content-Type", "application/json")
	part, _ := mpw.CreatePart(h)
	part.Write(record)

	if image != nil {
		h = make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="imageFile"; filename="new.png"`)
		h.Set("Content-Type", "image/png")
		part, _ = mpw.CreatePart(h)
		part.Write(image)
	}
	mpw.Close()
	return &buf, mpw.FormDataContentType()
}

func submitProduct(r http.Handler, method, path string, form catalog.ProductForm, image []byte, user, pass string) *httptest.ResponseRecorder {
	body, contentType := productSubmission(form, image)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messagesOf(ns []notify.Notification) []string {
	out := []string{}
	for _, n := range ns {
		out = append(out, n.Message)
	}
	return out
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func httptestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deleteAsAdmin(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.SetBasicAuth("admin", "secret")
	return serve(r, req)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
}
