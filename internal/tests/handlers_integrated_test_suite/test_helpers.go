package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront/internal/auth"
	"github.com/rogerio-castellano/storefront/internal/catalog"
	"github.com/rogerio-castellano/storefront/internal/db"
	"github.com/rogerio-castellano/storefront/internal/http/handlers"
	mw "github.com/rogerio-castellano/storefront/internal/http/middleware"
	"github.com/rogerio-castellano/storefront/internal/http/router"
	"github.com/rogerio-castellano/storefront/internal/notify"
	"github.com/rogerio-castellano/storefront/internal/productapi"
	"github.com/rogerio-castellano/storefront/internal/productapi/mockapi"
	"github.com/rogerio-castellano/storefront/internal/repo"
	"github.com/rogerio-castellano/storefront/internal/visitor"
)

var (
	remote   *mockapi.Server
	kvRepo   *repo.PostgresKeyValueRepository
	visitors *visitor.Registry
	sessions *auth.Sessions
	database *sql.DB
)

// TestMain runs the suite against the Postgres named by DATABASE_URL and
// skips it when none is configured.
func TestMain(m *testing.M) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		fmt.Println("DATABASE_URL not set, skipping integrated handler tests")
		os.Exit(0)
	}

	var err error
	database, err = db.Connect(context.Background(), dbURL)
	if err != nil {
		fmt.Println("Could not connect to database:", err)
		os.Exit(1)
	}
	kvRepo = repo.NewPostgresKeyValueRepository(database)
	if err := kvRepo.EnsureSchema(context.Background()); err != nil {
		fmt.Println("Could not create schema:", err)
		os.Exit(1)
	}

	remote = mockapi.NewServer(mockapi.NewInMemoryProductRepository())
	ts := httptest.NewServer(remote.NewRouter())
	client := productapi.NewClientWithHTTP(ts.URL, ts.Client())
	visitors = visitor.NewRegistry(kvRepo, client, notify.NewHub(nil))

	images := catalog.NewImageCache()
	handlers.SetCatalog(catalog.New(client, images, 4))
	handlers.SetProductManager(catalog.NewManager(client, images))
	handlers.SetVisitorRegistry(visitors)
	sessions = auth.NewSessions("integration-secret", time.Hour)

	code := m.Run()

	ts.Close()
	database.Close()
	os.Exit(code)
}

func newRouter() http.Handler {
	return router.NewRouter(router.Config{Sessions: sessions, Admin: auth.NewAdmin("", "")})
}

// newSession starts a session and returns its id and cookie.
func newSession(t *testing.T) (string, *http.Cookie) {
	t.Helper()
	id, token, err := sessions.NewSession()
	if err != nil {
		t.Fatalf("error creating session: %v", err)
	}
	t.Cleanup(func() {
		kvRepo.Delete(context.Background(), repo.CartKey(id))
		kvRepo.Delete(context.Background(), repo.ThemeKey(id))
	})
	return id, &http.Cookie{Name: mw.SessionCookie, Value: token}
}

func do(r http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
