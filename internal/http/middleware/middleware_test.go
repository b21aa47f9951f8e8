package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestSession_IssuesCookieAndReusesIt(t *testing.T) {
	sessions := auth.NewSessions("secret", time.Hour)
	var seen []string
	h := Session(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, GetSessionID(r))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if len(w.Result().Cookies()) != 0 {
		t.Errorf("expected no new cookie for a valid session")
	}

	if len(seen) != 2 || seen[0] == "" || seen[0] != seen[1] {
		t.Errorf("expected the same session id twice, got %v", seen)
	}
}

func TestSession_RenewsAgingCookie(t *testing.T) {
	sessions := auth.NewSessions("secret", 30*24*time.Hour)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	sessions.SetClock(func() time.Time { return now })

	var seen []string
	h := Session(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, GetSessionID(r))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	first := w.Result().Cookies()[0]

	now = now.Add(10 * 24 * time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(first)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if len(w.Result().Cookies()) != 0 {
		t.Errorf("expected no renewal before half the lifetime")
	}

	now = now.Add(10 * 24 * time.Hour)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(first)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	renewed := w.Result().Cookies()
	if len(renewed) != 1 || renewed[0].Value == first.Value {
		t.Fatalf("expected a renewed cookie, got %v", renewed)
	}

	// the original token would be expired by now, the renewed one is not
	now = now.Add(15 * 24 * time.Hour)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(renewed[0])
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if len(seen) != 4 || seen[3] != seen[0] {
		t.Errorf("expected the session id to survive renewal, got %v", seen)
	}
}

func TestSession_InvalidCookieStartsNewSession(t *testing.T) {
	sessions := auth.NewSessions("secret", time.Hour)
	var id string
	h := Session(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = GetSessionID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if id == "" {
		t.Fatal("expected a session id")
	}
	if len(w.Result().Cookies()) != 1 {
		t.Errorf("expected a replacement cookie")
	}
}

func TestAdminOnly(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	h := AdminOnly(auth.NewAdmin("admin", string(hash)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		user, pass string
		basic      bool
		expectCode int
	}{
		{"no credentials", "", "", false, http.StatusUnauthorized},
		{"wrong password", "admin", "nope", true, http.StatusForbidden},
		{"valid", "admin", "secret", true, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
			if tt.basic {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tt.expectCode {
				t.Errorf("expected %d, got %d", tt.expectCode, w.Code)
			}
		})
	}
}
