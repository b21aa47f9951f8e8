package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rogerio-castellano/storefront/internal/auth"
	"github.com/rogerio-castellano/storefront/internal/obs"
)

type contextKey string

const sessionIDKey = contextKey("session_id")

const SessionCookie = "storefront_session"

// Session makes sure every request carries a visitor session. A missing or
// invalid cookie starts a new session; a cookie past half its lifetime is
// re-issued for the same session.
func Session(sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookie); err == nil {
				sess, err := sessions.Verify(c.Value)
				if err != nil {
					obs.Logger.Debug("session cookie rejected", "error", err)
				} else {
					id = sess.ID
					if sessions.NeedsRenewal(sess) {
						token, err := sessions.Issue(id)
						if err != nil {
							obs.Logger.Warn("session renewal failed", "error", err)
						} else {
							setSessionCookie(w, token, sessions.TTL())
						}
					}
				}
			}

			if id == "" {
				newID, token, err := sessions.NewSession()
				if err != nil {
					http.Error(w, "could not start session", http.StatusInternalServerError)
					return
				}
				id = newID
				setSessionCookie(w, token, sessions.TTL())
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func GetSessionID(r *http.Request) string {
	if val, ok := r.Context().Value(sessionIDKey).(string); ok {
		return val
	}
	return ""
}
