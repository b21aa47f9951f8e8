package middleware

import (
	"net/http"

	"github.com/rogerio-castellano/storefront/internal/auth"
)

// AdminOnly guards product management with HTTP basic auth.
func AdminOnly(admin *auth.Admin) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="storefront-admin"`)
				http.Error(w, "missing credentials", http.StatusUnauthorized)
				return
			}
			if !admin.Check(user, pass) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
