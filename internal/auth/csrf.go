package auth

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// CSRF protects form posts of the local UI. The UI is served over plain HTTP
// on a loopback address, so Referer checks for TLS are skipped.
func CSRF(authKey []byte, trustedOrigins []string) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		authKey,
		csrf.Secure(false),
		csrf.Path("/"),
		csrf.TrustedOrigins(trustedOrigins),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}
