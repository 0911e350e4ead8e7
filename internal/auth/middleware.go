package auth

import (
	"net/http"

	"willspark/internal/entities"
)

// SessionSource exposes the current session to the guards.
type SessionSource interface {
	Current() entities.Session
}

// RequireMember sends visitors without an authenticated session to the login
// page and staff to their own dashboard.
func RequireMember(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.Current()
			if !sess.Authenticated() {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if sess.IsStaff() {
				http.Redirect(w, r, "/admin/overview", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff lets only staff through; members land on their dashboard.
func RequireStaff(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.Current()
			if !sess.Authenticated() {
				http.Redirect(w, r, "/staff-login", http.StatusSeeOther)
				return
			}
			if !sess.IsStaff() {
				http.Redirect(w, r, "/dashboard/home", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
