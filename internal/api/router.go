package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"willspark/internal/auth"
	"willspark/internal/service"
)

// NewRouter wires the local UI. CSRF, logging and recovery are applied by the caller.
func NewRouter(app *service.App, views *Renderer) *mux.Router {
	authHandler := NewAuthHandler(app, views)
	memberHandler := NewMemberHandler(app, views)
	bookingHandler := NewBookingHandler(app)
	adminHandler := NewAdminHandler(app, views)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthz).Methods("GET")
	r.HandleFunc("/", authHandler.Home).Methods("GET")
	r.HandleFunc("/login", authHandler.LoginPage).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/staff-login", authHandler.LoginPage).Methods("GET")
	r.HandleFunc("/staff-login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	member := r.NewRoute().Subrouter()
	member.Use(auth.RequireMember(app.Session))
	member.HandleFunc("/dashboard/price", memberHandler.Price).Methods("GET")
	member.HandleFunc("/dashboard/book", bookingHandler.Book).Methods("POST")
	member.HandleFunc("/dashboard/{tab}", memberHandler.Dashboard).Methods("GET")
	member.HandleFunc("/notifications/{id}/dismiss", memberHandler.DismissNotification).Methods("POST")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireStaff(app.Session))
	admin.HandleFunc("/users/{id}", adminHandler.UpdateUser).Methods("POST")
	admin.HandleFunc("/notifications", adminHandler.Broadcast).Methods("POST")
	admin.HandleFunc("/courts/{id:[0-9]+}/maintenance", adminHandler.ToggleCourt).Methods("POST")
	admin.HandleFunc("/export/{kind}", adminHandler.Export).Methods("GET")
	admin.HandleFunc("/export/{kind}/email", adminHandler.EmailExport).Methods("POST")
	admin.HandleFunc("/{tab}", adminHandler.Dashboard).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(authHandler.Home)
	return r
}
