package api

import (
	"net/http"

	apperrors "willspark/internal/errors"
	"willspark/internal/service"
)

type AuthHandler struct {
	app   *service.App
	views *Renderer
}

func NewAuthHandler(app *service.App, views *Renderer) *AuthHandler {
	return &AuthHandler{app: app, views: views}
}

func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, landingPath(h.app.Screen()), http.StatusSeeOther)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.app.Session.Authenticated() {
		http.Redirect(w, r, landingPath(h.app.Screen()), http.StatusSeeOther)
		return
	}
	staff := r.URL.Path == "/staff-login"
	screen, title := service.ScreenLogin, "Member Login"
	if staff {
		screen, title = service.ScreenStaffLogin, "Staff Login"
	}
	page := newPage(h.app, title, screen, "", nil)
	page.Login = &LoginData{Staff: staff}
	h.views.Render(w, r, "login.html", page)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	screen, err := h.app.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		h.app.Flash.Error(apperrors.UserMessage(err, "Login failed. Please try again."))
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}
	h.app.Flash.Success("Login successful!")
	http.Redirect(w, r, landingPath(screen), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Logout(r.Context()); err != nil {
		h.app.Flash.Error("Logged out, but the saved session could not be removed.")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
