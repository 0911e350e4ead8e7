package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "willspark/internal/errors"
	"willspark/internal/service"
)

type AdminHandler struct {
	app   *service.App
	views *Renderer
}

func NewAdminHandler(app *service.App, views *Renderer) *AdminHandler {
	return &AdminHandler{app: app, views: views}
}

// Dashboard renders a staff tab from the dashboard loaded on first entry.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	requested := mux.Vars(r)["tab"]
	tab := service.NormalizeTab(service.StaffTabs, requested)
	if tab != requested {
		http.Redirect(w, r, "/admin/"+tab, http.StatusSeeOther)
		return
	}

	ctx := r.Context()
	token := h.app.Session.Token()
	d, err := h.app.Admin.Dashboard(ctx, token)
	if err != nil {
		if apperrors.IsUnauthorized(err) && failed(h.app, w, r, err, "") {
			return
		}
		log.Printf("api: staff dashboard rendered with partial data: %v", err)
		h.app.Flash.Error("Some dashboard data could not be loaded.")
	}

	data := &AdminData{Dashboard: d, Exports: exportLinks}
	if tab == service.TabOverview {
		courts, err := h.app.Admin.Courts(ctx, token)
		if err != nil && failed(h.app, w, r, err, "Failed to load courts.") {
			return
		}
		data.Courts = courts
	}

	page := newPage(h.app, "Staff Dashboard", service.ScreenAdmin, tab, service.StaffTabs)
	page.Admin = data
	h.views.Render(w, r, "admin.html", page)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	value, err := strconv.ParseBool(r.PostFormValue("value"))
	if err != nil {
		http.Error(w, "Invalid value", http.StatusBadRequest)
		return
	}
	userID := mux.Vars(r)["id"]
	if _, err := h.app.Admin.SetUserAttribute(r.Context(), h.app.Session.Token(), userID, r.PostFormValue("field"), value); err != nil {
		if failed(h.app, w, r, err, "Failed to update user.") {
			return
		}
	} else {
		h.app.Flash.Success("User updated successfully")
	}
	http.Redirect(w, r, "/admin/"+service.TabUsers, http.StatusSeeOther)
}

func (h *AdminHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	if _, err := h.app.Admin.Broadcast(r.Context(), h.app.Session.Token(), r.PostFormValue("message")); err != nil {
		if failed(h.app, w, r, err, "Failed to send notification.") {
			return
		}
	} else {
		h.app.Flash.Success("Notification sent successfully!")
	}
	http.Redirect(w, r, "/admin/"+service.TabOverview, http.StatusSeeOther)
}

func (h *AdminHandler) ToggleCourt(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid court", http.StatusBadRequest)
		return
	}
	msg, err := h.app.Admin.ToggleCourt(r.Context(), h.app.Session.Token(), courtID)
	if err != nil {
		if failed(h.app, w, r, err, "Failed to update court.") {
			return
		}
	} else {
		h.app.Flash.Success(msg)
	}
	http.Redirect(w, r, "/admin/"+service.TabOverview, http.StatusSeeOther)
}

// Export downloads a report built from the loaded dashboard.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := h.app.Export(r.Context(), mux.Vars(r)["kind"])
	if err != nil {
		if !failed(h.app, w, r, err, "Failed to build report.") {
			http.Redirect(w, r, "/admin/"+service.TabOverview, http.StatusSeeOther)
		}
		return
	}
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename))
	w.Write(f.Body)
}

func (h *AdminHandler) EmailExport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	to := r.PostFormValue("to")
	if err := h.app.EmailExport(r.Context(), mux.Vars(r)["kind"], to); err != nil {
		if failed(h.app, w, r, err, "Failed to email report.") {
			return
		}
	} else {
		h.app.Flash.Success("Report emailed to " + to)
	}
	http.Redirect(w, r, "/admin/"+service.TabOverview, http.StatusSeeOther)
}
