package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"willspark/internal/service"
	"willspark/internal/utils"
)

type MemberHandler struct {
	app   *service.App
	views *Renderer
}

func NewMemberHandler(app *service.App, views *Renderer) *MemberHandler {
	return &MemberHandler{app: app, views: views}
}

// Dashboard renders one member tab, fetching only the data that tab shows.
func (h *MemberHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	requested := mux.Vars(r)["tab"]
	tab := service.NormalizeTab(service.MemberTabs, requested)
	if tab != requested {
		http.Redirect(w, r, "/dashboard/"+tab, http.StatusSeeOther)
		return
	}

	today := utils.Today(time.Now())
	date := r.URL.Query().Get("date")
	if tab == service.TabBook {
		if date != "" {
			h.app.Booking.SetDate(date)
		}
		date = h.app.Booking.Draft().Date
	}
	if date == "" {
		date = today
	}

	view, err := h.app.Views.EnterMemberTab(r.Context(), h.app.Session.Token(), tab, date)
	if err != nil && failed(h.app, w, r, err, "Failed to load data. Please try again.") {
		return
	}

	user := h.app.Session.Current().User
	draft := h.app.Booking.Draft()
	page := newPage(h.app, "Wills Park Tennis Center", service.ScreenDashboard, tab, service.MemberTabs)
	page.Member = &MemberData{
		View:      view,
		Draft:     draft,
		Price:     service.ComputePrice(draft, user),
		RateLabel: utils.RateLabel(user),
		CanSubmit: service.CanSubmit(draft, user),
		Today:     today,
	}
	h.views.Render(w, r, "dashboard.html", page)
}

// Price returns the estimate for the draft with any query overrides applied.
func (h *MemberHandler) Price(w http.ResponseWriter, r *http.Request) {
	draft := h.app.Booking.Draft()
	q := r.URL.Query()
	for field, dst := range map[string]*string{
		"court_id":   &draft.CourtID,
		"date":       &draft.Date,
		"start_time": &draft.StartTime,
		"end_time":   &draft.EndTime,
		"attendees":  &draft.Attendees,
	} {
		if q.Has(field) {
			*dst = q.Get(field)
		}
	}

	user := h.app.Session.Current().User
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PriceEstimate{
		Price:     service.ComputePrice(draft, user),
		Rate:      utils.HourlyRate(user),
		RateLabel: utils.RateLabel(user),
		CanSubmit: service.CanSubmit(draft, user),
	})
}

func (h *MemberHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.app.Poller.Dismiss(r.Context(), mux.Vars(r)["id"])
	http.Redirect(w, r, localPath(r.PostFormValue("next"), "/dashboard/home"), http.StatusSeeOther)
}
