package api

import (
	"net/http"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
	"willspark/internal/service"
)

type BookingHandler struct {
	app *service.App
}

func NewBookingHandler(app *service.App) *BookingHandler {
	return &BookingHandler{app: app}
}

// Book submits the posted booking form. The draft is kept on failure so the
// form comes back filled in.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	draft := entities.BookingDraft{
		CourtID:   r.PostFormValue("court_id"),
		Date:      r.PostFormValue("date"),
		StartTime: r.PostFormValue("start_time"),
		EndTime:   r.PostFormValue("end_time"),
		Attendees: r.PostFormValue("attendees"),
	}

	msg, err := h.app.SubmitBooking(r.Context(), draft)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.app.Flash.Error(apperrors.UserMessage(err, "Booking failed. Please try again."))
		http.Redirect(w, r, "/dashboard/"+service.TabBook, http.StatusSeeOther)
		return
	}
	h.app.Flash.Success(msg)
	http.Redirect(w, r, "/dashboard/"+service.TabBook, http.StatusSeeOther)
}
