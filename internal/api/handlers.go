package api

import (
	"net/http"
	"strings"

	apperrors "willspark/internal/errors"
	"willspark/internal/service"
)

func landingPath(screen string) string {
	switch screen {
	case service.ScreenAdmin:
		return "/admin/" + service.TabOverview
	case service.ScreenDashboard:
		return "/dashboard/" + service.TabHome
	case service.ScreenStaffLogin:
		return "/staff-login"
	}
	return "/login"
}

// newPage collects what every screen shows: the user, pending flash messages
// and, for members, the unread notifications.
func newPage(app *service.App, title, screen, tab string, tabs []string) *Page {
	sess := app.Session.Current()
	success, failure := app.Flash.Messages()
	p := &Page{
		Title:   title,
		Screen:  screen,
		Tab:     tab,
		Tabs:    tabs,
		User:    sess.User,
		Success: success,
		Error:   failure,
	}
	if sess.Authenticated() && !sess.User.IsStaff {
		p.Notifications = app.Poller.Unread()
	}
	return p
}

// failed records err for the next page and reports whether the session ended
// because of it, in which case the user has been sent to the login page.
func failed(app *service.App, w http.ResponseWriter, r *http.Request, err error, fallback string) bool {
	app.Check(r.Context(), err)
	if !app.Session.Authenticated() {
		app.Flash.Error(apperrors.UserMessage(apperrors.ErrUnauthenticated, ""))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	app.Flash.Error(apperrors.UserMessage(err, fallback))
	return false
}

// localPath returns next when it is a path on this server, else fallback.
func localPath(next, fallback string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.Contains(next, "\\") {
		return next
	}
	return fallback
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
