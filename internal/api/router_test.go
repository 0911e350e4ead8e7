package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"willspark/internal/repository"
	"willspark/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// newTestBackend fakes the booking backend with one member, one staff user,
// two courts (court 2 under maintenance) and a failing analytics endpoint.
func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&req)
		switch req.Username + "/" + req.Password {
		case "membermock/trial123":
			writeJSON(w, http.StatusOK, map[string]any{"token": "member-token", "user": map[string]any{"id": "u1", "username": "membermock", "is_resident": true}})
		case "staffmock/staff123":
			writeJSON(w, http.StatusOK, map[string]any{"token": "staff-token", "user": map[string]any{"id": "s1", "username": "staffmock", "is_staff": true}})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		}
	})
	mux.HandleFunc("GET /api/courts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"courts": []map[string]any{
			{"id": 1, "name": "Court 1", "available": true},
			{"id": 2, "name": "Court 2", "available": false},
		}})
	})
	mux.HandleFunc("GET /api/courts/availability", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"date": r.URL.Query().Get("date"), "reservations": []any{}})
	})
	mux.HandleFunc("GET /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"notifications": []map[string]any{
			{"id": "n1", "message": "**Court 3** closed <script>alert(1)</script>", "created_at": "2025-07-01T08:00:00"},
		}})
	})
	mux.HandleFunc("POST /api/notifications/{id}/read", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /api/admin/reservations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"reservations": []map[string]any{
			{"id": "r1", "court_id": 1, "start_time": "2025-07-01T09:00:00", "end_time": "2025-07-01T11:00:00", "status": "confirmed", "total_cost": 8},
		}})
	})
	mux.HandleFunc("GET /api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"users": []map[string]any{
			{"id": "u1", "username": "membermock", "email": "member@example.com", "is_resident": true},
		}})
	})
	mux.HandleFunc("GET /api/admin/analytics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "analytics down"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testUI struct {
	app     *service.App
	store   *repository.MemoryStore
	handler http.Handler
}

func newTestUI(t *testing.T) *testUI {
	t.Helper()
	srv := newTestBackend(t)
	store := repository.NewMemoryStore()
	app := service.NewApp(service.Options{
		Backend: repository.NewBackendRepository(srv.URL, 2*time.Second),
		Store:   store,
	})
	t.Cleanup(app.Shutdown)
	views, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return &testUI{app: app, store: store, handler: NewRouter(app, views)}
}

func (u *testUI) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	u.handler.ServeHTTP(rec, req)
	return rec
}

func (u *testUI) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := u.do(http.MethodPost, "/login", url.Values{"username": {username}, "password": {password}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /login code = %d", rec.Code)
	}
	return rec.Header().Get("Location")
}

func TestHealthz(t *testing.T) {
	ui := newTestUI(t)
	if rec := ui.do(http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Errorf("code = %d", rec.Code)
	}
}

func TestLoginLanding(t *testing.T) {
	tests := []struct {
		username, password string
		want               string
	}{
		{"membermock", "trial123", "/dashboard/home"},
		{"staffmock", "staff123", "/admin/overview"},
		{"membermock", "wrong", "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.username+"/"+tt.password, func(t *testing.T) {
			ui := newTestUI(t)
			if got := ui.login(t, tt.username, tt.password); got != tt.want {
				t.Errorf("landing = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailedLoginShowsDetail(t *testing.T) {
	ui := newTestUI(t)
	ui.login(t, "membermock", "wrong")
	rec := ui.do(http.MethodGet, "/login", nil)
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Error("login page should show the backend's error detail")
	}
	if ui.app.Session.Authenticated() {
		t.Error("failed login must not authenticate")
	}
}

func TestGuardedRoutesRedirectToLogin(t *testing.T) {
	ui := newTestUI(t)
	for _, path := range []string{"/dashboard/home", "/dashboard/price"} {
		rec := ui.do(http.MethodGet, path, nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
			t.Errorf("GET %s = %d %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}

	ui.login(t, "membermock", "trial123")
	rec := ui.do(http.MethodGet, "/admin/overview", nil)
	if rec.Header().Get("Location") != "/dashboard/home" {
		t.Errorf("member on /admin redirected to %q", rec.Header().Get("Location"))
	}
}

func TestStaffKeptOffMemberScreens(t *testing.T) {
	ui := newTestUI(t)
	ui.login(t, "staffmock", "staff123")
	for _, path := range []string{"/dashboard/home", "/dashboard/book", "/dashboard/price"} {
		rec := ui.do(http.MethodGet, path, nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/overview" {
			t.Errorf("GET %s = %d %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestLogout(t *testing.T) {
	ui := newTestUI(t)
	ui.login(t, "membermock", "trial123")

	rec := ui.do(http.MethodPost, "/logout", url.Values{})
	if rec.Header().Get("Location") != "/login" {
		t.Errorf("logout redirect = %q", rec.Header().Get("Location"))
	}
	if _, ok, _ := ui.store.Get(context.Background(), repository.TokenKey); ok {
		t.Error("token still stored after logout")
	}
	if rec := ui.do(http.MethodGet, "/dashboard/reservations", nil); rec.Header().Get("Location") != "/login" {
		t.Errorf("dashboard after logout = %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestBookTabOffersAvailableCourtsOnly(t *testing.T) {
	ui := newTestUI(t)
	ui.login(t, "membermock", "trial123")

	rec := ui.do(http.MethodGet, "/dashboard/book", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, ">Court 1</option>") {
		t.Error("court 1 should be offered")
	}
	if strings.Contains(body, "Court 2") {
		t.Error("court 2 is under maintenance and must not be shown")
	}
}

func TestUnknownTabFallsBack(t *testing.T) {
	ui := newTestUI(t)
	ui.login(t, "membermock", "trial123")
	rec := ui.do(http.MethodGet, "/dashboard/payroll", nil)
	if rec.Header().Get("Location") != "/dashboard/home" {
		t.Errorf("Location = %q", rec.Header().Get("Location"))
	}
}

func TestPriceEstimate(t *testing.T) {
	ui := newTestUI(t)
	ui.login(t, "membermock", "trial123")

	rec := ui.do(http.MethodGet, "/dashboard/price?start_time=09:00&end_time=11:00", nil)
	var got PriceEstimate
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Price != 8 || got.Rate != 4 || got.CanSubmit {
		t.Errorf("estimate = %+v", got)
	}

	rec = ui.do(http.MethodGet, "/dashboard/price?start_time=&end_time=11:00", nil)
	json.NewDecoder(rec.Body).Decode(&got)
	if got.Price != 0 {
		t.Errorf("price with empty start = %v", got.Price)
	}
}

func TestNotificationsRenderSafely(t *testing.T) {
	ui := newTestUI(t)
	ui.login(t, "membermock", "trial123")

	body := ui.do(http.MethodGet, "/dashboard/home", nil).Body.String()
	if !strings.Contains(body, "<strong>Court 3</strong>") {
		t.Error("notification markdown not rendered")
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("raw HTML from a notification was not escaped")
	}

	rec := ui.do(http.MethodPost, "/notifications/n1/dismiss", url.Values{"next": {"/dashboard/contact"}})
	if rec.Header().Get("Location") != "/dashboard/contact" {
		t.Errorf("dismiss redirect = %q", rec.Header().Get("Location"))
	}
	if len(ui.app.Poller.Unread()) != 0 {
		t.Error("notification still unread after dismiss")
	}
}

func TestAdminPartialDashboard(t *testing.T) {
	ui := newTestUI(t)
	ui.login(t, "staffmock", "staff123")

	res := ui.do(http.MethodGet, "/admin/reservations", nil)
	if res.Code != http.StatusOK || !strings.Contains(res.Body.String(), "<td>r1</td>") {
		t.Errorf("reservations tab = %d", res.Code)
	}
	users := ui.do(http.MethodGet, "/admin/users", nil)
	if !strings.Contains(users.Body.String(), "member@example.com") {
		t.Error("users tab should render despite the analytics failure")
	}
	analytics := ui.do(http.MethodGet, "/admin/analytics", nil)
	if !strings.Contains(analytics.Body.String(), "Conversion rate: 0%") {
		t.Error("analytics should fall back to zero")
	}
	if !strings.Contains(analytics.Body.String(), "Some dashboard data could not be loaded.") {
		t.Error("a partial load should be reported to the user")
	}
}

func TestAdminExport(t *testing.T) {
	ui := newTestUI(t)
	ui.login(t, "staffmock", "staff123")

	rec := ui.do(http.MethodGet, "/admin/export/revenue", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="monthly_revenue_report.csv"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "ID,Court,Start Time,End Time,Cost,Status\nr1,1,") {
		t.Errorf("body = %q", rec.Body.String())
	}

	rec = ui.do(http.MethodGet, "/admin/export/payroll", nil)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("unknown export code = %d", rec.Code)
	}
}

func TestLocalPath(t *testing.T) {
	tests := map[string]string{
		"/dashboard/book":      "/dashboard/book",
		"//evil.example/x":     "/fallback",
		"https://evil.example": "/fallback",
		"":                     "/fallback",
	}
	for in, want := range tests {
		if got := localPath(in, "/fallback"); got != want {
			t.Errorf("localPath(%q) = %q, want %q", in, got, want)
		}
	}
}
