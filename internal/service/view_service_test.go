package service

import (
	"context"
	"net/http"
	"testing"

	"willspark/internal/entities"
)

func TestScreenFor(t *testing.T) {
	tests := []struct {
		name string
		sess entities.Session
		want string
	}{
		{"logged out", entities.Session{}, ScreenLogin},
		{"token only", entities.Session{Token: "t"}, ScreenLogin},
		{"member", entities.Session{Token: "t", User: &entities.UserProfile{}}, ScreenDashboard},
		{"staff", entities.Session{Token: "t", User: &entities.UserProfile{IsStaff: true}}, ScreenAdmin},
	}
	for _, tt := range tests {
		if got := ScreenFor(tt.sess); got != tt.want {
			t.Errorf("%s: ScreenFor() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeTab(t *testing.T) {
	if got := NormalizeTab(MemberTabs, "availability"); got != TabAvailability {
		t.Errorf("NormalizeTab() = %q", got)
	}
	if got := NormalizeTab(MemberTabs, "users"); got != TabHome {
		t.Errorf("unknown member tab = %q, want home", got)
	}
	if got := NormalizeTab(StaffTabs, ""); got != TabOverview {
		t.Errorf("empty staff tab = %q, want overview", got)
	}
}

func availabilityBackend(t *testing.T) *fakeBackend {
	fb := newFakeBackend(t)
	fb.reply("GET /api/courts", http.StatusOK, twoCourts)
	fb.handle("GET /api/courts/availability", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date") != "2025-07-01" {
			t.Errorf("date = %q", r.URL.Query().Get("date"))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"date":   "2025-07-01",
			"courts": []map[string]any{{"id": 1, "name": "Court 1", "available": true}},
			"reservations": []map[string]any{
				{"id": "r1", "court_id": 1, "start_time": "2025-07-01T09:00:00", "end_time": "2025-07-01T11:00:00", "status": "confirmed"},
				{"id": "r2", "court_id": 2, "start_time": "2025-07-01T09:00:00", "end_time": "2025-07-01T11:00:00", "status": "confirmed"},
			},
		})
	})
	fb.reply("GET /api/reservations/my", http.StatusOK, map[string]any{"reservations": []map[string]any{
		{"id": "r1", "court_id": 1, "start_time": "2025-07-01T09:00:00", "end_time": "2025-07-01T11:00:00", "status": "confirmed", "total_cost": 8},
	}})
	return fb
}

func TestEnterMemberTabOffersOnlyAvailableCourts(t *testing.T) {
	for _, tab := range []string{TabBook, TabAvailability} {
		t.Run(tab, func(t *testing.T) {
			fb := availabilityBackend(t)
			v := NewViewService(fb.repo())

			view, err := v.EnterMemberTab(context.Background(), "tok", tab, "2025-07-01")
			if err != nil {
				t.Fatalf("EnterMemberTab() error = %v", err)
			}
			if len(view.Courts) != 1 || view.Courts[0].ID != 1 {
				t.Errorf("Courts = %+v, want only court 1", view.Courts)
			}
			if len(view.Availability) != 1 || view.Availability[0].Court.ID != 1 {
				t.Fatalf("Availability = %+v", view.Availability)
			}
			if got := view.Availability[0]; len(got.Reservations) != 1 || got.State != entities.CourtPartialBooked || got.Remaining != entities.SlotsPerDay-1 {
				t.Errorf("court 1 availability = %+v", got)
			}
			if fb.count("GET /api/reservations/my") != 0 {
				t.Error("booking tabs should not fetch the reservation list")
			}
		})
	}
}

func TestEnterMemberTabIsLazy(t *testing.T) {
	fb := availabilityBackend(t)
	v := NewViewService(fb.repo())
	ctx := context.Background()

	for _, tab := range []string{TabHome, TabContact} {
		if _, err := v.EnterMemberTab(ctx, "tok", tab, "2025-07-01"); err != nil {
			t.Fatalf("EnterMemberTab(%s) error = %v", tab, err)
		}
	}
	if n := fb.count("GET /api/*"); n != 0 {
		t.Errorf("home/contact made %d backend calls", n)
	}

	view, err := v.EnterMemberTab(ctx, "tok", TabReservations, "")
	if err != nil {
		t.Fatalf("EnterMemberTab(reservations) error = %v", err)
	}
	if len(view.Reservations) != 1 || fb.count("GET /api/reservations/my") != 1 {
		t.Errorf("reservations tab = %+v, calls %d", view.Reservations, fb.count("GET /api/reservations/my"))
	}
	if fb.count("GET /api/courts") != 0 {
		t.Error("reservations tab fetched courts")
	}

	home, _ := v.EnterMemberTab(ctx, "tok", TabHome, "")
	if len(home.Reservations) != 1 {
		t.Error("home should show the last loaded reservations")
	}
}

func TestRefreshReservationsKeepsListOnFailure(t *testing.T) {
	fb := availabilityBackend(t)
	v := NewViewService(fb.repo())
	if _, err := v.RefreshReservations(context.Background(), "tok"); err != nil {
		t.Fatalf("RefreshReservations() error = %v", err)
	}

	broken := newFakeBackend(t)
	broken.reply("GET /api/reservations/my", http.StatusInternalServerError, map[string]string{"detail": "boom"})
	v.backend = broken.repo()
	list, err := v.RefreshReservations(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(list) != 1 {
		t.Errorf("list after failure = %+v", list)
	}
}
