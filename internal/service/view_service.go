package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"willspark/internal/entities"
	"willspark/internal/repository"
)

const (
	ScreenLogin      = "login"
	ScreenStaffLogin = "staff-login"
	ScreenDashboard  = "dashboard"
	ScreenAdmin      = "admin"
)

const (
	TabHome         = "home"
	TabBook         = "book"
	TabAvailability = "availability"
	TabReservations = "reservations"
	TabContact      = "contact"

	TabOverview  = "overview"
	TabUsers     = "users"
	TabAnalytics = "analytics"
)

var (
	MemberTabs = []string{TabHome, TabBook, TabAvailability, TabReservations, TabContact}
	StaffTabs  = []string{TabOverview, TabReservations, TabUsers, TabAnalytics}
)

// ScreenFor picks the top-level screen for sess. A token without a known
// profile is treated as logged out.
func ScreenFor(sess entities.Session) string {
	switch {
	case !sess.Authenticated():
		return ScreenLogin
	case sess.User.IsStaff:
		return ScreenAdmin
	default:
		return ScreenDashboard
	}
}

// NormalizeTab returns tab when it belongs to tabs, else the first tab.
func NormalizeTab(tabs []string, tab string) string {
	if slices.Contains(tabs, tab) {
		return tab
	}
	return tabs[0]
}

type MemberView struct {
	Tab          string
	Date         string
	Courts       []entities.Court
	Availability []entities.CourtAvailability
	Reservations []entities.Reservation
}

// ViewService loads the data a member tab needs when it is entered.
type ViewService struct {
	backend *repository.BackendRepository

	mu           sync.RWMutex
	reservations []entities.Reservation
}

func NewViewService(backend *repository.BackendRepository) *ViewService {
	return &ViewService{backend: backend}
}

// EnterMemberTab fetches only what tab displays. date selects the day for the
// book and availability tabs.
func (v *ViewService) EnterMemberTab(ctx context.Context, token, tab, date string) (MemberView, error) {
	view := MemberView{Tab: NormalizeTab(MemberTabs, tab), Date: date}

	switch view.Tab {
	case TabBook, TabAvailability:
		courts, err := v.backend.Courts(ctx, token)
		if err != nil {
			return view, fmt.Errorf("load courts: %w", err)
		}
		view.Courts = entities.AvailableCourts(courts)

		av, err := v.backend.Availability(ctx, token, date)
		if err != nil {
			view.Availability = entities.SummarizeAvailability(courts, nil)
			return view, fmt.Errorf("load availability for %s: %w", date, err)
		}
		view.Availability = entities.SummarizeAvailability(courts, av.Reservations)
	case TabReservations:
		list, err := v.RefreshReservations(ctx, token)
		view.Reservations = list
		if err != nil {
			return view, err
		}
	default:
		view.Reservations = v.Reservations()
	}
	return view, nil
}

// RefreshReservations reloads the caller's reservations. On failure the
// previously loaded list is kept and returned.
func (v *ViewService) RefreshReservations(ctx context.Context, token string) ([]entities.Reservation, error) {
	list, err := v.backend.MyReservations(ctx, token)
	if err != nil {
		return v.Reservations(), fmt.Errorf("load reservations: %w", err)
	}
	v.mu.Lock()
	v.reservations = list
	v.mu.Unlock()
	return list, nil
}

func (v *ViewService) Reservations() []entities.Reservation {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.reservations)
}

func (v *ViewService) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reservations = nil
}
