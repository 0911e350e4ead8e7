package repository

import (
	"context"
	"net/url"

	"willspark/internal/entities"
)

// Courts lists every court. The session manager also uses it as the token probe.
func (r *BackendRepository) Courts(ctx context.Context, token string) ([]entities.Court, error) {
	var resp entities.CourtsList
	if err := r.Get(ctx, token, "/api/courts", &resp); err != nil {
		return nil, err
	}
	return resp.Courts, nil
}

// Availability returns the courts and the reservations held on date (YYYY-MM-DD).
func (r *BackendRepository) Availability(ctx context.Context, token, date string) (*entities.Availability, error) {
	var resp entities.Availability
	path := "/api/courts/availability?date=" + url.QueryEscape(date)
	if err := r.Get(ctx, token, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *BackendRepository) MyReservations(ctx context.Context, token string) ([]entities.Reservation, error) {
	var resp entities.ReservationsList
	if err := r.Get(ctx, token, "/api/reservations/my", &resp); err != nil {
		return nil, err
	}
	return resp.Reservations, nil
}

func (r *BackendRepository) CreateReservation(ctx context.Context, token string, req entities.ReservationRequest) (*entities.ReservationCreated, error) {
	var resp entities.ReservationCreated
	if err := r.Post(ctx, token, "/api/reservations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
