package repository

import (
	"context"
	"net/url"
	"strconv"

	"willspark/internal/entities"
)

func (r *BackendRepository) AdminReservations(ctx context.Context, token string) ([]entities.Reservation, error) {
	var resp entities.ReservationsList
	if err := r.Get(ctx, token, "/api/admin/reservations", &resp); err != nil {
		return nil, err
	}
	return resp.Reservations, nil
}

// AdminUsers lists non-staff accounts.
func (r *BackendRepository) AdminUsers(ctx context.Context, token string) ([]entities.UserProfile, error) {
	var resp entities.UsersList
	if err := r.Get(ctx, token, "/api/admin/users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (r *BackendRepository) AdminAnalytics(ctx context.Context, token string) (*entities.Analytics, error) {
	var resp entities.Analytics
	if err := r.Get(ctx, token, "/api/admin/analytics", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateUser flips one membership attribute. The backend returns only the
// changed fields, so callers re-fetch the user list afterwards.
func (r *BackendRepository) UpdateUser(ctx context.Context, token, userID string, update entities.UserAttributeUpdate) (*entities.UserUpdateResponse, error) {
	var resp entities.UserUpdateResponse
	if err := r.Put(ctx, token, "/api/admin/users/"+url.PathEscape(userID), update.Body(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *BackendRepository) BroadcastNotification(ctx context.Context, token, message string) (*entities.BroadcastResponse, error) {
	var resp entities.BroadcastResponse
	if err := r.Post(ctx, token, "/api/admin/notifications", entities.BroadcastRequest{Message: message}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleCourtMaintenance opens or closes a court for reservation.
func (r *BackendRepository) ToggleCourtMaintenance(ctx context.Context, token string, courtID int) (*entities.MessageResponse, error) {
	var resp entities.MessageResponse
	path := "/api/admin/courts/" + strconv.Itoa(courtID) + "/maintenance"
	if err := r.Post(ctx, token, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
