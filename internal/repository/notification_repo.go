package repository

import (
	"context"
	"net/url"

	"willspark/internal/entities"
)

// Notifications returns the caller's unread system notifications, newest first.
func (r *BackendRepository) Notifications(ctx context.Context, token string) ([]entities.Notification, error) {
	var resp entities.NotificationsList
	if err := r.Get(ctx, token, "/api/notifications", &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// MarkNotificationRead acknowledges one notification for the caller.
func (r *BackendRepository) MarkNotificationRead(ctx context.Context, token, id string) error {
	return r.Post(ctx, token, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}
