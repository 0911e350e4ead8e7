package entities

type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Sender    string `json:"sender,omitempty"`
	CreatedAt string `json:"created_at"`
}

type NotificationsList struct {
	Notifications []Notification `json:"notifications"`
}

type BroadcastRequest struct {
	Message string `json:"message"`
}

type BroadcastResponse struct {
	Message        string `json:"message"`
	NotificationID string `json:"notification_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
