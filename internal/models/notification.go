package models

import "time"

// Notification types
const (
	NotificationFollow         = "follow"
	NotificationLike           = "like"
	NotificationComment        = "comment"
	NotificationRating         = "rating"
	NotificationMessage        = "message"
	NotificationMessageRequest = "message_request"
)

// Notification is stored at notification:<recipient>:<id>.
type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ActorID     string    `json:"actor_id"`
	RecipientID string    `json:"recipient_id"`
	TargetID    string    `json:"target_id"`
	TargetType  string    `json:"target_type"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
