package models

import "time"

// Question statuses.
const (
	StatusNew      = "new"
	StatusAnswered = "answered"
	StatusClosed   = "closed"
)

// Question is a free-form user inquiry queued for a human reply.
type Question struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Question      string     `json:"question"`
	AttachmentRef *string    `json:"attachment_ref,omitempty"`
	Topic         *string    `json:"topic,omitempty"`
	ContentID     *int64     `json:"content_id,omitempty"`
	Status        string     `json:"status"`
	AdminResponse *string    `json:"admin_response,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
