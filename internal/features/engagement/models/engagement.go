package models

import "time"

// Progress is the per-(user, item) engagement record. Uniqueness on the
// pair is enforced by the store; writes are upserts.
type Progress struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	ContentID       int64      `json:"content_id"`
	ProgressPercent int        `json:"progress_percent"`
	SecondsWatched  int        `json:"seconds_watched"`
	Completed       bool       `json:"completed"`
	LastPosition    int        `json:"last_position"`
	Rating          *int       `json:"rating,omitempty"`
	Review          *string    `json:"review,omitempty"`
	LastWatchedAt   time.Time  `json:"last_watched_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`

	ContentTitle string `json:"content_title,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// ProgressUpdate is the caller-supplied part of an upsert.
type ProgressUpdate struct {
	ProgressPercent int  `json:"progress_percent"`
	SecondsWatched  int  `json:"seconds_watched"`
	Completed       bool `json:"completed"`
	LastPosition    int  `json:"last_position"`
}

// Favorite is an existence-only relation between a user and an item.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ContentID int64     `json:"content_id"`
	CreatedAt time.Time `json:"created_at"`

	ContentTitle string `json:"content_title,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}
