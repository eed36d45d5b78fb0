package models

import "time"

// Content kinds.
const (
	TypeCourse     = "course"
	TypeWebinar    = "webinar"
	TypeCaseReview = "case-review"
	TypeMaterial   = "material"
)

// Category groups content items for the catalog view.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}

// ContentItem is a single learning asset. Joined category attributes are
// filled by list/get queries for display.
type ContentItem struct {
	ID                  int64      `json:"id"`
	CategoryID          int64      `json:"category_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	ContentType         string     `json:"content_type"`
	DurationMinutes     *int       `json:"duration_minutes,omitempty"`
	Price               *float64   `json:"price,omitempty"`
	OldPrice            *float64   `json:"old_price,omitempty"`
	IsPremium           bool       `json:"is_premium"`
	IsFree              bool       `json:"is_free"`
	ScheduleTime        *time.Time `json:"schedule_time,omitempty"`
	MaxParticipants     *int       `json:"max_participants,omitempty"`
	CurrentParticipants int        `json:"current_participants"`
	Instructor          string     `json:"instructor,omitempty"`
	IsActive            bool       `json:"is_active"`
	CreatedAt           time.Time  `json:"created_at"`

	CategoryName  string `json:"category_name,omitempty"`
	CategoryIcon  string `json:"category_icon,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
}

// ListFilters narrows the catalog listing. Limit/offset pagination is
// caller-supplied.
type ListFilters struct {
	CategoryID  *int64
	ContentType string
	Limit       int
	Offset      int
}

// Announcement is one entry of the upcoming-events view. The static
// fallback list uses the same shape.
type Announcement struct {
	Title        string     `json:"title"`
	ScheduleText string     `json:"schedule_text"`
	Instructor   string     `json:"instructor,omitempty"`
	Duration     string     `json:"duration,omitempty"`
	ScheduleTime *time.Time `json:"schedule_time,omitempty"`
}
