package models

import "time"

// Subscription tiers.
const (
	TierGuest = "guest"
	TierPaid  = "paid"
)

// User is the durable per-learner profile: Telegram identity, survey
// answers and the subscription window.
type User struct {
	ID                 int64      `json:"id"`
	TelegramID         int64      `json:"telegram_id"`
	Username           string     `json:"username,omitempty"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name,omitempty"`
	Email              *string    `json:"email,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	City               *string    `json:"city,omitempty"`
	Specialty          *string    `json:"specialty,omitempty"`
	Experience         *string    `json:"experience,omitempty"`
	SubscriptionTier   string     `json:"subscription_tier"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
	AutoRenew          bool       `json:"auto_renew"`
	IsActive           bool       `json:"is_active"`
	LastActive         time.Time  `json:"last_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Identity is what every inbound message carries about its sender.
type Identity struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// SurveyUpdate carries optional survey values merged into the profile
// non-destructively: nil fields never overwrite stored values.
type SurveyUpdate struct {
	Specialty  *string
	City       *string
	Email      *string
	Phone      *string
	Experience *string
}
