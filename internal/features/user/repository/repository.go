package repository

import (
	"context"
	"errors"
	"time"

	"smartclinic-backend/internal/features/user/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	// Upsert inserts the profile on first contact or refreshes identity
	// fields and merges non-nil survey fields on later messages.
	Upsert(ctx context.Context, id models.Identity, survey models.SurveyUpdate) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	UpdateSubscription(ctx context.Context, telegramID int64, tier string, endsAt time.Time, autoRenew bool) error
	SetAutoRenew(ctx context.Context, telegramID int64, autoRenew bool) (bool, error)
	// ArchiveInactive clears the active flag on users whose last activity
	// is older than the threshold and returns their telegram ids.
	ArchiveInactive(ctx context.Context, olderThan time.Duration) ([]int64, error)
	CountActive(ctx context.Context) (int, error)
}
