package service

import (
	"context"
	"errors"
	"time"

	"smartclinic-backend/internal/features/user/models"
	"smartclinic-backend/internal/features/user/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	// Touch upserts the profile from inbound identity, refreshing
	// last_active. Called for every update the bot receives.
	Touch(ctx context.Context, id models.Identity) (*models.User, error)
	// MergeSurvey folds completed onboarding answers into the profile.
	MergeSurvey(ctx context.Context, id models.Identity, survey models.SurveyUpdate) (*models.User, error)
	Get(ctx context.Context, telegramID int64) (*models.User, error)
	// ExtendSubscription moves the paid window forward by the plan
	// duration, starting from the current end when it is still in the
	// future.
	ExtendSubscription(ctx context.Context, telegramID int64, months int) (time.Time, error)
	ToggleAutoRenew(ctx context.Context, telegramID int64) (bool, error)
}

type userService struct {
	repo repository.UserRepository
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

func (s *userService) Touch(ctx context.Context, id models.Identity) (*models.User, error) {
	return s.repo.Upsert(ctx, id, models.SurveyUpdate{})
}

func (s *userService) MergeSurvey(ctx context.Context, id models.Identity, survey models.SurveyUpdate) (*models.User, error) {
	return s.repo.Upsert(ctx, id, survey)
}

func (s *userService) Get(ctx context.Context, telegramID int64) (*models.User, error) {
	user, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ExtendSubscription(ctx context.Context, telegramID int64, months int) (time.Time, error) {
	user, err := s.Get(ctx, telegramID)
	if err != nil {
		return time.Time{}, err
	}

	// An unexpired window is extended, an expired or absent one restarts
	// from now.
	start := s.now()
	if user.SubscriptionEndsAt != nil && user.SubscriptionEndsAt.After(start) {
		start = *user.SubscriptionEndsAt
	}
	endsAt := start.AddDate(0, months, 0)

	if err := s.repo.UpdateSubscription(ctx, telegramID, models.TierPaid, endsAt, user.AutoRenew); err != nil {
		return time.Time{}, err
	}
	return endsAt, nil
}

func (s *userService) ToggleAutoRenew(ctx context.Context, telegramID int64) (bool, error) {
	user, err := s.Get(ctx, telegramID)
	if err != nil {
		return false, err
	}
	return s.repo.SetAutoRenew(ctx, telegramID, !user.AutoRenew)
}
