package service

import (
	"context"
	"testing"
	"time"

	"smartclinic-backend/internal/features/user/models"
	"smartclinic-backend/internal/features/user/repository"
)

type fakeUserRepo struct {
	users map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) Upsert(_ context.Context, id models.Identity, survey models.SurveyUpdate) (*models.User, error) {
	user, ok := f.users[id.TelegramID]
	if !ok {
		user = &models.User{TelegramID: id.TelegramID, SubscriptionTier: models.TierGuest, IsActive: true}
		f.users[id.TelegramID] = user
	}
	user.Username = id.Username
	user.FirstName = id.FirstName
	user.LastName = id.LastName
	if survey.Specialty != nil {
		user.Specialty = survey.Specialty
	}
	if survey.City != nil {
		user.City = survey.City
	}
	if survey.Email != nil {
		user.Email = survey.Email
	}
	user.LastActive = time.Now()
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*models.User, error) {
	user, ok := f.users[telegramID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) UpdateSubscription(_ context.Context, telegramID int64, tier string, endsAt time.Time, autoRenew bool) error {
	user := f.users[telegramID]
	user.SubscriptionTier = tier
	user.SubscriptionEndsAt = &endsAt
	user.AutoRenew = autoRenew
	return nil
}

func (f *fakeUserRepo) SetAutoRenew(_ context.Context, telegramID int64, autoRenew bool) (bool, error) {
	f.users[telegramID].AutoRenew = autoRenew
	return autoRenew, nil
}

func (f *fakeUserRepo) ArchiveInactive(context.Context, time.Duration) ([]int64, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountActive(context.Context) (int, error) { return len(f.users), nil }

func newTestService(repo repository.UserRepository, now time.Time) UserService {
	svc := NewUserService(repo).(*userService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestMergeSurveyDoesNotErasePriorAnswers(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ident := models.Identity{TelegramID: 5, FirstName: "Аня"}

	city := "Казань"
	if _, err := svc.MergeSurvey(ctx, ident, models.SurveyUpdate{City: &city}); err != nil {
		t.Fatalf("MergeSurvey: %v", err)
	}

	// A later survey with only an email must keep the city.
	email := "a@b.ru"
	user, err := svc.MergeSurvey(ctx, ident, models.SurveyUpdate{Email: &email})
	if err != nil {
		t.Fatalf("MergeSurvey: %v", err)
	}
	if user.City == nil || *user.City != "Казань" {
		t.Fatalf("city lost: %v", user.City)
	}
	if user.Email == nil || *user.Email != "a@b.ru" {
		t.Fatalf("email not merged: %v", user.Email)
	}
}

func TestExtendSubscriptionFromNow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo()
	svc := newTestService(repo, now)

	if _, err := svc.Touch(ctx, models.Identity{TelegramID: 5}); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	endsAt, err := svc.ExtendSubscription(ctx, 5, 1)
	if err != nil {
		t.Fatalf("ExtendSubscription: %v", err)
	}
	want := now.AddDate(0, 1, 0)
	if !endsAt.Equal(want) {
		t.Fatalf("endsAt = %v, want %v", endsAt, want)
	}
	if repo.users[5].SubscriptionTier != models.TierPaid {
		t.Fatalf("tier = %q, want paid", repo.users[5].SubscriptionTier)
	}
}

func TestExtendSubscriptionStacksOnActiveWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo()
	svc := newTestService(repo, now)

	if _, err := svc.Touch(ctx, models.Identity{TelegramID: 5}); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	// A window ending in the future extends from its end, not from now.
	current := now.AddDate(0, 2, 0)
	repo.users[5].SubscriptionEndsAt = &current

	endsAt, err := svc.ExtendSubscription(ctx, 5, 3)
	if err != nil {
		t.Fatalf("ExtendSubscription: %v", err)
	}
	want := current.AddDate(0, 3, 0)
	if !endsAt.Equal(want) {
		t.Fatalf("endsAt = %v, want %v", endsAt, want)
	}
}

func TestExtendSubscriptionIgnoresExpiredWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo()
	svc := newTestService(repo, now)

	if _, err := svc.Touch(ctx, models.Identity{TelegramID: 5}); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	expired := now.AddDate(0, -1, 0)
	repo.users[5].SubscriptionEndsAt = &expired

	endsAt, err := svc.ExtendSubscription(ctx, 5, 1)
	if err != nil {
		t.Fatalf("ExtendSubscription: %v", err)
	}
	want := now.AddDate(0, 1, 0)
	if !endsAt.Equal(want) {
		t.Fatalf("endsAt = %v, want %v", endsAt, want)
	}
}

func TestToggleAutoRenew(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	if _, err := svc.Touch(ctx, models.Identity{TelegramID: 5}); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	on, err := svc.ToggleAutoRenew(ctx, 5)
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v), want (true, nil)", on, err)
	}
	off, err := svc.ToggleAutoRenew(ctx, 5)
	if err != nil || off {
		t.Fatalf("second toggle = (%v, %v), want (false, nil)", off, err)
	}
}
