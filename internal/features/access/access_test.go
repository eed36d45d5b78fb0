package access

import (
	"testing"
	"time"

	contentmodels "smartclinic-backend/internal/features/content/models"
	usermodels "smartclinic-backend/internal/features/user/models"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func userEndingAt(endsAt *time.Time) *usermodels.User {
	return &usermodels.User{TelegramID: 1, SubscriptionEndsAt: endsAt}
}

func TestHasPremiumAccess(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		user *usermodels.User
		want bool
	}{
		{"nil user", nil, false},
		{"no end timestamp", userEndingAt(nil), false},
		{"expired", userEndingAt(&past), false},
		{"ends exactly now", userEndingAt(&now), false},
		{"active", userEndingAt(&future), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasPremiumAccess(tc.user, now); got != tc.want {
				t.Fatalf("HasPremiumAccess() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVisibleTo(t *testing.T) {
	future := now.Add(time.Hour)
	subscriber := userEndingAt(&future)
	guest := userEndingAt(nil)

	free := &contentmodels.ContentItem{IsFree: true, IsPremium: false}
	open := &contentmodels.ContentItem{IsFree: false, IsPremium: false}
	premium := &contentmodels.ContentItem{IsFree: false, IsPremium: true}

	cases := []struct {
		name string
		item *contentmodels.ContentItem
		user *usermodels.User
		want bool
	}{
		{"free item to guest", free, guest, true},
		{"free item to nil user", free, nil, true},
		{"open item to guest", open, guest, true},
		{"premium item to guest", premium, guest, false},
		{"premium item to nil user", premium, nil, false},
		{"premium item to subscriber", premium, subscriber, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisibleTo(tc.item, tc.user, now); got != tc.want {
				t.Fatalf("VisibleTo() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatusLine(t *testing.T) {
	if got := StatusLine(nil, now); got != "❌ Не активна" {
		t.Fatalf("StatusLine(nil) = %q", got)
	}

	endsAt := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	got := StatusLine(userEndingAt(&endsAt), now)
	want := "✅ Активна до 02.04.2026"
	if got != want {
		t.Fatalf("StatusLine() = %q, want %q", got, want)
	}
}
