package access

import (
	"fmt"
	"time"

	contentmodels "smartclinic-backend/internal/features/content/models"
	usermodels "smartclinic-backend/internal/features/user/models"
)

// Pure subscription and visibility decisions. No side effects; all
// functions are referentially transparent given a profile and a clock
// reading.

// HasPremiumAccess reports whether the profile's paid window is open at
// now. A profile with no end timestamp is never subscribed.
func HasPremiumAccess(u *usermodels.User, now time.Time) bool {
	if u == nil || u.SubscriptionEndsAt == nil {
		return false
	}
	return u.SubscriptionEndsAt.After(now)
}

// VisibleTo reports whether the item may be shown to the profile.
func VisibleTo(item *contentmodels.ContentItem, u *usermodels.User, now time.Time) bool {
	if item.IsFree || !item.IsPremium {
		return true
	}
	return HasPremiumAccess(u, now)
}

// StatusLine renders the derived subscription status. It is computed at
// render time from the stored end timestamp, never stored.
func StatusLine(u *usermodels.User, now time.Time) string {
	if !HasPremiumAccess(u, now) {
		return "❌ Не активна"
	}
	return fmt.Sprintf("✅ Активна до %s", u.SubscriptionEndsAt.Format("02.01.2006"))
}
