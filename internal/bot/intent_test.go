package bot

import "testing"

func TestResolveIntent(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{"/start", IntentStart},
		{"/start ref123", IntentStart},
		{"/start@smartclinic_bot", IntentStart},
		{"/skip", IntentSkip},
		{"/cancel", IntentCancel},
		{"/unknown", IntentNone},
		{LabelSkipSpecialty, IntentSkip},
		{LabelSkipEmail, IntentSkip},
		{LabelNavigation, IntentNavigation},
		{LabelPromotions, IntentPromotions},
		{LabelAskQuestion, IntentAskQuestion},
		{LabelSubscription, IntentSubscription},
		{LabelAnnouncements, IntentAnnouncements},
		{LabelSupport, IntentSupport},
		{"  " + LabelSupport + "  ", IntentSupport},
		{"просто текст", IntentNone},
		{"", IntentNone},
	}

	for _, tc := range cases {
		if got := ResolveIntent(tc.text); got != tc.want {
			t.Fatalf("ResolveIntent(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
