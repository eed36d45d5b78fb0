package bot

import "strings"

// Intent is what an inbound message asks for, resolved from commands and
// menu labels. Handlers switch on intents, never on display text, so the
// emoji-prefixed labels can change without touching behavior.
type Intent int

const (
	IntentNone Intent = iota
	IntentStart
	IntentSkip
	IntentCancel
	IntentNavigation
	IntentPromotions
	IntentAskQuestion
	IntentSubscription
	IntentAnnouncements
	IntentSupport
)

// labelIntents maps the quick-reply labels the bot itself renders back
// to intents. Commands are resolved separately so they work even when a
// client sends them with a payload ("/start ref123").
var labelIntents = map[string]Intent{
	LabelSkipSpecialty: IntentSkip,
	LabelSkipEmail:     IntentSkip,
	LabelNavigation:    IntentNavigation,
	LabelPromotions:    IntentPromotions,
	LabelAskQuestion:   IntentAskQuestion,
	LabelSubscription:  IntentSubscription,
	LabelAnnouncements: IntentAnnouncements,
	LabelSupport:       IntentSupport,
}

// ResolveIntent classifies a message text. Unknown text resolves to
// IntentNone and is handled by whatever conversation state is active.
func ResolveIntent(text string) Intent {
	trimmed := strings.TrimSpace(text)
	if cmd, ok := strings.CutPrefix(trimmed, "/"); ok {
		cmd, _, _ = strings.Cut(cmd, " ")
		cmd, _, _ = strings.Cut(cmd, "@")
		switch strings.ToLower(cmd) {
		case "start":
			return IntentStart
		case "skip":
			return IntentSkip
		case "cancel":
			return IntentCancel
		}
		return IntentNone
	}
	if intent, ok := labelIntents[trimmed]; ok {
		return intent
	}
	return IntentNone
}
