package bot

import (
	"context"
	"strings"
	"time"

	"smartclinic-backend/internal/common/logger"
	billingservice "smartclinic-backend/internal/features/billing/service"
	contentservice "smartclinic-backend/internal/features/content/service"
	"smartclinic-backend/internal/features/onboarding"
	supportservice "smartclinic-backend/internal/features/support/service"
	usermodels "smartclinic-backend/internal/features/user/models"
	userservice "smartclinic-backend/internal/features/user/service"
	"smartclinic-backend/internal/platform/telegram"

	"smartclinic-backend/internal/features/access"
)

// Sender is the outbound side of the Bot API, satisfied by
// telegram.Client and by test fakes.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup interface{}) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

// Dispatcher routes one update to the feature services. Per-chat routing
// order: open survey session first, then modal state, then menu intents,
// and anything left over becomes a support question.
type Dispatcher struct {
	sender    Sender
	users     userservice.UserService
	billing   billingservice.BillingService
	content   contentservice.ContentService
	support   supportservice.SupportService
	sessions  onboarding.Store
	webappURL string
	now       func() time.Time
}

func NewDispatcher(
	sender Sender,
	users userservice.UserService,
	billing billingservice.BillingService,
	content contentservice.ContentService,
	support supportservice.SupportService,
	sessions onboarding.Store,
	webappURL string,
) *Dispatcher {
	return &Dispatcher{
		sender:    sender,
		users:     users,
		billing:   billing,
		content:   content,
		support:   support,
		sessions:  sessions,
		webappURL: webappURL,
		now:       time.Now,
	}
}

// HandleUpdate processes a single update. Errors are logged, never
// returned: one failing update must not disturb the poll loop.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update telegram.Update) {
	switch {
	case update.Message != nil:
		d.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		d.handleCallback(ctx, update.CallbackQuery)
	}
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *telegram.Message) {
	if msg.From == nil {
		return
	}
	ident := identityOf(*msg.From)
	chatID := msg.Chat.ID

	// Every contact refreshes the profile and last-active timestamp.
	if _, err := d.users.Touch(ctx, ident); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to upsert user")
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	intent := ResolveIntent(text)

	switch intent {
	case IntentStart:
		d.startSurvey(ctx, chatID, ident)
		return
	case IntentCancel:
		d.cancel(ctx, chatID, ident)
		return
	}

	// An open survey consumes the message, including skip presses.
	session, err := d.sessions.GetSession(ctx, ident.TelegramID)
	if err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to load session")
	}
	if session != nil && session.Step != onboarding.StepComplete {
		d.advanceSurvey(ctx, chatID, ident, session, onboarding.Input{
			Text: text,
			Skip: intent == IntentSkip,
		})
		return
	}

	// Modal state: the next message after "ask a question" is the
	// question, whatever its text looks like.
	mode, err := d.sessions.GetMode(ctx, ident.TelegramID)
	if err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to load mode")
	}
	if mode == onboarding.ModeAwaitingQuestion {
		d.captureQuestion(ctx, chatID, ident, msg, text, "question")
		return
	}

	switch intent {
	case IntentNavigation:
		d.reply(ctx, chatID, navigationText, catalogKeyboard(d.webappURL))
	case IntentPromotions:
		d.reply(ctx, chatID, promotionsText, nil)
	case IntentAskQuestion:
		if err := d.sessions.SetMode(ctx, ident.TelegramID, onboarding.ModeAwaitingQuestion); err != nil {
			logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to set mode")
			d.reply(ctx, chatID, genericErrorText, nil)
			return
		}
		d.reply(ctx, chatID, askQuestionText, telegram.RemoveKeyboard())
	case IntentSubscription:
		d.showSubscription(ctx, chatID, ident)
	case IntentAnnouncements:
		d.reply(ctx, chatID, announcementsText(d.content.Announcements(ctx)), nil)
	case IntentSupport:
		d.reply(ctx, chatID, supportText, nil)
	default:
		// Free text outside any conversation state is a support question.
		d.captureQuestion(ctx, chatID, ident, msg, text, "")
	}
}

func (d *Dispatcher) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	ident := identityOf(cb.From)
	chatID := ident.TelegramID
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}

	if _, err := d.users.Touch(ctx, ident); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to upsert user")
	}

	switch cb.Data {
	case CallbackSubscribe1:
		d.authorizePlan(ctx, chatID, ident, 1, cb.ID)
	case CallbackSubscribe3:
		d.authorizePlan(ctx, chatID, ident, 3, cb.ID)
	case CallbackSubscribe12:
		d.authorizePlan(ctx, chatID, ident, 12, cb.ID)
	case CallbackToggleAutoRenew:
		enabled, err := d.users.ToggleAutoRenew(ctx, ident.TelegramID)
		if err != nil {
			logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to toggle auto-renew")
			d.answerCallback(ctx, cb.ID, genericErrorText)
			return
		}
		d.answerCallback(ctx, cb.ID, "")
		d.reply(ctx, chatID, autoRenewText(enabled), nil)
	default:
		d.answerCallback(ctx, cb.ID, "")
	}
}

func (d *Dispatcher) startSurvey(ctx context.Context, chatID int64, ident usermodels.Identity) {
	if err := d.sessions.ClearMode(ctx, ident.TelegramID); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to clear mode")
	}
	session := onboarding.Start()
	if err := d.sessions.SaveSession(ctx, ident.TelegramID, session); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to save session")
		d.reply(ctx, chatID, genericErrorText, nil)
		return
	}
	d.reply(ctx, chatID, greetingText(ident.FirstName), specialtyKeyboard())
}

func (d *Dispatcher) advanceSurvey(ctx context.Context, chatID int64, ident usermodels.Identity, session *onboarding.Session, in onboarding.Input) {
	outcome := onboarding.Advance(session, in)

	switch outcome.Prompt {
	case onboarding.PromptCity:
		d.sessions.SaveSession(ctx, ident.TelegramID, outcome.Session)
		d.reply(ctx, chatID, cityPromptText(outcome.Session.Specialty.Value), telegram.RemoveKeyboard())
	case onboarding.PromptEmail:
		d.sessions.SaveSession(ctx, ident.TelegramID, outcome.Session)
		d.reply(ctx, chatID, emailPromptText(outcome.Session.City.Value), emailSkipKeyboard())
	case onboarding.PromptEmailInvalid:
		// State unchanged, the user retries.
		d.reply(ctx, chatID, emailInvalidText, nil)
	case onboarding.PromptComplete:
		d.completeSurvey(ctx, chatID, ident, outcome.Session)
	}
}

func (d *Dispatcher) completeSurvey(ctx context.Context, chatID int64, ident usermodels.Identity, session *onboarding.Session) {
	if _, err := d.users.MergeSurvey(ctx, ident, session.Survey()); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to merge survey")
		d.reply(ctx, chatID, genericErrorText, nil)
		return
	}
	if err := d.sessions.DeleteSession(ctx, ident.TelegramID); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to delete session")
	}
	d.reply(ctx, chatID, onboardingCompleteText, telegram.RemoveKeyboard())
	d.showMainMenu(ctx, chatID, ident)
}

func (d *Dispatcher) showMainMenu(ctx context.Context, chatID int64, ident usermodels.Identity) {
	user, err := d.users.Get(ctx, ident.TelegramID)
	if err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to load user for menu")
	}
	d.reply(ctx, chatID, mainMenuText(access.StatusLine(user, d.now())), mainMenuKeyboard())
}

func (d *Dispatcher) showSubscription(ctx context.Context, chatID int64, ident usermodels.Identity) {
	user, err := d.users.Get(ctx, ident.TelegramID)
	if err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to load user for subscription view")
	}
	d.reply(ctx, chatID, subscriptionText(access.StatusLine(user, d.now())), subscriptionKeyboard())
}

func (d *Dispatcher) authorizePlan(ctx context.Context, chatID int64, ident usermodels.Identity, months int, callbackID string) {
	payment, err := d.billing.Authorize(ctx, ident.TelegramID, months, "")
	if err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Int("months", months).Msg("Failed to authorize payment")
		d.answerCallback(ctx, callbackID, genericErrorText)
		return
	}
	d.answerCallback(ctx, callbackID, "")
	d.reply(ctx, chatID, paymentAuthorizedText(payment.PlanMonths, payment.Amount), nil)
}

func (d *Dispatcher) captureQuestion(ctx context.Context, chatID int64, ident usermodels.Identity, msg *telegram.Message, text, topic string) {
	intake := supportservice.Intake{
		UserID:        ident.TelegramID,
		Body:          strings.TrimSpace(text),
		AttachmentRef: msg.AttachmentRef(),
		Topic:         topic,
	}
	if _, err := d.support.Submit(ctx, intake); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to record question")
		d.reply(ctx, chatID, genericErrorText, nil)
		return
	}
	if err := d.sessions.ClearMode(ctx, ident.TelegramID); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to clear mode")
	}
	d.reply(ctx, chatID, questionReceivedText, nil)
}

func (d *Dispatcher) cancel(ctx context.Context, chatID int64, ident usermodels.Identity) {
	if err := d.sessions.ClearMode(ctx, ident.TelegramID); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to clear mode")
	}
	if err := d.sessions.DeleteSession(ctx, ident.TelegramID); err != nil {
		logger.Error().Err(err).Int64("telegram_id", ident.TelegramID).Msg("Failed to delete session")
	}
	d.reply(ctx, chatID, questionCancelledText, nil)
	d.showMainMenu(ctx, chatID, ident)
}

func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string, markup interface{}) {
	if err := d.sender.SendMessage(ctx, chatID, text, markup); err != nil {
		logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (d *Dispatcher) answerCallback(ctx context.Context, callbackID, text string) {
	if err := d.sender.AnswerCallbackQuery(ctx, callbackID, text); err != nil {
		logger.Error().Err(err).Str("callback_id", callbackID).Msg("Failed to answer callback")
	}
}

func identityOf(u telegram.User) usermodels.Identity {
	return usermodels.Identity{
		TelegramID: u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}
