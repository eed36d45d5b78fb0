package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	billingmodels "smartclinic-backend/internal/features/billing/models"
	contentmodels "smartclinic-backend/internal/features/content/models"
	"smartclinic-backend/internal/features/onboarding"
	supportmodels "smartclinic-backend/internal/features/support/models"
	supportservice "smartclinic-backend/internal/features/support/service"
	usermodels "smartclinic-backend/internal/features/user/models"
	"smartclinic-backend/internal/platform/telegram"
)

type sentMessage struct {
	chatID int64
	text   string
	markup interface{}
}

type fakeSender struct {
	messages  []sentMessage
	callbacks []string
}

func (f *fakeSender) SendMessage(_ context.Context, chatID int64, text string, markup interface{}) error {
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text, markup: markup})
	return nil
}

func (f *fakeSender) AnswerCallbackQuery(_ context.Context, callbackID, _ string) error {
	f.callbacks = append(f.callbacks, callbackID)
	return nil
}

func (f *fakeSender) last(t *testing.T) sentMessage {
	t.Helper()
	if len(f.messages) == 0 {
		t.Fatal("no messages sent")
	}
	return f.messages[len(f.messages)-1]
}

type fakeUsers struct {
	users   map[int64]*usermodels.User
	surveys []usermodels.SurveyUpdate
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[int64]*usermodels.User)}
}

func (f *fakeUsers) Touch(_ context.Context, id usermodels.Identity) (*usermodels.User, error) {
	user, ok := f.users[id.TelegramID]
	if !ok {
		user = &usermodels.User{TelegramID: id.TelegramID, FirstName: id.FirstName}
		f.users[id.TelegramID] = user
	}
	return user, nil
}

func (f *fakeUsers) MergeSurvey(_ context.Context, id usermodels.Identity, survey usermodels.SurveyUpdate) (*usermodels.User, error) {
	f.surveys = append(f.surveys, survey)
	return f.Touch(context.Background(), id)
}

func (f *fakeUsers) Get(_ context.Context, telegramID int64) (*usermodels.User, error) {
	return f.users[telegramID], nil
}

func (f *fakeUsers) ExtendSubscription(_ context.Context, _ int64, months int) (time.Time, error) {
	return time.Now().AddDate(0, months, 0), nil
}

func (f *fakeUsers) ToggleAutoRenew(_ context.Context, telegramID int64) (bool, error) {
	u := f.users[telegramID]
	u.AutoRenew = !u.AutoRenew
	return u.AutoRenew, nil
}

type fakeBilling struct {
	authorized []int
}

func (f *fakeBilling) ValidatePromo(context.Context, string, float64) (*billingmodels.PromoCode, float64, error) {
	return nil, 0, nil
}

func (f *fakeBilling) Authorize(_ context.Context, userID int64, months int, _ string) (*billingmodels.Payment, error) {
	f.authorized = append(f.authorized, months)
	plan := billingmodels.Plans[months]
	return &billingmodels.Payment{ID: "p1", UserID: userID, PlanMonths: months, Amount: plan.Price, Status: billingmodels.PaymentPending}, nil
}

func (f *fakeBilling) ConfirmPayment(context.Context, string) (time.Time, error) {
	return time.Time{}, nil
}

type fakeContent struct{}

func (fakeContent) List(context.Context, contentmodels.ListFilters) ([]*contentmodels.ContentItem, error) {
	return nil, nil
}

func (fakeContent) GetByID(context.Context, int64) (*contentmodels.ContentItem, error) {
	return nil, nil
}

func (fakeContent) ListCategories(context.Context) ([]*contentmodels.Category, error) {
	return nil, nil
}

func (fakeContent) Announcements(context.Context) []contentmodels.Announcement {
	return []contentmodels.Announcement{{Title: "Вебинар", ScheduleText: "завтра"}}
}

type fakeSupport struct {
	intakes []supportservice.Intake
}

func (f *fakeSupport) Submit(_ context.Context, intake supportservice.Intake) (*supportmodels.Question, error) {
	f.intakes = append(f.intakes, intake)
	return &supportmodels.Question{ID: int64(len(f.intakes)), UserID: intake.UserID, Question: intake.Body, Status: supportmodels.StatusNew}, nil
}

func (f *fakeSupport) Get(context.Context, int64) (*supportmodels.Question, error) { return nil, nil }

func (f *fakeSupport) ListNew(context.Context, int, int) ([]*supportmodels.Question, error) {
	return nil, nil
}

func (f *fakeSupport) Answer(context.Context, int64, string) (*supportmodels.Question, error) {
	return nil, nil
}

type harness struct {
	dispatcher *Dispatcher
	sender     *fakeSender
	users      *fakeUsers
	billing    *fakeBilling
	support    *fakeSupport
	store      *onboarding.MemoryStore
}

func newHarness() *harness {
	sender := &fakeSender{}
	users := newFakeUsers()
	billing := &fakeBilling{}
	support := &fakeSupport{}
	store := onboarding.NewMemoryStore()
	d := NewDispatcher(sender, users, billing, fakeContent{}, support, store, "https://app.example.com/webapp")
	return &harness{dispatcher: d, sender: sender, users: users, billing: billing, support: support, store: store}
}

func (h *harness) message(t *testing.T, text string) {
	t.Helper()
	h.dispatcher.HandleUpdate(context.Background(), telegram.Update{
		Message: &telegram.Message{
			From: &telegram.User{ID: 7, FirstName: "Аня"},
			Chat: telegram.Chat{ID: 7},
			Text: text,
		},
	})
}

func (h *harness) callback(t *testing.T, data string) {
	t.Helper()
	h.dispatcher.HandleUpdate(context.Background(), telegram.Update{
		CallbackQuery: &telegram.CallbackQuery{
			ID:   "cb1",
			From: telegram.User{ID: 7, FirstName: "Аня"},
			Data: data,
		},
	})
}

func TestOnboardingConversation(t *testing.T) {
	h := newHarness()

	h.message(t, "/start")
	if got := h.sender.last(t); !strings.Contains(got.text, "Привет, Аня") {
		t.Fatalf("greeting = %q", got.text)
	}
	session, _ := h.store.GetSession(context.Background(), 7)
	if session == nil || session.Step != onboarding.StepSpecialty {
		t.Fatalf("session after /start = %+v", session)
	}

	h.message(t, "🏥 Терапия")
	if got := h.sender.last(t); !strings.Contains(got.text, "Терапия") || !strings.Contains(got.text, "города") {
		t.Fatalf("city prompt = %q", got.text)
	}

	h.message(t, "Казань")
	if got := h.sender.last(t); !strings.Contains(got.text, "Казань") || !strings.Contains(got.text, "email") {
		t.Fatalf("email prompt = %q", got.text)
	}

	h.message(t, "📧 Пропустить email")

	if len(h.users.surveys) != 1 {
		t.Fatalf("surveys merged = %d, want 1", len(h.users.surveys))
	}
	survey := h.users.surveys[0]
	if survey.Specialty == nil || *survey.Specialty != "Терапия" {
		t.Fatalf("survey specialty = %v", survey.Specialty)
	}
	if survey.City == nil || *survey.City != "Казань" {
		t.Fatalf("survey city = %v", survey.City)
	}
	if survey.Email != nil {
		t.Fatalf("skipped email stored: %v", *survey.Email)
	}

	if session, _ := h.store.GetSession(context.Background(), 7); session != nil {
		t.Fatalf("session survived completion: %+v", session)
	}
	// Completion text plus the main menu.
	if got := h.sender.last(t); !strings.Contains(got.text, "Главное меню") {
		t.Fatalf("final message = %q", got.text)
	}
}

func TestInvalidEmailRetries(t *testing.T) {
	h := newHarness()
	h.message(t, "/start")
	h.message(t, "Терапия")
	h.message(t, "Москва")

	h.message(t, "not-an-email")
	if got := h.sender.last(t); !strings.Contains(got.text, "корректный email") {
		t.Fatalf("invalid email reply = %q", got.text)
	}
	session, _ := h.store.GetSession(context.Background(), 7)
	if session == nil || session.Step != onboarding.StepEmail {
		t.Fatalf("session after bad email = %+v", session)
	}

	h.message(t, "doc@clinic.ru")
	if len(h.users.surveys) != 1 {
		t.Fatalf("survey not merged after retry")
	}
	if got := *h.users.surveys[0].Email; got != "doc@clinic.ru" {
		t.Fatalf("email = %q", got)
	}
}

func TestAskQuestionModalFlow(t *testing.T) {
	h := newHarness()

	h.message(t, LabelAskQuestion)
	mode, _ := h.store.GetMode(context.Background(), 7)
	if mode != onboarding.ModeAwaitingQuestion {
		t.Fatalf("mode = %q, want awaiting_question", mode)
	}

	// The next message is the question even if it looks like a menu label.
	h.message(t, LabelSupport)
	if len(h.support.intakes) != 1 {
		t.Fatalf("intakes = %d, want 1", len(h.support.intakes))
	}
	if h.support.intakes[0].Topic != "question" {
		t.Fatalf("topic = %q", h.support.intakes[0].Topic)
	}
	if mode, _ := h.store.GetMode(context.Background(), 7); mode != "" {
		t.Fatalf("mode survived capture: %q", mode)
	}
	if got := h.sender.last(t); !strings.Contains(got.text, "Вопрос принят") {
		t.Fatalf("ack = %q", got.text)
	}
}

func TestCancelAbortsQuestion(t *testing.T) {
	h := newHarness()

	h.message(t, LabelAskQuestion)
	h.message(t, "/cancel")

	if len(h.support.intakes) != 0 {
		t.Fatalf("cancelled question submitted: %d", len(h.support.intakes))
	}
	if mode, _ := h.store.GetMode(context.Background(), 7); mode != "" {
		t.Fatalf("mode survived cancel: %q", mode)
	}
}

func TestFreeTextBecomesSupportQuestion(t *testing.T) {
	h := newHarness()

	h.message(t, "почему не открывается курс?")
	if len(h.support.intakes) != 1 {
		t.Fatalf("intakes = %d, want 1", len(h.support.intakes))
	}
	intake := h.support.intakes[0]
	if intake.Body != "почему не открывается курс?" {
		t.Fatalf("body = %q", intake.Body)
	}
	if intake.Topic != "" {
		t.Fatalf("unrequested topic = %q", intake.Topic)
	}
}

func TestSubscribeCallbackAuthorizesPlan(t *testing.T) {
	h := newHarness()

	h.callback(t, CallbackSubscribe3)
	if len(h.billing.authorized) != 1 || h.billing.authorized[0] != 3 {
		t.Fatalf("authorized plans = %v, want [3]", h.billing.authorized)
	}
	if len(h.sender.callbacks) != 1 {
		t.Fatalf("callback not answered")
	}
	if got := h.sender.last(t); !strings.Contains(got.text, "2490") {
		t.Fatalf("authorization reply = %q", got.text)
	}
}

func TestToggleAutoRenewCallback(t *testing.T) {
	h := newHarness()

	h.callback(t, CallbackToggleAutoRenew)
	if got := h.sender.last(t); !strings.Contains(got.text, "включено") {
		t.Fatalf("first toggle reply = %q", got.text)
	}
	h.callback(t, CallbackToggleAutoRenew)
	if got := h.sender.last(t); !strings.Contains(got.text, "выключено") {
		t.Fatalf("second toggle reply = %q", got.text)
	}
}

func TestAnnouncementsIntent(t *testing.T) {
	h := newHarness()

	h.message(t, LabelAnnouncements)
	if got := h.sender.last(t); !strings.Contains(got.text, "Вебинар") {
		t.Fatalf("announcements reply = %q", got.text)
	}
}
