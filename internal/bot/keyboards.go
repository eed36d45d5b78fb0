package bot

import (
	"smartclinic-backend/internal/platform/telegram"

	"smartclinic-backend/internal/features/billing/models"
)

// Callback payloads for the subscription inline keyboard.
const (
	CallbackSubscribe1      = "subscribe_1"
	CallbackSubscribe3      = "subscribe_3"
	CallbackSubscribe12     = "subscribe_12"
	CallbackToggleAutoRenew = "toggle_auto_renew"
)

func specialtyKeyboard() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard(true,
		[]string{"🏥 Терапия", "🧠 Психология"},
		[]string{"💊 Фармакология", "🔬 Диагностика"},
		[]string{"👶 Педиатрия", "❤️ Кардиология"},
		[]string{LabelSkipSpecialty},
	)
}

func emailSkipKeyboard() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard(true, []string{LabelSkipEmail})
}

func mainMenuKeyboard() *telegram.ReplyKeyboardMarkup {
	return telegram.NewReplyKeyboard(false,
		[]string{LabelNavigation, LabelPromotions},
		[]string{LabelAskQuestion, LabelSubscription},
		[]string{LabelAnnouncements, LabelSupport},
	)
}

func catalogKeyboard(webappURL string) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "🚀 Открыть каталог", WebApp: &telegram.WebAppInfo{URL: webappURL}}},
		},
	}
}

func subscriptionKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: models.Plans[1].Label, CallbackData: CallbackSubscribe1}},
			{{Text: models.Plans[3].Label, CallbackData: CallbackSubscribe3}},
			{{Text: models.Plans[12].Label, CallbackData: CallbackSubscribe12}},
			{{Text: "⚙️ Автопродление", CallbackData: CallbackToggleAutoRenew}},
		},
	}
}
