package bot

import (
	"fmt"
	"strings"

	contentmodels "smartclinic-backend/internal/features/content/models"
)

// Menu and quick-reply labels. ResolveIntent maps them back to intents;
// nothing else compares against them.
const (
	LabelSkipSpecialty = "🚀 Пропустить вопрос"
	LabelSkipEmail     = "📧 Пропустить email"

	LabelNavigation    = "📱 Навигация"
	LabelPromotions    = "🎁 Акции"
	LabelAskQuestion   = "❓ Задать вопрос"
	LabelSubscription  = "💳 Подписка"
	LabelAnnouncements = "📅 Анонсы"
	LabelSupport       = "🆘 Поддержка"
)

// Reply texts are HTML, sent with parse_mode HTML.

func greetingText(firstName string) string {
	return fmt.Sprintf(
		"👋 <b>Привет, %s!</b>\n\n"+
			"Добро пожаловать в <b>Smart Clinic</b> — твою платформу для профессионального развития! 🎯\n\n"+
			"Давай познакомимся поближе. Это поможет нам подбирать для тебя самый релевантный контент.\n\n"+
			"<b>В какой области ты специализируешься?</b>",
		firstName,
	)
}

func cityPromptText(specialty string) string {
	return fmt.Sprintf(
		"Отлично! <b>%s</b> — это востребованное направление.\n\n"+
			"<b>Из какого ты города?</b>\n\n"+
			"Напиши название города:",
		specialty,
	)
}

func emailPromptText(city string) string {
	return fmt.Sprintf(
		"Приветствуем из <b>%s</b>! 🌆\n\n"+
			"<b>Укажи свой email</b> для важных уведомлений и доступа к материалам:\n\n"+
			"<i>Можно пропустить, нажав /skip</i>",
		city,
	)
}

const emailInvalidText = "❌ Пожалуйста, введи корректный email адрес"

const onboardingCompleteText = "🎉 <b>Отлично! Регистрация завершена!</b>\n\n" +
	"Теперь у тебя есть полный доступ к возможностям Smart Clinic:\n\n" +
	"• 📚 <b>Курсы</b> и обучающие материалы\n" +
	"• 🎤 <b>Вебинары</b> с экспертами\n" +
	"• 💼 <b>Разборы кейсов</b>\n" +
	"• 🎁 <b>Акции</b> и специальные предложения\n\n" +
	"<i>Мы подбираем контент именно для твоей специализации!</i>"

func mainMenuText(statusLine string) string {
	return fmt.Sprintf(
		"<b>Главное меню</b>\n\n"+
			"<b>Статус подписки:</b> %s\n\n"+
			"<b>Выбери раздел:</b>",
		statusLine,
	)
}

const navigationText = "📚 <b>Навигация по контенту</b>\n\n" +
	"Открой интерактивный каталог курсов, вебинаров и материалов:\n\n" +
	"• 🎯 <b>Курсы</b> — системное обучение\n" +
	"• 🎤 <b>Вебинары</b> — живые эфиры\n" +
	"• 💼 <b>Разборы</b> — практические кейсы\n" +
	"• 📄 <b>Материалы</b> — полезные файлы\n\n" +
	"<i>В WebApp ты сможешь добавлять курсы в избранное, отслеживать прогресс и многое другое!</i>"

func subscriptionText(statusLine string) string {
	return fmt.Sprintf(
		"💎 <b>Управление подпиской SMART CLINIC</b>\n\n"+
			"<b>Текущий статус:</b> %s\n\n"+
			"<b>Что входит в подписку:</b>\n"+
			"• 🔓 <b>Все курсы</b> (50+ материалов)\n"+
			"• 🎤 <b>Вебинары</b> с экспертами\n"+
			"• 💼 <b>Закрытые разборы</b>\n"+
			"• 📚 <b>Новые материалы</b> каждую неделю\n"+
			"• 👥 <b>Закрытое сообщество</b>\n"+
			"• 🎁 <b>Скидки</b> на мероприятия\n\n"+
			"<b>Выбери период:</b>",
		statusLine,
	)
}

func paymentAuthorizedText(months int, amount float64) string {
	return fmt.Sprintf(
		"💳 <b>Заказ оформлен!</b>\n\n"+
			"Период: <b>%d мес.</b>\n"+
			"К оплате: <b>%.0f₽</b>\n\n"+
			"После оплаты подписка активируется автоматически. 📚",
		months, amount,
	)
}

func autoRenewText(enabled bool) string {
	if enabled {
		return "⚙️ Автопродление <b>включено</b>. Подписка будет продлеваться автоматически."
	}
	return "⚙️ Автопродление <b>выключено</b>."
}

const promotionsText = "🎁 <b>Акции и специальные предложения</b>\n\n" +
	"Введи промокод при оформлении подписки и получи скидку!\n\n" +
	"<i>Следи за новыми акциями в этом разделе.</i>"

const askQuestionText = "❓ <b>Задай свой вопрос</b>\n\n" +
	"Напиши вопрос одним сообщением. Можно приложить фото или файл.\n\n" +
	"<i>Отменить — /cancel</i>"

const questionReceivedText = "✅ <b>Вопрос принят!</b>\n\n" +
	"Мы ответим в течение <b>24 часов</b>. Ответ придёт сюда же, в этот чат."

const questionCancelledText = "Хорошо, вопрос отменён. Возвращаю в главное меню."

const supportText = "🆘 <b>Поддержка</b>\n\n" +
	"Если что-то не работает или есть вопрос по подписке — просто напиши сюда, " +
	"и команда Smart Clinic ответит в течение <b>24 часов</b>."

const announcementsEmptyText = "📅 <b>Ближайшие события</b>\n\n" +
	"На данный момент запланированных событий нет.\n\n" +
	"<i>Следи за обновлениями — скоро появятся новые вебинары и курсы!</i>"

func announcementsText(items []contentmodels.Announcement) string {
	if len(items) == 0 {
		return announcementsEmptyText
	}
	var b strings.Builder
	b.WriteString("📅 <b>Ближайшие события</b>\n\n")
	for i, a := range items {
		fmt.Fprintf(&b, "%d. <b>%s</b>\n", i+1, a.Title)
		fmt.Fprintf(&b, "   📍 %s\n", a.ScheduleText)
		if a.Instructor != "" {
			fmt.Fprintf(&b, "   👨‍🏫 %s\n", a.Instructor)
		}
		if a.Duration != "" {
			fmt.Fprintf(&b, "   ⏱ %s\n", a.Duration)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

const genericErrorText = "😔 Что-то пошло не так. Попробуй ещё раз чуть позже."
