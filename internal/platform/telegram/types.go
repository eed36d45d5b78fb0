package telegram

// Subset of the Bot API types the bot consumes: sender identity, message
// text, callback payload and attachment references.

type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

type Message struct {
	MessageID int64       `json:"message_id"`
	From      *User       `json:"from,omitempty"`
	Chat      Chat        `json:"chat"`
	Text      string      `json:"text,omitempty"`
	Photo     []PhotoSize `json:"photo,omitempty"`
	Document  *Document   `json:"document,omitempty"`
	Caption   string      `json:"caption,omitempty"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type PhotoSize struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Document struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name,omitempty"`
}

// AttachmentRef returns the file reference of the largest photo or the
// document attached to the message, if any.
func (m *Message) AttachmentRef() string {
	if m.Document != nil {
		return m.Document.FileID
	}
	if len(m.Photo) > 0 {
		return m.Photo[len(m.Photo)-1].FileID
	}
	return ""
}

// Reply markup variants. Exactly one is attached to an outbound message.

type ReplyKeyboardMarkup struct {
	Keyboard        [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard  bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard bool               `json:"one_time_keyboard,omitempty"`
}

type KeyboardButton struct {
	Text string `json:"text"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text         string      `json:"text"`
	CallbackData string      `json:"callback_data,omitempty"`
	WebApp       *WebAppInfo `json:"web_app,omitempty"`
	URL          string      `json:"url,omitempty"`
}

type WebAppInfo struct {
	URL string `json:"url"`
}

type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

// NewReplyKeyboard builds a persistent quick-reply keyboard from rows of labels.
func NewReplyKeyboard(oneTime bool, rows ...[]string) *ReplyKeyboardMarkup {
	kb := &ReplyKeyboardMarkup{ResizeKeyboard: true, OneTimeKeyboard: oneTime}
	for _, row := range rows {
		var buttons []KeyboardButton
		for _, label := range row {
			buttons = append(buttons, KeyboardButton{Text: label})
		}
		kb.Keyboard = append(kb.Keyboard, buttons)
	}
	return kb
}

// RemoveKeyboard clears any quick-reply keyboard on the client.
func RemoveKeyboard() *ReplyKeyboardRemove {
	return &ReplyKeyboardRemove{RemoveKeyboard: true}
}
