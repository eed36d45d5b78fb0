package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiBaseURL = "https://api.telegram.org"

// Client is a minimal Bot API client over net/http. Message delivery is
// an external collaborator; only the calls the bot needs are implemented.
type Client struct {
	httpClient *http.Client
	token      string
}

// Response represents a Bot API envelope.
type Response struct {
	Ok          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
}

func NewClient(token string) *Client {
	return &Client{
		// Long polls hold the connection open for up to the poll timeout,
		// so the HTTP timeout must exceed it.
		httpClient: &http.Client{Timeout: 65 * time.Second},
		token:      token,
	}
}

func (c *Client) call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", apiBaseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var apiResp Response
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !apiResp.Ok {
		return nil, fmt.Errorf("telegram %s: %s", method, apiResp.Description)
	}

	return apiResp.Result, nil
}

type sendMessageRequest struct {
	ChatID      int64       `json:"chat_id"`
	Text        string      `json:"text"`
	ParseMode   string      `json:"parse_mode,omitempty"`
	ReplyMarkup interface{} `json:"reply_markup,omitempty"`
}

// SendMessage sends an HTML-formatted message with an optional reply
// markup (quick-reply keyboard, inline buttons or keyboard removal).
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markup interface{}) error {
	_, err := c.call(ctx, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: markup,
	})
	return err
}

type getUpdatesRequest struct {
	Offset         int64    `json:"offset,omitempty"`
	Timeout        int      `json:"timeout,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

// GetUpdates long-polls for new updates starting from offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	result, err := c.call(ctx, "getUpdates", getUpdatesRequest{
		Offset:         offset,
		Timeout:        timeoutSec,
		AllowedUpdates: []string{"message", "callback_query"},
	})
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	return updates, nil
}

type answerCallbackRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
}

// AnswerCallbackQuery acknowledges a button press so the client stops
// showing the loading spinner.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	_, err := c.call(ctx, "answerCallbackQuery", answerCallbackRequest{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	return err
}
