package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperr "welldecore/pricetracker/pkg/errors"
)

const defaultAPIBase = "https://api.telegram.org"

// TelegramNotifier delivers messages to one chat via the Telegram Bot API.
type TelegramNotifier struct {
	token  string
	chatID string
	client *http.Client

	// BaseURL is the API endpoint prefix; overridable for tests.
	BaseURL string
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		token:  token,
		chatID: chatID,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		BaseURL: defaultAPIBase,
	}
}

// sendMessageRequest represents the Bot API sendMessage payload.
type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// sendMessageResponse is the subset of the Bot API response we inspect.
type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers one plain-text message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		return apperr.NewDelivery("", "failed to marshal message", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return apperr.NewDelivery("", "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return apperr.NewDelivery("", "telegram request failed", err)
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return apperr.NewDelivery("", fmt.Sprintf("failed to decode telegram response (status %d)", resp.StatusCode), err)
	}

	if !result.OK {
		return apperr.NewDelivery("", fmt.Sprintf("telegram rejected message (status %d): %s", resp.StatusCode, result.Description), nil)
	}

	return nil
}
