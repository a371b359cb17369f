// Package notifier предоставляет клиент для отправки уведомлений в Telegram.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Telegram инкапсулирует HTTP-взаимодействие с Bot API.
type Telegram struct {
	client   *retryablehttp.Client
	apiURL   string
	botToken string
	chatID   string
}

// NewTelegram создаёт клиент Bot API для отправки сообщений в указанный чат.
func NewTelegram(apiURL, botToken, chatID string) *Telegram {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 5 * time.Second
	client.Logger = nil

	return &Telegram{
		client:   client,
		apiURL:   strings.TrimRight(apiURL, "/"),
		botToken: botToken,
		chatID:   chatID,
	}
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send отправляет текст сообщения в настроенный чат с разметкой HTML.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if t == nil || t.botToken == "" || t.chatID == "" {
		return fmt.Errorf("telegram notifier not configured")
	}

	params := url.Values{}
	params.Set("chat_id", t.chatID)
	params.Set("text", text)
	params.Set("parse_mode", "HTML")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage?%s", t.apiURL, t.botToken, params.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}
