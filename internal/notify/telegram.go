// Package notify sends operator notices to a Telegram chat.
package notify

import (
	"fmt"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const requestTimeout = 10 * time.Second

// Notifier posts short messages to one chat. A nil *Notifier is valid and
// drops every message, so callers don't need to check whether it was
// configured.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func New(token string, chatID int64) (*Notifier, error) {
	return NewWithClient(token, tgbotapi.APIEndpoint, chatID, &http.Client{Timeout: requestTimeout})
}

// NewWithClient is New with an explicit Bot API endpoint format and client.
func NewWithClient(token, endpoint string, chatID int64, client *http.Client) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize notifier bot: %w", err)
	}

	log.Printf("[NOTIFY] Authorized on account %s", api.Self.UserName)

	return &Notifier{api: api, chatID: chatID}, nil
}

// Startup announces that the server is listening on addr.
func (n *Notifier) Startup(addr string) {
	n.send(fmt.Sprintf("videohub started on %s", addr))
}

// CleanupFailed reports a temporary file that could not be removed.
func (n *Notifier) CleanupFailed(path string, err error) {
	n.send(fmt.Sprintf("Failed to remove temporary file %s: %v", path, err))
}

func (n *Notifier) send(text string) {
	if n == nil {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		log.Printf("[NOTIFY] Failed to send message: %v", err)
		return
	}
	log.Printf("[NOTIFY] Sent: %s", text)
}
