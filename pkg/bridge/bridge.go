package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/kerbaras/qari/pkg/data"
	"github.com/kerbaras/qari/pkg/utils"
	"github.com/rs/zerolog/log"
)

// Host receives one-way notifications about what the reader is doing.
// Implementations must not block the caller.
type Host interface {
	Notify(message string)
}

// ChapterLoaded formats the notification sent after a chapter's audio is bound.
func ChapterLoaded(ch data.Chapter) string {
	return fmt.Sprintf("surah_loaded:%d:%s", ch.Number, ch.EnglishName)
}

// Log writes notifications to the structured log.
type Log struct{}

func (Log) Notify(message string) {
	log.Info().Str("host_message", message).Msg("host notified")
}

// Telegram relays notifications to a chat through the Bot API.
type Telegram struct {
	api     *utils.API
	chatID  string
	timeout time.Duration
}

func NewTelegram(token, chatID string, timeout time.Duration) *Telegram {
	return NewTelegramWithBase("https://api.telegram.org", token, chatID, timeout)
}

func NewTelegramWithBase(baseURL, token, chatID string, timeout time.Duration) *Telegram {
	return &Telegram{
		api:     utils.NewAPI(fmt.Sprintf("%s/bot%s", baseURL, token), timeout),
		chatID:  chatID,
		timeout: timeout,
	}
}

// Notify sends in the background; failures are only logged.
func (t *Telegram) Notify(message string) {
	go func() {
		if err := t.Send(context.Background(), message); err != nil {
			log.Warn().Err(err).Msg("telegram notification failed")
		}
	}()
}

func (t *Telegram) Send(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return t.api.Post(ctx, "/sendMessage", map[string]string{
		"chat_id": t.chatID,
		"text":    message,
	})
}
