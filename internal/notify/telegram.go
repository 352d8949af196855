package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/community-analyzer/internal/models"
)

// telegramMessageLimit is the maximum length of one Telegram message in characters
const telegramMessageLimit = 4096

// Telegram posts digests to a Telegram chat
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram creates a Telegram notifier and authorizes the bot
func NewTelegram(token string, chatID int64, debug bool, logger zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	api.Debug = debug
	return newTelegram(api, chatID, logger), nil
}

func newTelegram(api *tgbotapi.BotAPI, chatID int64, logger zerolog.Logger) *Telegram {
	logger.Info().
		Str("username", api.Self.UserName).
		Int64("id", api.Self.ID).
		Msg("Telegram bot authorized")

	return &Telegram{
		api:    api,
		chatID: chatID,
		logger: logger.With().Str("component", "telegram").Logger(),
	}
}

// Notify sends the digest, split into several messages when it is too long
func (t *Telegram) Notify(ctx context.Context, report *models.Report) error {
	for i, part := range splitMessage(Digest(report), telegramMessageLimit) {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := tgbotapi.NewMessage(t.chatID, part)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true

		if _, err := t.api.Send(msg); err != nil {
			t.logger.Error().
				Err(err).
				Int64("chat_id", t.chatID).
				Int("part", i+1).
				Msg("Failed to send digest")
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}

	t.logger.Info().
		Int64("chat_id", t.chatID).
		Str("report_id", report.ID).
		Msg("Digest sent to Telegram")
	return nil
}

// splitMessage cuts text into parts of at most limit runes, preferring line breaks
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
