package sender

import (
	"context"
	"imghook/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

const TelegramMessageLimit = 4096

// TelegramNotifier mirrors form notifications into a Telegram chat.
type TelegramNotifier struct {
	bot    TelegramBot
	chatID int64
}

func NewTelegramNotifier(bot TelegramBot, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

func (s *TelegramNotifier) Success(ctx context.Context, message string) {
	s.send(ctx, domain.LevelSuccess, message)
}

func (s *TelegramNotifier) Warn(ctx context.Context, message string) {
	s.send(ctx, domain.LevelWarn, message)
}

func (s *TelegramNotifier) Error(ctx context.Context, message string) {
	s.send(ctx, domain.LevelError, message)
}

func (s *TelegramNotifier) send(ctx context.Context, level domain.Level, message string) {
	text := formatMessage(level, message)

	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: s.chatID,
		Text:   text,
	})
	if err != nil {
		log.Warn().Err(err).Int64("chatID", s.chatID).Str("level", string(level)).
			Msg("failed to mirror notification to telegram")
	}
}

func formatMessage(level domain.Level, message string) string {
	var prefix string
	switch level {
	case domain.LevelSuccess:
		prefix = "✅ "
	case domain.LevelWarn:
		prefix = "⚠️ "
	default:
		prefix = "❌ "
	}

	text := []rune(prefix + "imghook: " + message)
	if len(text) > TelegramMessageLimit {
		text = text[:TelegramMessageLimit]
	}

	return string(text)
}
