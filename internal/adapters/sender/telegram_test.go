package sender

import (
	"context"
	"errors"
	"imghook/internal/core/domain"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func TestTelegramNotifier(t *testing.T) {
	tests := []struct {
		name     string
		notify   func(n *TelegramNotifier, ctx context.Context)
		wantText string
		sendErr  error
	}{
		{
			name:     "success",
			notify:   func(n *TelegramNotifier, ctx context.Context) { n.Success(ctx, domain.SuccessMessage) },
			wantText: "✅ imghook: image received",
		},
		{
			name:     "warning",
			notify:   func(n *TelegramNotifier, ctx context.Context) { n.Warn(ctx, "loopback") },
			wantText: "⚠️ imghook: loopback",
		},
		{
			name:     "error",
			notify:   func(n *TelegramNotifier, ctx context.Context) { n.Error(ctx, "webhook returned status 500") },
			wantText: "❌ imghook: webhook returned status 500",
		},
		{
			name:     "send failure is swallowed",
			notify:   func(n *TelegramNotifier, ctx context.Context) { n.Error(ctx, "boom") },
			wantText: "❌ imghook: boom",
			sendErr:  errors.New("telegram down"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mb := new(MockBot)
			mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
				return params.Text == tc.wantText && params.ChatID == int64(42)
			})).Return(&models.Message{ID: 1}, tc.sendErr).Once()

			assert.NotPanics(t, func() { tc.notify(NewTelegramNotifier(mb, 42), testContext(t)) })

			mb.AssertExpectations(t)
		})
	}
}

func TestFormatMessageTruncates(t *testing.T) {
	got := formatMessage(domain.LevelError, strings.Repeat("x", TelegramMessageLimit+10))
	assert.Len(t, []rune(got), TelegramMessageLimit)
}
