package notifier

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log writes notifications to the global logger. It is used when there is no page to show them on.
type Log struct {
	logger zerolog.Logger
}

func NewLog() *Log {
	return &Log{logger: log.With().Str("component", "notifier").Logger()}
}

func (l *Log) Success(_ context.Context, message string) {
	l.logger.Info().Msg(message)
}

func (l *Log) Warn(_ context.Context, message string) {
	l.logger.Warn().Msg(message)
}

func (l *Log) Error(_ context.Context, message string) {
	l.logger.Error().Msg(message)
}
