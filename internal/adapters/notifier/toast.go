package notifier

import (
	"context"
	"imghook/internal/core/domain"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// DefaultToastLimit is the number of undelivered toasts a Toaster keeps.
const DefaultToastLimit = 20

type Toast struct {
	ID      string       `json:"id"`
	Level   domain.Level `json:"level"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
}

// Toaster queues notifications until the page collects them with Drain. The oldest toasts are dropped once
// the limit is reached.
type Toaster struct {
	mu     sync.Mutex
	toasts []Toast
	limit  int
}

func NewToaster(limit int) *Toaster {
	if limit <= 0 {
		limit = DefaultToastLimit
	}

	return &Toaster{limit: limit}
}

func (t *Toaster) Success(_ context.Context, message string) {
	t.push(domain.LevelSuccess, message)
}

func (t *Toaster) Warn(_ context.Context, message string) {
	t.push(domain.LevelWarn, message)
}

func (t *Toaster) Error(_ context.Context, message string) {
	t.push(domain.LevelError, message)
}

// Drain returns all queued toasts in order and empties the queue.
func (t *Toaster) Drain() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	toasts := t.toasts
	t.toasts = nil

	if toasts == nil {
		return []Toast{}
	}

	return toasts
}

func (t *Toaster) push(level domain.Level, message string) {
	id, err := uuid.NewV4()
	if err != nil {
		log.Warn().Err(err).Msg("could not generate toast id")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.toasts = append(t.toasts, Toast{
		ID:      id.String(),
		Level:   level,
		Message: message,
		Time:    time.Now(),
	})

	if over := len(t.toasts) - t.limit; over > 0 {
		t.toasts = append([]Toast(nil), t.toasts[over:]...)
	}
}
