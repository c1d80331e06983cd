package notifier

import (
	"context"
	"imghook/internal/core/port"
)

// Fanout forwards every notification to all of its notifiers in order.
type Fanout []port.Notifier

// NewFanout skips nil notifiers so optional sinks can be passed unconditionally.
func NewFanout(notifiers ...port.Notifier) Fanout {
	f := make(Fanout, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			f = append(f, n)
		}
	}

	return f
}

func (f Fanout) Success(ctx context.Context, message string) {
	for _, n := range f {
		n.Success(ctx, message)
	}
}

func (f Fanout) Warn(ctx context.Context, message string) {
	for _, n := range f {
		n.Warn(ctx, message)
	}
}

func (f Fanout) Error(ctx context.Context, message string) {
	for _, n := range f {
		n.Error(ctx, message)
	}
}
