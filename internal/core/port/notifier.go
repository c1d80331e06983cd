package port

import "context"

// Notifier delivers transient user-facing messages. Delivery is fire-and-forget: implementations log
// their own failures instead of returning them.
type Notifier interface {
	// Success reports a completed submission.
	Success(ctx context.Context, message string)
	// Warn reports an advisory condition that does not block the user.
	Warn(ctx context.Context, message string)
	// Error reports a failed operation.
	Error(ctx context.Context, message string)
}
