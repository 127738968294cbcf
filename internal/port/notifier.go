package port

import "context"

type Notifier interface {
	// Notify delivers a user-facing message
	Notify(ctx context.Context, message string)
}
