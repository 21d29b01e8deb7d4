package notification

import "context"

// Service queues notifications for asynchronous delivery. Callers treat the
// queue as best-effort: a failed enqueue never blocks the main operation.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	Shutdown()
}
