package notification

import "context"

type Repository interface {
	// CreateBatch inserts a batch of notifications in one round trip.
	CreateBatch(ctx context.Context, notifications []*Notification) error
}
