package postgresql

import (
	"context"
	"fmt"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/notification"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a PostgreSQL-backed notification repository.
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// CreateBatch implements notification.Repository. Notifications are written
// by the async worker outside any caller transaction, so this goes straight
// to the pool.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	query := `
		INSERT INTO notifications (
			id, company_id, recipient_id, sender_id, type, title, message, data, is_read, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	batch := &pgx.Batch{}
	for _, n := range notifications {
		batch.Queue(query,
			n.ID, n.CompanyID, n.RecipientID, n.SenderID,
			n.Type, n.Title, n.Message, n.Data, n.IsRead, n.CreatedAt,
		)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert notification batch: %w", err)
		}
	}

	return nil
}
