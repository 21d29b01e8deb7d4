package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeCorrectionSubmitted NotificationType = "correction_submitted"
	TypeCorrectionApproved  NotificationType = "correction_approved"
	TypeCorrectionRejected  NotificationType = "correction_rejected"
	TypeOvertimeApproved    NotificationType = "overtime_approved"
	TypeMarkedAbsent        NotificationType = "marked_absent"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
