package notification

// CreateNotificationRequest is what services hand to the async worker. The
// worker assigns the ID and persists in batches, so there is no response DTO.
type CreateNotificationRequest struct {
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}
