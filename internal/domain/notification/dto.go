package notification

import "time"

// ============= Request DTOs =============

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
	RecipientID    string
	Type           NotificationType
	Title          string
	Message        string
	RecipientEmail string
	ReferenceType  *ReferenceType
	ReferenceID    *string
}

// ============= Response DTOs =============

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID            string           `json:"id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	IsRead        bool             `json:"is_read"`
	ReadAt        *time.Time       `json:"read_at,omitempty"`
	IsEmailSent   bool             `json:"is_email_sent"`
	EmailSentAt   *time.Time       `json:"email_sent_at,omitempty"`
	ReferenceType *ReferenceType   `json:"reference_type,omitempty"`
	ReferenceID   *string          `json:"reference_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ToResponse converts a Notification entity to its API representation
func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		Type:          n.Type,
		Title:         n.Title,
		Message:       n.Message,
		IsRead:        n.IsRead,
		ReadAt:        n.ReadAt,
		IsEmailSent:   n.IsEmailSent,
		EmailSentAt:   n.EmailSentAt,
		ReferenceType: n.ReferenceType,
		ReferenceID:   n.ReferenceID,
		CreatedAt:     n.CreatedAt,
	}
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int64                  `json:"unread_count"`
}

// MarkAllAsReadResponse reports how many notifications were flipped
type MarkAllAsReadResponse struct {
	ModifiedCount int64 `json:"modified_count"`
}

// SSEEvent is the payload pushed to stream subscribers
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
