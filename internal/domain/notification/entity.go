package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAccountCreated         NotificationType = "ACCOUNT_CREATED"
	TypeAccountActivated       NotificationType = "ACCOUNT_ACTIVATED"
	TypeAccountDeactivated     NotificationType = "ACCOUNT_DEACTIVATED"
	TypePasswordReset          NotificationType = "PASSWORD_RESET"
	TypeLeaveRequest           NotificationType = "LEAVE_REQUEST"
	TypeLeaveApproved          NotificationType = "LEAVE_APPROVED"
	TypeLeaveRejected          NotificationType = "LEAVE_REJECTED"
	TypeJustificationSubmitted NotificationType = "JUSTIFICATION_SUBMITTED"
	TypeJustificationApproved  NotificationType = "JUSTIFICATION_APPROVED"
	TypeJustificationRejected  NotificationType = "JUSTIFICATION_REJECTED"
	TypeAnnouncement           NotificationType = "ANNOUNCEMENT"
	TypeSystem                 NotificationType = "SYSTEM"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeAccountCreated,
		TypeAccountActivated,
		TypeAccountDeactivated,
		TypePasswordReset,
		TypeLeaveRequest,
		TypeLeaveApproved,
		TypeLeaveRejected,
		TypeJustificationSubmitted,
		TypeJustificationApproved,
		TypeJustificationRejected,
		TypeAnnouncement,
		TypeSystem,
	}
}

// IsValid reports whether the notification type is known.
func (t NotificationType) IsValid() bool {
	for _, known := range AllNotificationTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// emailWorthy lists the types that additionally go out by email.
var emailWorthy = map[NotificationType]bool{
	TypeAccountCreated:     true,
	TypeAccountDeactivated: true,
	TypePasswordReset:      true,
	TypeLeaveApproved:      true,
	TypeLeaveRejected:      true,
}

// IsEmailWorthy reports whether the type is dispatched by email after
// being persisted.
func (t NotificationType) IsEmailWorthy() bool {
	return emailWorthy[t]
}

// ReferenceType names the entity kind a notification points at.
// Only these values are accepted for the reference tagged union.
type ReferenceType string

const (
	RefLeaveRequest ReferenceType = "leave_request"
	RefAbsence      ReferenceType = "absence"
	RefAnnouncement ReferenceType = "announcement"
	RefUser         ReferenceType = "user"
)

// IsValid reports whether the reference type is allow-listed.
func (r ReferenceType) IsValid() bool {
	switch r {
	case RefLeaveRequest, RefAbsence, RefAnnouncement, RefUser:
		return true
	}
	return false
}

// Notification represents a notification entity
type Notification struct {
	ID            string
	RecipientID   string
	Type          NotificationType
	Title         string
	Message       string
	IsRead        bool
	ReadAt        *time.Time
	IsEmailSent   bool
	EmailSentAt   *time.Time
	ReferenceType *ReferenceType
	ReferenceID   *string
	CreatedAt     time.Time
}
