package audit

import "time"

// AuditLog is an append-only record of a sensitive operation.
type AuditLog struct {
	ID         string
	UserID     string
	Action     string
	EntityType string
	EntityID   *string
	OldValues  map[string]interface{}
	NewValues  map[string]interface{}
	IPAddress  *string
	UserAgent  *string
	CreatedAt  time.Time
}

// Common actions
const (
	ActionCreate         = "CREATE"
	ActionUpdate         = "UPDATE"
	ActionDelete         = "DELETE"
	ActionToggleStatus   = "TOGGLE_STATUS"
	ActionProcessLeave   = "PROCESS_LEAVE_REQUEST"
	ActionProcessAbsence = "PROCESS_JUSTIFICATION"
	ActionPasswordReset  = "PASSWORD_RESET"
	ActionPasswordChange = "PASSWORD_CHANGE"
	ActionLogin          = "LOGIN"
)
