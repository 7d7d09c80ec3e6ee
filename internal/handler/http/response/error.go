package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hrsuite/hr-backend-go/internal/domain/absence"
	"github.com/hrsuite/hr-backend-go/internal/domain/announcement"
	"github.com/hrsuite/hr-backend-go/internal/domain/attendance"
	"github.com/hrsuite/hr-backend-go/internal/domain/auth"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/domain/leave"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/domain/position"
	"github.com/hrsuite/hr-backend-go/internal/domain/user"
	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrResetTokenExpired):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive),
		errors.Is(err, user.ErrAccountInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrWrongCurrentPassword):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrGoogleEmailNotLinked):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrOAuthDisabled):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User administration
	case errors.Is(err, user.ErrUserEmailExists):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrSelfDeactivation):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrAdminRHAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrAccessDenied):
		Forbidden(w, err.Error())

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, employee.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, employee.ErrMatriculeExists),
		errors.Is(err, employee.ErrCINExists),
		errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, employee.ErrCannotDeleteSelf):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrNoEmployeeProfile):
		Forbidden(w, err.Error())

	// Position
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, position.ErrPositionInUse),
		errors.Is(err, position.ErrPositionTitleExists):
		BadRequest(w, err.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAttendanceExists):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrUnauthorized),
		errors.Is(err, attendance.ErrNoEmployeeProfile):
		Forbidden(w, err.Error())

	// Absence
	case errors.Is(err, absence.ErrAbsenceNotFound):
		NotFound(w, "Absence not found")
	case errors.Is(err, absence.ErrAbsenceExists),
		errors.Is(err, absence.ErrAlreadyJustified),
		errors.Is(err, absence.ErrNotAwaitingDecision),
		errors.Is(err, absence.ErrInvalidDecision):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, absence.ErrNotAbsenceOwner),
		errors.Is(err, absence.ErrUnauthorized),
		errors.Is(err, absence.ErrNoEmployeeProfile):
		Forbidden(w, err.Error())

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOverlappingRequest),
		errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed),
		errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrNotDirectManager),
		errors.Is(err, leave.ErrUnauthorized),
		errors.Is(err, leave.ErrNoEmployeeProfile):
		Forbidden(w, err.Error())

	// Announcement
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")
	case errors.Is(err, announcement.ErrNotAuthor):
		Forbidden(w, err.Error())
	case errors.Is(err, announcement.ErrTargetTeamRequired):
		BadRequest(w, err.Error(), nil)

	// Notification
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, notification.ErrInvalidNotificationType),
		errors.Is(err, notification.ErrInvalidReferenceType):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("Unexpected error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
